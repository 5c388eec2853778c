// Package logging builds the leveled logger shared by the CLI and server.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out. Verbose enables debug output,
// which includes a line-by-line trace of the statement parser.
func New(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// NewJSON returns a JSON logger for the HTTP server.
func NewJSON(out io.Writer, verbose bool) *logrus.Logger {
	log := New(out, verbose)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}
