// Package commands implements the statement-categorizer CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-categorizer/internal/config"
)

// Version is set at build time with -ldflags.
var Version = "1.0.0"

// options carries the persistent flags shared by every command.
type options struct {
	configPath string
	verbose    bool
}

// NewRootCmd builds the command tree. Running it without a subcommand
// behaves like extract.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	extract := newExtractCmd(opts)

	root := &cobra.Command{
		Use:   "statement-categorizer",
		Short: "Chase credit-card statement categorizer",
		Long: "Extract transactions from Chase credit-card statement PDFs, categorize them\n" +
			"and export the combined result to a spreadsheet.",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         extract.RunE,
	}
	// The root command accepts the extract flags so it can stand in for it.
	root.Flags().AddFlagSet(extract.Flags())

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default "+config.Path()+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging, including a line-by-line parser trace")

	root.AddCommand(extract, newCategorizeCmd(), newServeCmd(opts), newConfigCmd(opts))
	return root
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}
