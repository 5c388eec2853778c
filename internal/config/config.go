package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all statement-categorizer configuration.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// InputConfig controls where statements are read from.
type InputConfig struct {
	Folder string `toml:"folder"`
	// Normalize collapses doubled characters before parsing.
	Normalize bool `toml:"normalize"`
	// UsePdftotext allows the poppler-utils fallback extractor.
	UsePdftotext bool `toml:"use_pdftotext"`
}

// OutputConfig controls the exported file and console preview.
type OutputConfig struct {
	Path        string `toml:"path"`
	Format      string `toml:"format"` // xlsx or csv
	SheetName   string `toml:"sheet_name"`
	PreviewRows int    `toml:"preview_rows"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MaxUploadMB   int    `toml:"max_upload_mb"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Folder:       "chase_statements",
			UsePdftotext: true,
		},
		Output: OutputConfig{
			Path:        "combined_chase_spending.xlsx",
			Format:      "xlsx",
			SheetName:   "Chase Statement Analysis",
			PreviewRows: 10,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxUploadMB:   32,
			EnableMetrics: true,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "statement-categorizer")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "statement-categorizer")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, returning defaults if it doesn't
// exist. An empty path means Path().
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing config file: %w", err)
	}
	return nil
}
