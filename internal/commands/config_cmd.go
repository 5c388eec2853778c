package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-categorizer/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			path := opts.path()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  Config file: %s\n", path)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintln(out, "  Status: loaded")
			} else {
				fmt.Fprintln(out, "  Status: using defaults (no config file)")
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "  [Input]")
			fmt.Fprintf(out, "    Folder:         %s\n", cfg.Input.Folder)
			fmt.Fprintf(out, "    Normalize:      %v\n", cfg.Input.Normalize)
			fmt.Fprintf(out, "    Use pdftotext:  %v\n", cfg.Input.UsePdftotext)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "  [Output]")
			fmt.Fprintf(out, "    Path:           %s\n", cfg.Output.Path)
			fmt.Fprintf(out, "    Format:         %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "    Sheet name:     %s\n", cfg.Output.SheetName)
			fmt.Fprintf(out, "    Preview rows:   %d\n", cfg.Output.PreviewRows)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "  [Server]")
			fmt.Fprintf(out, "    Address:        %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "    Max upload MB:  %d\n", cfg.Server.MaxUploadMB)
			fmt.Fprintf(out, "    Metrics:        %v\n", cfg.Server.EnableMetrics)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.path()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file %s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}

func (o *options) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.Path()
}
