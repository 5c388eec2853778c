package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-categorizer/internal/config"
	"github.com/insightdelivered/statement-categorizer/internal/converter"
	"github.com/insightdelivered/statement-categorizer/internal/extractor"
	"github.com/insightdelivered/statement-categorizer/internal/logging"
	"github.com/insightdelivered/statement-categorizer/internal/parser"
	"github.com/insightdelivered/statement-categorizer/internal/writer"
)

type extractFlags struct {
	input     string
	output    string
	format    string
	sheet     string
	preview   int
	normalize bool
}

func newExtractCmd(opts *options) *cobra.Command {
	flags := &extractFlags{}
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and categorize every statement in a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			return runExtract(cmd, cfg)
		},
	}

	flags.register(cmd, defaults)

	return cmd
}

func (f *extractFlags) register(cmd *cobra.Command, defaults config.Config) {
	cmd.Flags().StringVarP(&f.input, "input", "i", defaults.Input.Folder, "Folder containing statement PDFs")
	cmd.Flags().StringVarP(&f.output, "output", "o", defaults.Output.Path, "Output spreadsheet path")
	cmd.Flags().StringVarP(&f.format, "format", "f", defaults.Output.Format, "Output format: xlsx or csv")
	cmd.Flags().StringVar(&f.sheet, "sheet", defaults.Output.SheetName, "Worksheet name for xlsx output")
	cmd.Flags().IntVar(&f.preview, "preview", defaults.Output.PreviewRows, "Rows to preview after export (negative disables)")
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "Collapse doubled characters in extracted text before parsing")
}

// apply overrides cfg with the flags set on the command line.
func (f *extractFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input.Folder = f.input
	}
	if changed("format") {
		cfg.Output.Format = f.format
		if !changed("output") && cfg.Output.Path == config.DefaultConfig().Output.Path {
			if ext := writer.Extension(f.format); ext != "" {
				cfg.Output.Path = strings.TrimSuffix(cfg.Output.Path, filepath.Ext(cfg.Output.Path)) + ext
			}
		}
	}
	if changed("output") {
		cfg.Output.Path = f.output
	}
	if changed("sheet") {
		cfg.Output.SheetName = f.sheet
	}
	if changed("preview") {
		cfg.Output.PreviewRows = f.preview
	}
	if changed("normalize") {
		cfg.Input.Normalize = f.normalize
	}
}

func runExtract(cmd *cobra.Command, cfg config.Config) error {
	out := cmd.OutOrStdout()
	log := logging.New(cmd.ErrOrStderr(), cfg.Log.Verbose)

	w, err := writer.New(cfg.Output.Format, cfg.Output.SheetName)
	if err != nil {
		return err
	}

	ex := extractor.NewPDFExtractor(log)
	ex.DisablePdftotext = !cfg.Input.UsePdftotext

	conv := converter.New(ex,
		converter.WithParser(parser.New(parser.Options{Normalize: cfg.Input.Normalize})),
		converter.WithLogger(log),
	)

	result, err := conv.ConvertFolder(cfg.Input.Folder)
	switch {
	case errors.Is(err, converter.ErrNoStatements):
		fmt.Fprintf(out, "No PDF files found in the '%s' folder.\n", cfg.Input.Folder)
		return nil
	case errors.Is(err, converter.ErrNoTransactions):
		fmt.Fprintln(out, "No transactions were extracted from any PDF. Please check the PDF format or content.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "Saving categorized data to %s...\n", cfg.Output.Path)
	if err := w.WriteToFile(cfg.Output.Path, result.Transactions); err != nil {
		return err
	}
	fmt.Fprintln(out, "Analysis complete!")

	if cfg.Output.PreviewRows < 0 {
		return nil
	}
	return writer.Preview(out, result.Transactions, cfg.Output.PreviewRows)
}
