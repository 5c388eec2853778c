package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-categorizer/internal/api"
	"github.com/insightdelivered/statement-categorizer/internal/converter"
	"github.com/insightdelivered/statement-categorizer/internal/extractor"
	"github.com/insightdelivered/statement-categorizer/internal/logging"
	"github.com/insightdelivered/statement-categorizer/internal/metrics"
	"github.com/insightdelivered/statement-categorizer/internal/parser"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr    string
		logJSON bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			log := logging.New(cmd.ErrOrStderr(), cfg.Log.Verbose)
			if logJSON {
				log = logging.NewJSON(cmd.ErrOrStderr(), cfg.Log.Verbose)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			ex := extractor.NewPDFExtractor(log)
			ex.DisablePdftotext = !cfg.Input.UsePdftotext

			h := &api.Handler{
				Converter: converter.New(ex,
					converter.WithParser(parser.New(parser.Options{Normalize: cfg.Input.Normalize})),
					converter.WithLogger(log),
					converter.WithMetrics(metrics.NewPrometheus(reg)),
				),
				Log:       log,
				Version:   Version,
				SheetName: cfg.Output.SheetName,
			}

			srvOpts := api.ServerOptions{MaxUploadMB: cfg.Server.MaxUploadMB}
			if cfg.Server.EnableMetrics {
				srvOpts.Gatherer = reg
			}
			app := api.NewApp(h, srvOpts)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", cfg.Server.Addr).Info("Statement categorizer API listening")
				errCh <- app.Listen(cfg.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server: %w", err)
			case <-ctx.Done():
				log.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return app.ShutdownWithContext(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log requests as JSON")
	return cmd
}
