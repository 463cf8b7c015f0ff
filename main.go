package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pivolan/registry_dashboard/config"
	"github.com/pivolan/registry_dashboard/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "registry-dashboard",
		Short:        "Read-only dashboard over the suspect registry table",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newReportCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HttpAddr,
		Handler:           newRouter(cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listen", zap.String("addr", cfg.HttpAddr), zap.String("driver", cfg.DbDriver), zap.String("table", cfg.DbTable))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newReportCommand() *cobra.Command {
	sel := models.Selection{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print one dashboard cycle as text tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			d, err := runCycle(cmd.Context(), cfg, log, sel)
			fmt.Fprint(cmd.OutOrStdout(), GenerateReport(d))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&sel.Months, "month", nil, "Month_Year bucket to keep (YYYY-MM), repeatable; All keeps every month")
	cmd.Flags().StringVar(&sel.Column, "column", "", "drill-down column")
	cmd.Flags().StringVar(&sel.Value, "value", "", "drill-down value, defaults to the most repeated one")
	cmd.Flags().BoolVar(&sel.ShowMore, "more", false, "show ten banks on the scorecard instead of two")
	cmd.Flags().StringVar(&sel.Reveal, "reveal", "", "list the unique values of bank_name or source")
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
