package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financial_analyzer/pkg/api/analyzer"
	"financial_analyzer/pkg/config"
	"financial_analyzer/pkg/core/pipeline"
	"financial_analyzer/pkg/core/report"
	"financial_analyzer/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Serve the financial analyzer over HTTP",
	Long:          `Starts the HTTP server exposing /api/analyze, /api/analyze/report, /api/analyze/chart and /healthz.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
	rootCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// logger may not be configured yet
		os.Stderr.WriteString("[FATAL] " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.API.Addr = listenAddr
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := cfg.OpenSource(ctx, log)
	if err != nil {
		log.WithError(err).Error("[API] Failed to open document source")
		return err
	}
	defer closeSource()

	a := pipeline.NewAnalyzer(source, cfg.PipelineOptions(), log)
	handler := analyzer.NewHandler(a, report.NewPDFChartRenderer(log), log)

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("source", cfg.Source.Kind).Infof("[API] Server starting on %s", cfg.API.Addr)
	log.Info("  - GET  /api/analyze?company=ID")
	log.Info("  - GET  /api/analyze/report?company=ID")
	log.Info("  - GET  /api/analyze/chart?company=ID")
	log.Info("  - GET  /healthz")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("[API] Server failed")
		return err
	}
	log.Info("[API] Server stopped")
	return nil
}
