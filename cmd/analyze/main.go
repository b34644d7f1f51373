// Command analyze prints ROE/ROI trends and a per-year table for one or more
// Screener.in companies.
//
//	analyze [--config path] [--source screener|file|postgres] [--pdf dir] ID...
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"financial_analyzer/pkg/config"
	"financial_analyzer/pkg/core/pipeline"
	"financial_analyzer/pkg/core/report"
	"financial_analyzer/pkg/logger"
	"financial_analyzer/pkg/models"

	"github.com/spf13/cobra"
)

// errAnalysisFailed is returned when at least one company could not be analyzed.
var errAnalysisFailed = errors.New("one or more analyses failed")

var (
	configPath string
	sourceKind string
	pdfDir     string
)

var rootCmd = &cobra.Command{
	Use:   "analyze [flags] COMPANY_ID...",
	Short: "Analyze ROE and ROI trends of Screener.in companies",
	Long: `Fetches each company's profit-loss and balance-sheet tables, computes ROE, ROI and
financial leverage for the most recent years and prints the trend narratives and a year table.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML config file")
	rootCmd.Flags().StringVar(&sourceKind, "source", "", "document source: screener, file or postgres (overrides config)")
	rootCmd.Flags().StringVar(&pdfDir, "pdf", "", "write <ID>.pdf charts into this directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errAnalysisFailed) {
			fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		}
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if sourceKind != "" {
		cfg.Source.Kind = sourceKind
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	source, closeSource, err := cfg.OpenSource(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to open document source: %w", err)
	}
	defer closeSource()

	a := pipeline.NewAnalyzer(source, cfg.PipelineOptions(), log)
	if pdfDir != "" {
		if err := os.MkdirAll(pdfDir, 0o755); err != nil {
			return fmt.Errorf("failed to create PDF directory: %w", err)
		}
		a.SetChartRenderer(report.NewPDFChartRenderer(log))
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range analyzeAll(ctx, a, args) {
		if !res.OK() {
			failed++
			report.WriteFailure(out, res)
			fmt.Fprintln(out)
			continue
		}
		report.WriteText(out, res.Success)
		fmt.Fprintln(out)

		if res.Success.Artifact != nil {
			path := filepath.Join(pdfDir, res.Company+".pdf")
			if err := os.WriteFile(path, res.Success.Artifact.Data, 0o644); err != nil {
				log.WithError(err).WithField("path", path).Error("[CLI] Failed to write chart")
				failed++
				continue
			}
			log.WithField("path", path).Info("[CLI] Chart written")
		}
	}

	if failed > 0 {
		return errAnalysisFailed
	}
	return nil
}

// analyzeAll runs every company concurrently and returns the results in
// argument order.
func analyzeAll(ctx context.Context, a *pipeline.Analyzer, ids []string) []*models.AnalysisResult {
	results := make([]*models.AnalysisResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = a.Analyze(ctx, id)
		}(i, id)
	}
	wg.Wait()
	return results
}
