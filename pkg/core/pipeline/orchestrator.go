// Package pipeline runs a company analysis end to end: fetch the page, locate
// the statement tables, select and align the metric rows, compute ratios,
// narrate trends and build the chart model.
package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"financial_analyzer/pkg/core/calc"
	"financial_analyzer/pkg/core/extract"
	"financial_analyzer/pkg/core/trend"
	"financial_analyzer/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DocumentSource retrieves the raw company page for a company ID.
// Implementations may fetch from:
// - Screener.in over HTTP
// - a directory of saved pages
// - the company_pages table in PostgreSQL
type DocumentSource interface {
	FetchDocument(ctx context.Context, companyID string) (string, error)
}

// ChartRenderer turns the chart model into a presentable artifact.
type ChartRenderer interface {
	RenderChart(chart models.Chart) (*models.Artifact, error)
}

// Options configures an Analyzer.
type Options struct {
	ProfitLossSection   string
	BalanceSheetSection string
	MaxYears            int
	AnchorYears         []models.YearLabel // empty: oldest and newest selected year
}

// DefaultOptions returns the options for a Screener.in company page.
func DefaultOptions() Options {
	return Options{
		ProfitLossSection:   extract.SectionProfitLoss,
		BalanceSheetSection: extract.SectionBalanceSheet,
		MaxYears:            extract.MaxYears,
	}
}

// EmptyCompanyReason is the failure reason for a blank company ID.
const EmptyCompanyReason = "Please enter a company slug."

// Analyzer manages the end-to-end data flow for one company per call.
// It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	source   DocumentSource
	renderer ChartRenderer
	metrics  []MetricDefinition
	opts     Options
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewAnalyzer creates an analyzer reading pages from source.
// A nil logger discards log output.
func NewAnalyzer(source DocumentSource, opts Options, log logrus.FieldLogger) *Analyzer {
	defaults := DefaultOptions()
	if opts.ProfitLossSection == "" {
		opts.ProfitLossSection = defaults.ProfitLossSection
	}
	if opts.BalanceSheetSection == "" {
		opts.BalanceSheetSection = defaults.BalanceSheetSection
	}
	if opts.MaxYears == 0 {
		opts.MaxYears = defaults.MaxYears
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Analyzer{
		source:  source,
		metrics: DefaultMetrics(opts.ProfitLossSection, opts.BalanceSheetSection),
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

// SetChartRenderer attaches a renderer; every successful report then carries
// the rendered artifact.
func (a *Analyzer) SetChartRenderer(r ChartRenderer) {
	a.renderer = r
}

// NormalizeCompanyID trims and upper-cases a company slug.
func NormalizeCompanyID(companyID string) string {
	return strings.ToUpper(strings.TrimSpace(companyID))
}

// Analyze fetches the company page and analyzes it.
func (a *Analyzer) Analyze(ctx context.Context, companyID string) *models.AnalysisResult {
	company := NormalizeCompanyID(companyID)
	if company == "" {
		return models.Failed(company, models.StageInput, EmptyCompanyReason)
	}
	if a.source == nil {
		return models.Failed(company, models.StageFetch, "no document source configured")
	}

	runID := uuid.NewString()
	log := a.log.WithFields(logrus.Fields{"company": company, "run_id": runID})
	log.Info("[Analyzer] Fetching company page")

	html, err := a.source.FetchDocument(ctx, company)
	if err != nil {
		log.WithField("stage", models.StageFetch).WithError(err).Warn("[Analyzer] Fetch failed")
		return models.Failed(company, models.StageFetch, err.Error())
	}
	return a.analyze(runID, company, html, log)
}

// AnalyzeDocument analyzes a page that has already been fetched.
func (a *Analyzer) AnalyzeDocument(companyID, html string) *models.AnalysisResult {
	company := NormalizeCompanyID(companyID)
	if company == "" {
		return models.Failed(company, models.StageInput, EmptyCompanyReason)
	}
	runID := uuid.NewString()
	log := a.log.WithFields(logrus.Fields{"company": company, "run_id": runID})
	return a.analyze(runID, company, html, log)
}

func (a *Analyzer) analyze(runID, company, html string, log logrus.FieldLogger) *models.AnalysisResult {
	start := a.now()

	fail := func(stage models.Stage, err error) *models.AnalysisResult {
		log.WithField("stage", stage).WithError(err).Warn("[Analyzer] Analysis failed")
		return models.Failed(company, stage, err.Error())
	}

	// 1. Locate the statement tables
	sections := []string{a.opts.ProfitLossSection, a.opts.BalanceSheetSection}
	grids, err := extract.LocateTables(html, sections...)
	if err != nil {
		return fail(models.StageLocate, err)
	}
	bySection := make(map[string]models.Grid, len(grids))
	for _, g := range grids {
		bySection[g.Section] = g
	}

	// 2. Select one row per required metric
	inputs := make([]extract.MetricRow, 0, len(a.metrics))
	for _, def := range a.metrics {
		grid := bySection[def.Section]
		row, err := extract.SelectRow(grid, def.Pattern)
		if err != nil {
			if errors.Is(err, extract.ErrRowNotFound) {
				log.WithField("pattern", def.Pattern).Debug("[Analyzer] " + err.Error())
				err = &extract.MissingMetricError{Metric: def.Metric, Company: company}
			}
			return fail(models.StageRows, err)
		}
		inputs = append(inputs, extract.MetricRow{Metric: def.Metric, Header: grid.Header(), Row: row})
	}

	// 3. Align years and normalize values
	alignment, err := extract.AlignYears(inputs, a.opts.MaxYears)
	if err != nil {
		var missing *extract.MissingMetricError
		if errors.As(err, &missing) {
			missing.Company = company
		}
		return fail(models.StageAlign, err)
	}
	log.WithField("years", alignment.Years).Debug("[Analyzer] Years aligned")

	// 4. Ratios
	ratios := calc.ComputeRatios(alignment.Years, alignment.Series)

	years := make([]models.YearLabel, len(alignment.Years))
	for i, y := range alignment.Years {
		years[len(years)-1-i] = y
	}

	report := &models.Report{
		RunID:             runID,
		Company:           company,
		GeneratedAt:       start.UTC(),
		Years:             years,
		Revenue:           alignment.Series[models.MetricRevenue],
		NetProfit:         alignment.Series[models.MetricNetProfit],
		EquityCapital:     alignment.Series[models.MetricEquityCapital],
		Reserves:          alignment.Series[models.MetricReserves],
		TotalAssets:       alignment.Series[models.MetricTotalAssets],
		ShareholderEquity: ratios.ShareholderEquity,
		ROE:               ratios.ROE,
		ROI:               ratios.ROI,
		FinancialLeverage: ratios.FinancialLeverage,
	}

	// 5. Trend narratives
	earlier, later := trend.Anchors(years, a.opts.AnchorYears)
	report.Trends = []models.Narrative{
		trend.Compare(trend.Subject{Label: "ROE", Unit: "%", Series: report.ROE}, earlier, later),
		trend.Compare(trend.Subject{Label: "ROI", Unit: "%", Series: report.ROI}, earlier, later),
	}

	// 6. Chart
	report.Chart = BuildChart(report)
	if a.renderer != nil {
		artifact, err := a.renderer.RenderChart(report.Chart)
		if err != nil {
			return fail(models.StageChart, err)
		}
		report.Artifact = artifact
	}

	log.WithFields(logrus.Fields{
		"years":    len(years),
		"duration": time.Since(start).String(),
	}).Info("[Analyzer] Analysis complete")
	return models.Succeeded(report)
}
