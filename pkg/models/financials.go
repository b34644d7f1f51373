// Package models holds the data types shared by the extraction core, the
// renderers and the API surface.
package models

import "time"

// =============================================================================
// TABULAR SOURCE DATA
// =============================================================================

// Row is one table row: the label cell followed by period cells.
type Row []string

// Label returns the first cell, or "" for an empty row.
func (r Row) Label() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Values returns every cell after the label.
func (r Row) Values() []string {
	if len(r) < 2 {
		return nil
	}
	return r[1:]
}

// Grid is a parsed financial table. Rows[0] is the header row
// (label column + period headers), the remaining rows hold values.
type Grid struct {
	Section string `json:"section"`
	Rows    []Row  `json:"rows"`
}

// Header returns the period header row.
func (g Grid) Header() Row {
	if len(g.Rows) == 0 {
		return nil
	}
	return g.Rows[0]
}

// DataRows returns all rows below the header.
func (g Grid) DataRows() []Row {
	if len(g.Rows) < 2 {
		return nil
	}
	return g.Rows[1:]
}

// =============================================================================
// SERIES
// =============================================================================

// YearLabel is the digit-only fiscal year key derived from a column header.
type YearLabel string

// Before reports whether y is an earlier year than other.
// Labels are compared numerically; longer digit strings are larger.
func (y YearLabel) Before(other YearLabel) bool {
	if len(y) != len(other) {
		return len(y) < len(other)
	}
	return y < other
}

// MetricSeries maps a year to a whole-unit magnitude in the source's reporting unit.
type MetricSeries map[YearLabel]int64

// RatioSeries maps a year to a rounded ratio. A nil entry means the ratio is
// absent for that year (non-positive denominator), which is not the same as zero.
type RatioSeries map[YearLabel]*float64

// Get returns the value for year and whether it is present.
func (s RatioSeries) Get(year YearLabel) (float64, bool) {
	v, ok := s[year]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Metric identifies one of the statement rows the analysis depends on.
type Metric string

const (
	MetricRevenue       Metric = "revenue"
	MetricNetProfit     Metric = "net_profit"
	MetricEquityCapital Metric = "equity_capital"
	MetricReserves      Metric = "reserves"
	MetricTotalAssets   Metric = "total_assets"
)

// RequiredMetrics lists the metrics in the order they are checked.
var RequiredMetrics = []Metric{
	MetricRevenue,
	MetricNetProfit,
	MetricEquityCapital,
	MetricReserves,
	MetricTotalAssets,
}

// DisplayName returns the name used in user-facing messages.
func (m Metric) DisplayName() string {
	switch m {
	case MetricRevenue:
		return "Sales"
	case MetricNetProfit:
		return "Net Profit"
	case MetricEquityCapital:
		return "Equity"
	case MetricReserves:
		return "Reserves"
	case MetricTotalAssets:
		return "Total Assets"
	}
	return string(m)
}

// =============================================================================
// NARRATIVE & CHART
// =============================================================================

// Direction is the qualitative direction of a trend band.
type Direction string

const (
	DirectionDecline Direction = "decline"
	DirectionStable  Direction = "stable"
	DirectionGrowth  Direction = "growth"
)

// Narrative is the trend sentence produced for one ratio between two anchor years.
type Narrative struct {
	Label     string    `json:"label"`
	Earlier   YearLabel `json:"earlier"`
	Later     YearLabel `json:"later"`
	Available bool      `json:"available"`
	From      float64   `json:"from,omitempty"`
	To        float64   `json:"to,omitempty"`
	Delta     float64   `json:"delta,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Phrase    string    `json:"phrase,omitempty"`
	Text      string    `json:"text"`
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Bar is one year's value in a chart panel.
type Bar struct {
	Year    YearLabel `json:"year"`
	Value   float64   `json:"value"`
	Missing bool      `json:"missing,omitempty"`
}

// Panel is a single bar chart.
type Panel struct {
	Title string `json:"title"`
	Crore bool   `json:"crore"`
	Color RGB    `json:"color"`
	Bars  []Bar  `json:"bars"`
}

// Chart is the renderable chart model handed to a presentation renderer.
type Chart struct {
	Title  string      `json:"title"`
	Years  []YearLabel `json:"years"`
	Panels []Panel     `json:"panels"`
}

// Artifact is a rendered chart.
type Artifact struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// =============================================================================
// ANALYSIS RESULT
// =============================================================================

// Report is the success payload of an analysis run.
type Report struct {
	RunID       string      `json:"run_id"`
	Company     string      `json:"company"`
	GeneratedAt time.Time   `json:"generated_at"`
	Years       []YearLabel `json:"years"` // oldest first

	Revenue           MetricSeries `json:"revenue"`
	NetProfit         MetricSeries `json:"net_profit"`
	EquityCapital     MetricSeries `json:"equity_capital"`
	Reserves          MetricSeries `json:"reserves"`
	TotalAssets       MetricSeries `json:"total_assets"`
	ShareholderEquity MetricSeries `json:"shareholder_equity"`

	ROE               RatioSeries `json:"roe"`
	ROI               RatioSeries `json:"roi"`
	FinancialLeverage RatioSeries `json:"financial_leverage"`

	Trends   []Narrative `json:"trends"`
	Chart    Chart       `json:"chart"`
	Artifact *Artifact   `json:"artifact,omitempty"`
}

// Stage names the pipeline step that produced a failure.
type Stage string

const (
	StageInput  Stage = "input"
	StageFetch  Stage = "fetch"
	StageLocate Stage = "locate"
	StageRows   Stage = "rows"
	StageAlign  Stage = "align"
	StageRatios Stage = "ratios"
	StageChart  Stage = "chart"
)

// Failure is the failure payload of an analysis run.
type Failure struct {
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// AnalysisResult is a tagged outcome: exactly one of Success and Failure is set.
type AnalysisResult struct {
	Company string   `json:"company"`
	Success *Report  `json:"success,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Succeeded wraps a report.
func Succeeded(report *Report) *AnalysisResult {
	return &AnalysisResult{Company: report.Company, Success: report}
}

// Failed builds a failure result.
func Failed(company string, stage Stage, reason string) *AnalysisResult {
	return &AnalysisResult{
		Company: company,
		Failure: &Failure{Stage: stage, Reason: reason},
	}
}

// OK reports whether the run succeeded.
func (r *AnalysisResult) OK() bool {
	return r != nil && r.Success != nil && r.Failure == nil
}

// Reason returns the failure reason, or "" on success.
func (r *AnalysisResult) Reason() string {
	if r == nil || r.Failure == nil {
		return ""
	}
	return r.Failure.Reason
}
