package pipeline

import "financial_analyzer/pkg/models"

// MetricDefinition binds a required metric to the section it is read from
// and the label pattern that selects its row.
type MetricDefinition struct {
	Metric  models.Metric
	Section string
	Pattern string
}

// DefaultMetrics returns the row patterns for a Screener.in company page.
// Alternatives are tried in the order written when several rows match.
func DefaultMetrics(profitLoss, balanceSheet string) []MetricDefinition {
	return []MetricDefinition{
		{Metric: models.MetricRevenue, Section: profitLoss, Pattern: "sales|revenue"},
		{Metric: models.MetricNetProfit, Section: profitLoss, Pattern: "net profit|profit after tax"},
		{Metric: models.MetricEquityCapital, Section: balanceSheet, Pattern: "equity share capital|equity capital"},
		{Metric: models.MetricReserves, Section: balanceSheet, Pattern: "reserves"},
		{Metric: models.MetricTotalAssets, Section: balanceSheet, Pattern: "total assets|total liabilities"},
	}
}
