// Package calc provides deterministic financial calculations over aligned
// per-year statement values.
package calc

import (
	"math"
	"math/big"

	"financial_analyzer/pkg/models"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATIO ENGINE
// =============================================================================

// RatioSet holds the per-year ratios derived from the aligned statement rows.
type RatioSet struct {
	ShareholderEquity models.MetricSeries
	ROE               models.RatioSeries // percent
	ROI               models.RatioSeries // percent
	FinancialLeverage models.RatioSeries // times
}

// ComputeRatios derives ROE, ROI and financial leverage for every year.
// A ratio whose denominator is zero or negative is recorded as absent (nil);
// that is ordinary data, not an error.
func ComputeRatios(years []models.YearLabel, series map[models.Metric]models.MetricSeries) RatioSet {
	netProfit := series[models.MetricNetProfit]
	equityCapital := series[models.MetricEquityCapital]
	reserves := series[models.MetricReserves]
	totalAssets := series[models.MetricTotalAssets]

	set := RatioSet{
		ShareholderEquity: make(models.MetricSeries, len(years)),
		ROE:               make(models.RatioSeries, len(years)),
		ROI:               make(models.RatioSeries, len(years)),
		FinancialLeverage: make(models.RatioSeries, len(years)),
	}

	for _, y := range years {
		equity := ShareholderEquity(equityCapital[y], reserves[y])
		set.ShareholderEquity[y] = equity

		set.ROE[y] = ROE(netProfit[y], equity)
		set.ROI[y] = ROI(netProfit[y], totalAssets[y])
		set.FinancialLeverage[y] = FinancialLeverage(totalAssets[y], equity)
	}
	return set
}

// ShareholderEquity = Equity Share Capital + Reserves.
func ShareholderEquity(equityCapital, reserves int64) int64 {
	return equityCapital + reserves
}

// ROE = Net Profit / Shareholder Equity x 100.
func ROE(netProfit, shareholderEquity int64) *float64 {
	return safeRatio(float64(netProfit), float64(shareholderEquity), 100)
}

// ROI = Net Profit / Total Assets x 100.
func ROI(netProfit, totalAssets int64) *float64 {
	return safeRatio(float64(netProfit), float64(totalAssets), 100)
}

// FinancialLeverage = Total Assets / Shareholder Equity.
func FinancialLeverage(totalAssets, shareholderEquity int64) *float64 {
	return safeRatio(float64(totalAssets), float64(shareholderEquity), 1)
}

// safeRatio returns round2(numerator/denominator*scale), or nil when the
// denominator is not positive.
func safeRatio(numerator, denominator, scale float64) *float64 {
	if denominator <= 0 {
		return nil
	}
	v := Round2(numerator / denominator * scale)
	return &v
}

// Round2 rounds v to two decimals. Non-finite values are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return Round(v, 2).InexactFloat64()
}

// Round rounds the exact binary value of a finite v to places decimals,
// ties to even. 2.675 is stored as 2.67499... and rounds to 2.67.
func Round(v float64, places int32) decimal.Decimal {
	return exact(v).RoundBank(places)
}

// exact is the full decimal expansion of v. Every finite float64 has one
// within 1074 fractional digits.
func exact(v float64) decimal.Decimal {
	return decimal.RequireFromString(new(big.Float).SetFloat64(v).Text('f', 1074))
}
