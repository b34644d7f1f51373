package pipeline

import "financial_analyzer/pkg/models"

// Panel colours, in panel order.
var (
	colorRevenue     = models.RGB{R: 0x66, G: 0xc2, B: 0xa5}
	colorNetProfit   = models.RGB{R: 0xfc, G: 0x8d, B: 0x62}
	colorTotalAssets = models.RGB{R: 0x8d, G: 0xa0, B: 0xcb}
	colorROE         = models.RGB{R: 0xe7, G: 0x8a, B: 0xc3}
	colorROI         = models.RGB{R: 0xa6, G: 0xd8, B: 0x54}
	colorLeverage    = models.RGB{R: 0xff, G: 0xd9, B: 0x2f}
)

// BuildChart lays out the six bar panels of a report: three statement
// magnitudes on the top row and the three ratios below. Years run oldest first.
// Absent ratios become zero-height bars flagged Missing.
func BuildChart(report *models.Report) models.Chart {
	return models.Chart{
		Title: report.Company,
		Years: report.Years,
		Panels: []models.Panel{
			metricPanel("Revenue", colorRevenue, report.Years, report.Revenue),
			metricPanel("Net Profit", colorNetProfit, report.Years, report.NetProfit),
			metricPanel("Total Assets", colorTotalAssets, report.Years, report.TotalAssets),
			ratioPanel("ROE (%)", colorROE, report.Years, report.ROE),
			ratioPanel("ROI (%)", colorROI, report.Years, report.ROI),
			ratioPanel("Fin. Leverage", colorLeverage, report.Years, report.FinancialLeverage),
		},
	}
}

func metricPanel(title string, color models.RGB, years []models.YearLabel, series models.MetricSeries) models.Panel {
	bars := make([]models.Bar, 0, len(years))
	for _, y := range years {
		bars = append(bars, models.Bar{Year: y, Value: float64(series[y])})
	}
	return models.Panel{Title: title, Crore: true, Color: color, Bars: bars}
}

func ratioPanel(title string, color models.RGB, years []models.YearLabel, series models.RatioSeries) models.Panel {
	bars := make([]models.Bar, 0, len(years))
	for _, y := range years {
		v, ok := series.Get(y)
		bars = append(bars, models.Bar{Year: y, Value: v, Missing: !ok})
	}
	return models.Panel{Title: title, Color: color, Bars: bars}
}
