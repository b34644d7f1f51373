package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"financial_analyzer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func sampleReport() *models.Report {
	years := []models.YearLabel{"2024", "2025"}
	r := &models.Report{
		RunID:             "run-1",
		Company:           "TCS",
		GeneratedAt:       time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		Years:             years,
		Revenue:           models.MetricSeries{"2024": 240893, "2025": 255324},
		NetProfit:         models.MetricSeries{"2024": 46099, "2025": 48797},
		EquityCapital:     models.MetricSeries{"2024": 362, "2025": 362},
		Reserves:          models.MetricSeries{"2024": 90127, "2025": 94394},
		TotalAssets:       models.MetricSeries{"2024": 145012, "2025": 156000},
		ROE:               models.RatioSeries{"2024": f(50.94), "2025": nil},
		ROI:               models.RatioSeries{"2024": f(31.79), "2025": f(31.28)},
		FinancialLeverage: models.RatioSeries{"2024": f(1.6), "2025": nil},
		Trends: []models.Narrative{
			{Label: "ROE", Text: "ROE data not available for comparison."},
			{Label: "ROI", Available: true, Text: "ROI has fallen from 31.79% in 2024 to 31.28% in 2025 (-0.51 points). It barely changed — nearly flat movement."},
		},
	}
	r.Chart = models.Chart{
		Title: "TCS",
		Years: years,
		Panels: []models.Panel{
			{Title: "Revenue", Crore: true, Color: models.RGB{R: 0x66, G: 0xc2, B: 0xa5}, Bars: []models.Bar{{Year: "2024", Value: 240893}, {Year: "2025", Value: 255324}}},
			{Title: "Net Profit", Crore: true, Bars: []models.Bar{{Year: "2024", Value: -120}, {Year: "2025", Value: 48797}}},
			{Title: "Total Assets", Crore: true, Bars: []models.Bar{{Year: "2024", Value: 0}, {Year: "2025", Value: 0}}},
			{Title: "ROE (%)", Bars: []models.Bar{{Year: "2024", Value: 50.94}, {Year: "2025", Missing: true}}},
			{Title: "ROI (%)", Bars: []models.Bar{{Year: "2024", Value: 31.79}, {Year: "2025", Value: 31.28}}},
			{Title: "Fin. Leverage"},
		},
	}
	return r
}

func TestFormatWithSuffix(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{15_000_000, "1.5Cr"},
		{10_000_000, "1.0Cr"},
		{240893, "2.4L"},
		{100_000, "1.0L"},
		{99_999, "100.0K"},
		{1_250, "1.2K"},
		{1_350, "1.4K"},
		{999, "999"},
		{22.5, "22.5"},
		{0, "0"},
		{-5000, "-5000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWithSuffix(tt.in), "FormatWithSuffix(%v)", tt.in)
	}
	assert.Equal(t, "n/a", FormatWithSuffix(math.NaN()))
}

func TestPanelAndBarLabels(t *testing.T) {
	assert.Equal(t, "Revenue (Rs. Cr)", PanelTitle(models.Panel{Title: "Revenue", Crore: true}))
	assert.Equal(t, "ROE (%)", PanelTitle(models.Panel{Title: "ROE (%)"}))
	assert.Equal(t, "n/a", BarLabel(models.Bar{Missing: true}))
	assert.Equal(t, "48.8K", BarLabel(models.Bar{Value: 48797}))
}

func TestPDFChartRenderer(t *testing.T) {
	r := NewPDFChartRenderer(nil)

	artifact, err := r.RenderChart(sampleReport().Chart)

	require.NoError(t, err)
	assert.Equal(t, ContentTypePDF, artifact.ContentType)
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF-")))
}

func TestPDFChartRenderer_TooManyPanels(t *testing.T) {
	chart := models.Chart{Panels: make([]models.Panel, 7)}
	_, err := NewPDFChartRenderer(nil).Render(chart)
	assert.Error(t, err)
}

func TestSummaryMarkdown(t *testing.T) {
	md := SummaryMarkdown(sampleReport())

	assert.True(t, strings.HasPrefix(md, "# Financial analysis: TCS\n"))
	assert.Contains(t, md, "- ROE data not available for comparison.\n")
	assert.Contains(t, md, "| 2024 | 240893 | 46099 | 362 | 90127 | 145012 | 50.94 | 31.79 | 1.60 |")
	assert.Contains(t, md, "| 2025 | 255324 | 48797 | 362 | 94394 | 156000 | n/a | 31.28 | n/a |")
	assert.True(t, ValidateMarkdown(md))
}

func TestSummaryHTML(t *testing.T) {
	page, err := SummaryHTML(sampleReport())
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>Financial analysis: TCS</title>")
	assert.Contains(t, html, "<h1>Financial analysis: TCS</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "50.94</td>")
}

func TestRenderHTML_RejectsEmptyDocument(t *testing.T) {
	assert.False(t, ValidateMarkdown(""))
	assert.False(t, ValidateMarkdown("  \n\n"))

	_, err := RenderHTML("\n", "empty")
	assert.Error(t, err)

	page, err := RenderHTML("# Title", "t")
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Title</h1>")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "== TCS ==")
	assert.Contains(t, out, "• ROI has fallen from 31.79%")
	assert.Contains(t, out, "Fin. Leverage")
	assert.Contains(t, out, "240893")

	buf.Reset()
	WriteFailure(&buf, models.Failed("NOPE", models.StageFetch, "Failed to fetch data. Status Code: 404"))
	assert.Equal(t, "== NOPE ==\nError: Failed to fetch data. Status Code: 404\n", buf.String())
}
