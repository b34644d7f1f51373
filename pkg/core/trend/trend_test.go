package trend

import (
	"math"
	"testing"

	"financial_analyzer/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestBands_CoverageIsTotalAndNonOverlapping(t *testing.T) {
	deltas := []float64{math.Inf(-1), -1e9, math.Inf(1), 1e9}
	for _, b := range Bands {
		for _, edge := range []float64{b.Lower, b.Upper} {
			if math.IsInf(edge, 0) {
				continue
			}
			deltas = append(deltas, edge, math.Nextafter(edge, math.Inf(-1)), math.Nextafter(edge, math.Inf(1)))
		}
	}
	for d := -150.0; d <= 150.0; d += 0.25 {
		deltas = append(deltas, d)
	}

	for _, d := range deltas {
		count := 0
		for _, b := range Bands {
			if b.Contains(d) {
				count++
			}
		}
		assert.Equal(t, 1, count, "delta %v must fall in exactly one band", d)
	}

	_, ok := Classify(math.NaN())
	assert.False(t, ok)
}

func TestBands_AreOrdered(t *testing.T) {
	for i := 1; i < len(Bands); i++ {
		assert.Equal(t, Bands[i-1].Upper, Bands[i].Lower, "band %d must start where band %d ends", i, i-1)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		delta     float64
		phrase    string
		direction models.Direction
	}{
		{0, "remained stable with minimal change", models.DirectionStable},
		{0.5, "barely changed — nearly flat movement", models.DirectionGrowth},
		{1.0, "barely changed — nearly flat movement", models.DirectionGrowth},
		{1.01, "marginally improved — almost stable", models.DirectionGrowth},
		{-1.0, "barely changed — nearly flat movement", models.DirectionDecline},
		{-1.01, "marginally decreased — almost stable", models.DirectionDecline},
		{-0.99, "barely changed — nearly flat movement", models.DirectionDecline},
		{-100, "plunged severely — this indicates extreme financial distress", models.DirectionDecline},
		{-100.01, "has collapsed catastrophically — performance has deteriorated beyond typical bounds", models.DirectionDecline},
		{100, "skyrocketed — business is thriving exceptionally", models.DirectionGrowth},
		{100.01, "exploded upward — extraordinary results, investigate for unusual gains", models.DirectionGrowth},
		{35, "surged impressively — transformation in performance", models.DirectionGrowth},
		{-30, "declined substantially — a red flag worth investigating", models.DirectionDecline},
		{-30.01, "fell drastically — suggests a major weakness in performance", models.DirectionDecline},
		{-50, "fell drastically — suggests a major weakness in performance", models.DirectionDecline},
		{math.Inf(-1), "has collapsed catastrophically — performance has deteriorated beyond typical bounds", models.DirectionDecline},
		{math.Inf(1), "exploded upward — extraordinary results, investigate for unusual gains", models.DirectionGrowth},
	}

	for _, tt := range tests {
		band, ok := Classify(tt.delta)
		require.True(t, ok)
		assert.Equal(t, tt.phrase, band.Phrase, "delta %v", tt.delta)
		assert.Equal(t, tt.direction, band.Direction, "delta %v", tt.delta)
	}

	half, _ := Classify(0.5)
	one, _ := Classify(1.0)
	zero, _ := Classify(0)
	assert.NotEqual(t, zero, half)
	assert.Equal(t, half, one, "0.5 and 1.0 share the (0,1] band")
	onePlus, _ := Classify(1.5)
	assert.NotEqual(t, one, onePlus)
}

func TestCompare_RisingROE(t *testing.T) {
	n := Compare(Subject{Label: "ROE", Unit: "%", Series: models.RatioSeries{"2021": f(10.0), "2025": f(45.0)}}, "2021", "2025")

	assert.True(t, n.Available)
	assert.Equal(t, 35.0, n.Delta)
	assert.Equal(t, models.DirectionGrowth, n.Direction)
	assert.Equal(t, "ROE has risen from 10.00% in 2021 to 45.00% in 2025 (+35.00 points). It surged impressively — transformation in performance.", n.Text)
}

func TestCompare_FallingAndFlat(t *testing.T) {
	n := Compare(Subject{Label: "ROI", Unit: "%", Series: models.RatioSeries{"2021": f(12.5), "2025": f(10.25)}}, "2021", "2025")
	assert.Equal(t, -2.25, n.Delta)
	assert.Equal(t, "ROI has fallen from 12.50% in 2021 to 10.25% in 2025 (-2.25 points). It slightly declined — not alarming but worth attention.", n.Text)

	n = Compare(Subject{Label: "ROI", Unit: "%", Series: models.RatioSeries{"2021": f(7.1), "2025": f(7.1)}}, "2021", "2025")
	assert.Equal(t, "ROI has remained the same from 7.10% in 2021 to 7.10% in 2025 (+0.00 points). It remained stable with minimal change.", n.Text)
	assert.Equal(t, models.DirectionStable, n.Direction)
}

func TestCompare_DeltaIsRounded(t *testing.T) {
	// 0.3 - 0.1 is 0.19999999999999998 in binary floating point.
	n := Compare(Subject{Label: "ROE", Unit: "%", Series: models.RatioSeries{"2021": f(0.1), "2025": f(0.3)}}, "2021", "2025")
	assert.Equal(t, 0.2, n.Delta)
}

func TestCompare_Unavailable(t *testing.T) {
	tests := []struct {
		name   string
		series models.RatioSeries
	}{
		{"absent value", models.RatioSeries{"2021": f(10), "2023": nil}},
		{"missing year", models.RatioSeries{"2021": f(10)}},
		{"empty series", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Compare(Subject{Label: "ROE", Unit: "%", Series: tt.series}, "2021", "2023")
			assert.False(t, n.Available)
			assert.Equal(t, "ROE data not available for comparison.", n.Text)
		})
	}
}

func TestAnchors(t *testing.T) {
	years := []models.YearLabel{"2025", "2024", "2023", "2022", "2021"}

	e, l := Anchors(years, nil)
	assert.Equal(t, models.YearLabel("2021"), e)
	assert.Equal(t, models.YearLabel("2025"), l)

	e, l = Anchors(years, []models.YearLabel{"2022", "2024"})
	assert.Equal(t, models.YearLabel("2022"), e)
	assert.Equal(t, models.YearLabel("2024"), l)

	e, l = Anchors(nil, nil)
	assert.Empty(t, e)
	assert.Empty(t, l)
}
