package extract

import (
	"sort"
	"strings"

	"financial_analyzer/pkg/models"
)

// MaxYears caps the number of reporting years an analysis covers.
const MaxYears = 5

// trailingPeriodMarker flags partial-period columns such as "TTM".
const trailingPeriodMarker = "TTM"

// MetricRow is a selected metric row together with the header of the grid it
// came from. The first MetricRow passed to AlignYears defines the year columns.
type MetricRow struct {
	Metric models.Metric
	Header models.Row
	Row    models.Row
}

// Alignment is the set of selected years and the per-metric series restricted to them.
type Alignment struct {
	Years  []models.YearLabel // newest first
	Series map[models.Metric]models.MetricSeries
}

// YearColumns maps each YearLabel in header to the index of its value cell.
// Trailing-period columns and headers without digits are skipped. When two
// headers reduce to the same label the rightmost column wins.
func YearColumns(header models.Row) map[models.YearLabel]int {
	cols := make(map[models.YearLabel]int)
	for i, h := range header.Values() {
		if strings.Contains(strings.ToUpper(h), trailingPeriodMarker) {
			continue
		}
		label := YearLabelOf(h)
		if label == "" {
			continue
		}
		cols[label] = i
	}
	return cols
}

// YearLabelOf keeps only the digits of a period header ("Mar 2024" -> "2024").
func YearLabelOf(header string) models.YearLabel {
	var b strings.Builder
	for _, r := range header {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return models.YearLabel(b.String())
}

// headerIndex maps each header text to its value-cell index, rightmost wins.
func headerIndex(header models.Row) map[string]int {
	idx := make(map[string]int)
	for i, h := range header.Values() {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	return idx
}

// AlignYears selects the most recent years present in every input row and
// builds the normalized series for each metric. maxYears outside 1..MaxYears
// falls back to MaxYears.
//
// Year columns come from the first input's header. Every other row is read
// from the column carrying the same header text, so a trailing half-year
// column such as "Sep 2025" in one table never stands in for "Mar 2025".
func AlignYears(inputs []MetricRow, maxYears int) (*Alignment, error) {
	if maxYears <= 0 || maxYears > MaxYears {
		maxYears = MaxYears
	}
	if len(inputs) == 0 {
		return nil, &InsufficientYearsError{}
	}

	reference := inputs[0].Header.Values()
	periods := make(map[models.YearLabel]string)
	for label, i := range YearColumns(inputs[0].Header) {
		periods[label] = strings.ToUpper(strings.TrimSpace(reference[i]))
	}

	type columnIndex struct {
		cols   map[models.YearLabel]int
		values []int64
	}
	indexes := make([]columnIndex, len(inputs))

	common := make(map[models.YearLabel]bool, len(periods))
	for label := range periods {
		common[label] = true
	}
	for i, in := range inputs {
		if len(in.Row.Values()) == 0 {
			return nil, &MissingMetricError{Metric: in.Metric}
		}

		values, err := NormalizeRow(in.Row, len(in.Header.Values()))
		if err != nil {
			return nil, err
		}
		byText := headerIndex(in.Header)
		cols := make(map[models.YearLabel]int, len(periods))
		for label, text := range periods {
			idx, ok := byText[text]
			if !ok || idx >= len(in.Row.Values()) {
				delete(common, label)
				continue
			}
			cols[label] = idx
		}
		indexes[i] = columnIndex{cols: cols, values: values}
	}

	years := make([]models.YearLabel, 0, len(common))
	for label := range common {
		years = append(years, label)
	}
	if len(years) == 0 {
		return nil, &InsufficientYearsError{}
	}
	sort.Slice(years, func(i, j int) bool { return years[j].Before(years[i]) })
	if len(years) > maxYears {
		years = years[:maxYears]
	}

	alignment := &Alignment{
		Years:  years,
		Series: make(map[models.Metric]models.MetricSeries, len(inputs)),
	}
	for i, in := range inputs {
		series := make(models.MetricSeries, len(years))
		for _, y := range years {
			series[y] = indexes[i].values[indexes[i].cols[y]]
		}
		alignment.Series[in.Metric] = series
	}
	return alignment, nil
}
