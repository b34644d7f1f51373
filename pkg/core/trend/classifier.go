package trend

import (
	"fmt"

	"financial_analyzer/pkg/core/calc"
	"financial_analyzer/pkg/models"
)

// Subject is a ratio series to narrate.
type Subject struct {
	Label  string // "ROE"
	Unit   string // appended to each value, "%" for percentages
	Series models.RatioSeries
}

// Compare narrates the change of subject between the earlier and later anchor years.
// A missing or absent value at either anchor gives an unavailable narrative
// rather than an error.
func Compare(subject Subject, earlier, later models.YearLabel) models.Narrative {
	n := models.Narrative{
		Label:   subject.Label,
		Earlier: earlier,
		Later:   later,
	}

	v1, ok1 := subject.Series.Get(earlier)
	v2, ok2 := subject.Series.Get(later)
	if !ok1 || !ok2 {
		n.Text = fmt.Sprintf("%s data not available for comparison.", subject.Label)
		return n
	}

	delta := calc.Round2(v2 - v1)
	if delta == 0 {
		delta = 0 // drop a negative zero
	}

	phrase := FallbackPhrase
	direction := models.DirectionStable
	if band, ok := Classify(delta); ok {
		phrase = band.Phrase
		direction = band.Direction
	}

	n.Available = true
	n.From = v1
	n.To = v2
	n.Delta = delta
	n.Direction = direction
	n.Phrase = phrase
	n.Text = fmt.Sprintf("%s has %s from %.2f%s in %s to %.2f%s in %s (%+.2f points). It %s.",
		subject.Label, directionWord(delta),
		v1, subject.Unit, earlier,
		v2, subject.Unit, later,
		delta, phrase)
	return n
}

func directionWord(delta float64) string {
	switch {
	case delta > 0:
		return "risen"
	case delta < 0:
		return "fallen"
	default:
		return "remained the same"
	}
}

// Anchors picks the comparison years: the configured pair when both are
// given, otherwise the oldest and newest of years.
func Anchors(years []models.YearLabel, configured []models.YearLabel) (earlier, later models.YearLabel) {
	if len(configured) == 2 {
		return configured[0], configured[1]
	}
	if len(years) == 0 {
		return "", ""
	}
	earlier, later = years[0], years[0]
	for _, y := range years[1:] {
		if y.Before(earlier) {
			earlier = y
		}
		if later.Before(y) {
			later = y
		}
	}
	return earlier, later
}
