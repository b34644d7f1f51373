// Package trend classifies the change of a ratio between two anchor years
// into ordered qualitative bands and writes the narrative sentence.
package trend

import (
	"math"

	"financial_analyzer/pkg/models"
)

// Band is one interval of the delta classification.
type Band struct {
	Lower          float64
	Upper          float64
	LowerInclusive bool
	UpperInclusive bool
	Phrase         string
	Direction      models.Direction
}

// Contains reports whether delta falls inside the band.
func (b Band) Contains(delta float64) bool {
	if delta < b.Lower || (delta == b.Lower && !b.LowerInclusive) {
		return false
	}
	if delta > b.Upper || (delta == b.Upper && !b.UpperInclusive) {
		return false
	}
	return true
}

// FallbackPhrase is used for deltas no band covers (NaN).
const FallbackPhrase = "changed in an unexpected way — further verification recommended"

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// decline builds [lower, upper).
func decline(lower, upper float64, phrase string) Band {
	return Band{Lower: lower, Upper: upper, LowerInclusive: true, Phrase: phrase, Direction: models.DirectionDecline}
}

// growth builds (lower, upper].
func growth(lower, upper float64, phrase string) Band {
	return Band{Lower: lower, Upper: upper, UpperInclusive: true, Phrase: phrase, Direction: models.DirectionGrowth}
}

// Bands is ordered from the most negative delta to the most positive. The
// negative side is lower-inclusive, the positive side upper-inclusive, and
// zero has a band of its own.
var Bands = []Band{
	{Lower: negInf, Upper: -100, LowerInclusive: true, Phrase: "has collapsed catastrophically — performance has deteriorated beyond typical bounds", Direction: models.DirectionDecline},
	decline(-100, -50, "plunged severely — this indicates extreme financial distress"),
	decline(-50, -30, "fell drastically — suggests a major weakness in performance"),
	decline(-30, -20, "declined substantially — a red flag worth investigating"),
	decline(-20, -15, "dropped heavily — possibly due to internal or market issues"),
	decline(-15, -10, "fell sharply — negative trend is clearly visible"),
	decline(-10, -7, "declined significantly — consider examining the cause"),
	decline(-7, -5, "moderately declined — could reflect early signs of weakness"),
	decline(-5, -3, "noticeably declined — monitor closely"),
	decline(-3, -2, "slightly declined — not alarming but worth attention"),
	decline(-2, -1, "marginally decreased — almost stable"),
	decline(-1, 0, "barely changed — nearly flat movement"),
	{Lower: 0, Upper: 0, LowerInclusive: true, UpperInclusive: true, Phrase: "remained stable with minimal change", Direction: models.DirectionStable},
	growth(0, 1, "barely changed — nearly flat movement"),
	growth(1, 2, "marginally improved — almost stable"),
	growth(2, 3, "slightly improved — early growth signs"),
	growth(3, 5, "noticeably improved — some positive development"),
	growth(5, 7, "moderately improved — momentum is building"),
	growth(7, 10, "significantly increased — a strong trend upward"),
	growth(10, 15, "grew sharply — positive direction is clear"),
	growth(15, 20, "improved strongly — may reflect strategic success"),
	growth(20, 30, "rose substantially — indicates strong financial growth"),
	growth(30, 50, "surged impressively — transformation in performance"),
	growth(50, 100, "skyrocketed — business is thriving exceptionally"),
	{Lower: 100, Upper: posInf, UpperInclusive: true, Phrase: "exploded upward — extraordinary results, investigate for unusual gains", Direction: models.DirectionGrowth},
}

// Classify returns the band containing delta.
func Classify(delta float64) (Band, bool) {
	for _, b := range Bands {
		if b.Contains(delta) {
			return b, true
		}
	}
	return Band{}, false
}
