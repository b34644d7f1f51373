package extract

import (
	"strconv"
	"strings"

	"financial_analyzer/pkg/models"
)

// NormalizeCell converts a free-form numeric cell into a whole-unit magnitude.
//
// Every character other than a digit or '-' is removed, so currency symbols,
// thousands separators, parentheses and decimal points all disappear. An empty
// result, or one that is still not an integer ("-", "1-2"), becomes 0.
// Partial data must not abort an analysis.
func NormalizeCell(s string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeRow coerces the value cells of row into width magnitudes.
// Missing trailing cells become 0. A row with no value cells at all is a
// structural error.
func NormalizeRow(row models.Row, width int) ([]int64, error) {
	values := row.Values()
	if len(values) == 0 {
		return nil, &TableParseError{Detail: "row " + strconv.Quote(row.Label()) + " has no value cells"}
	}

	out := make([]int64, width)
	for i := 0; i < width && i < len(values); i++ {
		out[i] = NormalizeCell(values[i])
	}
	return out, nil
}
