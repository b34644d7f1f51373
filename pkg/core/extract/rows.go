package extract

import (
	"fmt"
	"regexp"

	"financial_analyzer/pkg/models"
)

// SelectRows returns the data rows whose label matches pattern, a
// case-insensitive regular expression matched anywhere in the label.
func SelectRows(grid models.Grid, pattern string) ([]models.Row, error) {
	re, err := compileLabelPattern(pattern)
	if err != nil {
		return nil, err
	}
	return matchRows(grid.DataRows(), re), nil
}

// SelectRow returns the single row matching pattern.
//
// When several rows match, the alternatives of pattern are tried in order and
// the first one that matches anything decides; "total assets|total liabilities"
// therefore picks "Total Assets" on a sheet that carries both rows.
func SelectRow(grid models.Grid, pattern string) (models.Row, error) {
	matches, err := SelectRows(grid, pattern)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, &RowNotFoundError{Pattern: pattern}
	case 1:
		return matches[0], nil
	}

	for _, alt := range splitAlternatives(pattern) {
		re, err := compileLabelPattern(alt)
		if err != nil {
			continue
		}
		narrowed := matchRows(matches, re)
		if len(narrowed) == 0 {
			continue
		}
		if len(narrowed) == 1 {
			return narrowed[0], nil
		}
		return nil, &AmbiguousRowError{Pattern: pattern, Count: len(narrowed)}
	}
	return nil, &AmbiguousRowError{Pattern: pattern, Count: len(matches)}
}

func compileLabelPattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid row pattern %q: %w", pattern, err)
	}
	return re, nil
}

func matchRows(rows []models.Row, re *regexp.Regexp) []models.Row {
	var out []models.Row
	for _, row := range rows {
		if re.MatchString(row.Label()) {
			out = append(out, row)
		}
	}
	return out
}

// splitAlternatives splits pattern on top-level '|', leaving groups,
// character classes and escapes intact.
func splitAlternatives(pattern string) []string {
	var (
		alts    []string
		depth   int
		inClass bool
		start   int
	)
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == '|' && depth == 0:
			alts = append(alts, pattern[start:i])
			start = i + 1
		}
	}
	return append(alts, pattern[start:])
}
