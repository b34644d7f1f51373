package extract

import (
	"fmt"
	"strings"

	"financial_analyzer/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// Default section IDs on a Screener.in company page.
const (
	SectionProfitLoss   = "profit-loss"
	SectionBalanceSheet = "balance-sheet"
)

// LocateTables finds each named section in html and reads its first table.
// Grids are returned in the order the section IDs were given.
func LocateTables(html string, sectionIDs ...string) ([]models.Grid, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &TableParseError{Detail: err.Error()}
	}

	grids := make([]models.Grid, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		grid, err := locateSection(doc, id)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

// locateSection reads the first table under section#id. Any element carrying
// the id is accepted when there is no <section> with it.
func locateSection(doc *goquery.Document, id string) (models.Grid, error) {
	section := doc.Find(fmt.Sprintf("section[id=%q]", id)).First()
	if section.Length() == 0 {
		section = doc.Find(fmt.Sprintf("[id=%q]", id)).First()
	}
	if section.Length() == 0 {
		return models.Grid{}, &StructureError{Section: id}
	}

	table := section.Find("table").First()
	if table.Length() == 0 {
		return models.Grid{}, &StructureError{Section: id}
	}

	grid := ParseTable(table)
	grid.Section = id

	if len(grid.Rows) < 2 {
		return models.Grid{}, &TableParseError{Section: id, Detail: "table has no data rows"}
	}
	if len(grid.Header()) < 2 {
		return models.Grid{}, &TableParseError{Section: id, Detail: "header has no period columns"}
	}
	return grid, nil
}

// ParseTable reads every <tr> of table into a grid of cell texts.
// Nested tables are ignored; rows without cells are skipped.
func ParseTable(table *goquery.Selection) models.Grid {
	var grid models.Grid
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.ParentsFiltered("table").First().Get(0) != table.Get(0) {
			return
		}
		var row models.Row
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cleanCellText(cell.Text()))
		})
		if len(row) > 0 {
			grid.Rows = append(grid.Rows, row)
		}
	})
	return grid
}

// cleanCellText collapses runs of whitespace (non-breaking spaces included)
// into single spaces.
func cleanCellText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
