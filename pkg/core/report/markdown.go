package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"financial_analyzer/pkg/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// SummaryMarkdown writes the report as Markdown: the trend narratives
// followed by a per-year table of statement values and ratios.
func SummaryMarkdown(r *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial analysis: %s\n\n", r.Company)
	fmt.Fprintf(&b, "_Run %s, generated %s_\n\n", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	b.WriteString("## Trends\n\n")
	for _, n := range r.Trends {
		fmt.Fprintf(&b, "- %s\n", n.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Figures\n\n")
	headers := tableHeaders()
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" ---: |", len(headers)) + "\n")
	for _, row := range tableRows(r) {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

// ValidateMarkdown reports whether input parses into a non-empty document.
func ValidateMarkdown(input string) bool {
	doc := goldmark.DefaultParser().Parse(text.NewReader([]byte(input)))
	return doc != nil && doc.HasChildren()
}

// RenderHTML converts Markdown to a standalone HTML page titled title. An
// empty document is an error.
func RenderHTML(markdown, title string) ([]byte, error) {
	if !ValidateMarkdown(markdown) {
		return nil, fmt.Errorf("markdown document for %q is empty", title)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")
	return page.Bytes(), nil
}

// SummaryHTML renders the report summary as an HTML page.
func SummaryHTML(r *models.Report) ([]byte, error) {
	return RenderHTML(SummaryMarkdown(r), "Financial analysis: "+r.Company)
}

func tableHeaders() []string {
	return []string{"Year", "Sales", "Net Profit", "Equity", "Reserves", "Total Assets", "ROE %", "ROI %", "Fin. Leverage"}
}

// tableRows returns one row per year, oldest first.
func tableRows(r *models.Report) [][]string {
	rows := make([][]string, 0, len(r.Years))
	for _, y := range r.Years {
		rows = append(rows, []string{
			string(y),
			fmt.Sprint(r.Revenue[y]),
			fmt.Sprint(r.NetProfit[y]),
			fmt.Sprint(r.EquityCapital[y]),
			fmt.Sprint(r.Reserves[y]),
			fmt.Sprint(r.TotalAssets[y]),
			formatRatio(r.ROE[y]),
			formatRatio(r.ROI[y]),
			formatRatio(r.FinancialLeverage[y]),
		})
	}
	return rows
}
