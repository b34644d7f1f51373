package report

import (
	"fmt"
	"io"

	"financial_analyzer/pkg/models"

	"github.com/olekukonko/tablewriter"
)

// WriteText prints the narratives and the per-year table for a terminal.
func WriteText(w io.Writer, r *models.Report) {
	fmt.Fprintf(w, "== %s ==\n", r.Company)
	for _, n := range r.Trends {
		fmt.Fprintf(w, "• %s\n", n.Text)
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeaders())
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(tableRows(r))
	table.Render()
}

// WriteFailure prints a failed run.
func WriteFailure(w io.Writer, res *models.AnalysisResult) {
	fmt.Fprintf(w, "== %s ==\nError: %s\n", res.Company, res.Reason())
}
