package report

import (
	"bytes"
	"fmt"
	"math"

	"financial_analyzer/pkg/models"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// ContentTypePDF is the content type of a rendered chart.
const ContentTypePDF = "application/pdf"

// Page geometry in millimetres (A4 landscape).
const (
	pageW        = 297.0
	pageH        = 210.0
	margin       = 10.0
	headerH      = 14.0
	panelCols    = 3
	panelRows    = 2
	panelPadding = 6.0
	titleH       = 8.0
	axisLabelH   = 6.0
	barFraction  = 0.4
)

var (
	background = models.RGB{R: 0x1e, G: 0x1e, B: 0x1e}
	foreground = models.RGB{R: 0xff, G: 0xff, B: 0xff}
	axisColor  = models.RGB{R: 0x80, G: 0x80, B: 0x80}
)

// PDFChartRenderer draws the chart model as a single-page PDF with the
// panels laid out in a 2x3 grid on a dark background.
type PDFChartRenderer struct {
	log logrus.FieldLogger
}

// NewPDFChartRenderer creates a renderer. log may be nil.
func NewPDFChartRenderer(log logrus.FieldLogger) *PDFChartRenderer {
	return &PDFChartRenderer{log: log}
}

// RenderChart implements pipeline.ChartRenderer.
func (r *PDFChartRenderer) RenderChart(chart models.Chart) (*models.Artifact, error) {
	data, err := r.Render(chart)
	if err != nil {
		return nil, err
	}
	return &models.Artifact{ContentType: ContentTypePDF, Data: data}, nil
}

// Render returns the PDF bytes for chart.
func (r *PDFChartRenderer) Render(chart models.Chart) ([]byte, error) {
	if len(chart.Panels) > panelCols*panelRows {
		return nil, fmt.Errorf("chart has %d panels, at most %d fit a page", len(chart.Panels), panelCols*panelRows)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(chart.Title, false)
	pdf.AddPage()

	setFill(pdf, background)
	pdf.Rect(0, 0, pageW, pageH, "F")

	setText(pdf, foreground)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, headerH-4, chart.Title, "", 0, "L", false, 0, "")

	cellW := (pageW - 2*margin) / panelCols
	cellH := (pageH - 2*margin - headerH) / panelRows
	for i, panel := range chart.Panels {
		x := margin + float64(i%panelCols)*cellW
		y := margin + headerH + float64(i/panelCols)*cellH
		drawPanel(pdf, panel, x, y, cellW, cellH)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	if r.log != nil {
		r.log.WithFields(logrus.Fields{"title": chart.Title, "pdf_size": buf.Len()}).Debug("[Report] Chart rendered")
	}
	return buf.Bytes(), nil
}

// PanelTitle is the heading drawn above a panel.
func PanelTitle(p models.Panel) string {
	if p.Crore {
		return p.Title + " (Rs. Cr)"
	}
	return p.Title
}

// BarLabel is the value label drawn on a bar.
func BarLabel(b models.Bar) string {
	if b.Missing {
		return "n/a"
	}
	return FormatWithSuffix(b.Value)
}

func drawPanel(pdf *fpdf.Fpdf, p models.Panel, x, y, w, h float64) {
	setText(pdf, foreground)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, titleH, PanelTitle(p), "", 0, "C", false, 0, "")

	plotX := x + panelPadding
	plotY := y + titleH + panelPadding
	plotW := w - 2*panelPadding
	plotH := h - titleH - 2*panelPadding - axisLabelH
	if len(p.Bars) == 0 || plotW <= 0 || plotH <= 0 {
		return
	}

	hi, lo := 0.0, 0.0
	for _, b := range p.Bars {
		hi = math.Max(hi, b.Value)
		lo = math.Min(lo, b.Value)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	baseline := plotY + plotH*hi/span

	setDraw(pdf, axisColor)
	pdf.SetLineWidth(0.2)
	pdf.Line(plotX, baseline, plotX+plotW, baseline)

	slot := plotW / float64(len(p.Bars))
	barW := slot * barFraction
	pdf.SetFont("Helvetica", "", 7)
	for i, b := range p.Bars {
		bx := plotX + float64(i)*slot + (slot-barW)/2
		bh := math.Abs(b.Value) / span * plotH

		top := baseline - bh
		if b.Value < 0 {
			top = baseline
		}
		if bh > 0 {
			setFill(pdf, p.Color)
			pdf.Rect(bx, top, barW, bh, "F")
		}

		labelY := top - 4
		if b.Value < 0 {
			labelY = top + bh
		}
		setText(pdf, foreground)
		pdf.SetXY(bx-slot/4, labelY)
		pdf.CellFormat(barW+slot/2, 4, BarLabel(b), "", 0, "C", false, 0, "")

		pdf.SetXY(plotX+float64(i)*slot, plotY+plotH+1)
		pdf.CellFormat(slot, axisLabelH-1, string(b.Year), "", 0, "C", false, 0, "")
	}
}

func setFill(pdf *fpdf.Fpdf, c models.RGB) { pdf.SetFillColor(c.R, c.G, c.B) }
func setDraw(pdf *fpdf.Fpdf, c models.RGB) { pdf.SetDrawColor(c.R, c.G, c.B) }
func setText(pdf *fpdf.Fpdf, c models.RGB) { pdf.SetTextColor(c.R, c.G, c.B) }
