// Package analyzer provides HTTP API handlers for company financial analysis.
package analyzer

import (
	"context"
	"encoding/json"
	"net/http"

	"financial_analyzer/pkg/core/report"
	"financial_analyzer/pkg/models"

	"github.com/sirupsen/logrus"
)

// Analyzer runs one company analysis.
type Analyzer interface {
	Analyze(ctx context.Context, companyID string) *models.AnalysisResult
}

// ChartRenderer renders the chart model of a report.
type ChartRenderer interface {
	RenderChart(chart models.Chart) (*models.Artifact, error)
}

// Handler holds dependencies for the analysis endpoints.
type Handler struct {
	Analyzer Analyzer
	Renderer ChartRenderer
	Log      logrus.FieldLogger
}

// NewHandler creates a new analysis handler.
func NewHandler(a Analyzer, renderer ChartRenderer, log logrus.FieldLogger) *Handler {
	return &Handler{Analyzer: a, Renderer: renderer, Log: log}
}

// Register mounts the endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/analyze", h.HandleAnalyze)
	mux.HandleFunc("/api/analyze/report", h.HandleReport)
	mux.HandleFunc("/api/analyze/chart", h.HandleChart)
	mux.HandleFunc("/healthz", HandleHealth)
}

// =============================================================================
// ANALYSIS HANDLERS
// =============================================================================

// HandleAnalyze handles GET /api/analyze?company=ID.
// Returns the AnalysisResult as JSON: 200 on success, 422 on failure.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	result := h.run(r)
	status := http.StatusOK
	if !result.OK() {
		status = http.StatusUnprocessableEntity
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result)
}

// HandleReport handles GET /api/analyze/report?company=ID and returns the
// summary as an HTML page.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	result := h.run(r)
	if !result.OK() {
		http.Error(w, result.Reason(), http.StatusUnprocessableEntity)
		return
	}

	page, err := report.SummaryHTML(result.Success)
	if err != nil {
		h.logger().WithError(err).Error("[Handler] Report rendering failed")
		http.Error(w, "Failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// HandleChart handles GET /api/analyze/chart?company=ID and returns the
// six-panel chart as a PDF.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r) {
		return
	}

	result := h.run(r)
	if !result.OK() {
		http.Error(w, result.Reason(), http.StatusUnprocessableEntity)
		return
	}

	artifact := result.Success.Artifact
	if artifact == nil {
		if h.Renderer == nil {
			http.Error(w, "Chart renderer not configured", http.StatusNotImplemented)
			return
		}
		var err error
		artifact, err = h.Renderer.RenderChart(result.Success.Chart)
		if err != nil {
			h.logger().WithError(err).Error("[Handler] Chart rendering failed")
			http.Error(w, "Failed to render chart", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+result.Company+`.pdf"`)
	w.Write(artifact.Data)
}

// HandleHealth handles GET /healthz.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) run(r *http.Request) *models.AnalysisResult {
	company := r.URL.Query().Get("company")
	result := h.Analyzer.Analyze(r.Context(), company)
	h.logger().WithFields(logrus.Fields{
		"company": result.Company,
		"ok":      result.OK(),
		"path":    r.URL.Path,
	}).Info("[Handler] Analysis served")
	return result
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// preflight sets CORS headers and answers OPTIONS. It reports whether the
// request should be handled further.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
