// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hale/groundwork/internal/app"
	"github.com/hale/groundwork/internal/domain/checklist"
	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
	"github.com/hale/groundwork/internal/export"
)

// View and Comparison mirror the read shapes assembled by the orchestrator.
type (
	View       = app.View
	Comparison = app.Comparison
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AssessmentView refreshes and returns the workspace display state.
	AssessmentView(ctx context.Context, propertyID, scenario string) (View, error)

	// History returns persisted assessments, newest first.
	History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error)

	// Comparisons diffs scenario assessments against a baseline.
	Comparisons(ctx context.Context, propertyID, baseline string) (*model.ConditionAssessment, []Comparison, error)

	// SaveDraft persists a submitted assessment draft.
	SaveDraft(ctx context.Context, propertyID string, d draft.Assessment) (View, error)

	// Export renders a downloadable condition report.
	Export(ctx context.Context, propertyID string, format export.Format) (export.Report, error)

	// Signals evaluates feasibility signals for a quick analysis entry.
	Signals(entry model.QuickAnalysisEntry, zoning *model.ZoningContext, topMix *model.MixAllocation) model.FeasibilitySignals

	// Checklist operations expose due diligence progress.
	ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error)
	ChecklistSummary(ctx context.Context, propertyID, scenario string) (checklist.Summary, error)
	SetChecklistStatus(ctx context.Context, itemID, status string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	assessmentHandler *AssessmentHandler
	scenariosHandler  *ScenariosHandler
	exportHandler     *ExportHandler
	signalsHandler    *SignalsHandler
	checklistHandler  *ChecklistHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxHistoryLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		assessmentHandler: NewAssessmentHandler(deps, maxHistoryLimit),
		scenariosHandler:  NewScenariosHandler(deps),
		exportHandler:     NewExportHandler(deps),
		signalsHandler:    NewSignalsHandler(deps),
		checklistHandler:  NewChecklistHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/assessment", MetricsMiddleware(s.assessmentHandler.HandleAssessment, "assessment"))
	mux.HandleFunc("/assessment/history", MetricsMiddleware(s.assessmentHandler.HandleHistory, "assessment_history"))
	mux.HandleFunc("/assessment/scenarios", MetricsMiddleware(s.scenariosHandler.HandleScenarios, "assessment_scenarios"))
	mux.HandleFunc("/assessment/export", MetricsMiddleware(s.exportHandler.HandleExport, "assessment_export"))
	mux.HandleFunc("/signals", MetricsMiddleware(s.signalsHandler.HandleSignals, "signals"))
	mux.HandleFunc("/checklist", MetricsMiddleware(s.checklistHandler.HandleItems, "checklist"))
	mux.HandleFunc("/checklist/summary", MetricsMiddleware(s.checklistHandler.HandleSummary, "checklist_summary"))
	mux.HandleFunc("/checklist/status", MetricsMiddleware(s.checklistHandler.HandleSetStatus, "checklist_status"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// propertyParam extracts the required property query parameter.
func propertyParam(r *http.Request) (string, bool) {
	id := r.URL.Query().Get("property")
	return id, id != ""
}
