package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hale/groundwork/internal/domain/model"
)

// SignalsDependencies defines the interface for feasibility evaluation.
type SignalsDependencies interface {
	Signals(entry model.QuickAnalysisEntry, zoning *model.ZoningContext, topMix *model.MixAllocation) model.FeasibilitySignals
}

// SignalsHandler handles feasibility signal requests.
type SignalsHandler struct {
	deps SignalsDependencies
}

// NewSignalsHandler creates a new signals handler.
func NewSignalsHandler(deps SignalsDependencies) *SignalsHandler {
	return &SignalsHandler{deps: deps}
}

// signalsRequest mirrors a quick analysis entry plus its optional contexts.
// Metrics arrive untyped and are coerced at this boundary.
type signalsRequest struct {
	Scenario      string               `json:"scenario"`
	Metrics       map[string]any       `json:"metrics"`
	Notes         []string             `json:"notes"`
	Zoning        *model.ZoningContext `json:"zoning"`
	TopAllocation *model.MixAllocation `json:"top_allocation"`
}

// HandleSignals handles POST /signals requests.
func (h *SignalsHandler) HandleSignals(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_signals"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req signalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entry := model.QuickAnalysisEntry{
		Scenario: strings.TrimSpace(req.Scenario),
		Metrics:  model.DecodeMetrics(req.Metrics),
		Notes:    req.Notes,
	}
	writeJSON(w, http.StatusOK, h.deps.Signals(entry, req.Zoning, req.TopAllocation))
}
