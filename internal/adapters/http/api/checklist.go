package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hale/groundwork/internal/adapters/repository"
	"github.com/hale/groundwork/internal/domain/checklist"
	"github.com/hale/groundwork/internal/domain/model"
)

// ChecklistDependencies defines the interface for checklist operations.
type ChecklistDependencies interface {
	ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error)
	ChecklistSummary(ctx context.Context, propertyID, scenario string) (checklist.Summary, error)
	SetChecklistStatus(ctx context.Context, itemID, status string) error
}

// ChecklistHandler handles due diligence checklist requests.
type ChecklistHandler struct {
	deps ChecklistDependencies
}

// NewChecklistHandler creates a new checklist handler.
func NewChecklistHandler(deps ChecklistDependencies) *ChecklistHandler {
	return &ChecklistHandler{deps: deps}
}

// HandleItems handles GET /checklist?property=ID&scenario=S.
func (h *ChecklistHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_checklist"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	items, err := h.deps.ChecklistItems(r.Context(), propertyID, r.URL.Query().Get("scenario"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if items == nil {
		items = []model.ChecklistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleSummary handles GET /checklist/summary?property=ID&scenario=S.
func (h *ChecklistHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_checklist_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	summary, err := h.deps.ChecklistSummary(r.Context(), propertyID, r.URL.Query().Get("scenario"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// statusRequest mirrors the POST /checklist/status payload.
type statusRequest struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
}

// HandleSetStatus handles POST /checklist/status requests.
func (h *ChecklistHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_checklist_status"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.SetChecklistStatus(r.Context(), req.ItemID, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
