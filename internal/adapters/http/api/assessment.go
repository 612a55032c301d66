package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
)

// AssessmentDependencies defines the interface for assessment operations.
type AssessmentDependencies interface {
	AssessmentView(ctx context.Context, propertyID, scenario string) (View, error)
	History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error)
	SaveDraft(ctx context.Context, propertyID string, d draft.Assessment) (View, error)
}

const defaultMaxHistoryLimit = 100

// AssessmentHandler handles assessment view and save requests.
type AssessmentHandler struct {
	deps     AssessmentDependencies
	maxLimit int
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps AssessmentDependencies, maxLimit int) *AssessmentHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxHistoryLimit
	}
	return &AssessmentHandler{deps: deps, maxLimit: maxLimit}
}

// HandleAssessment handles GET and POST /assessment?property=ID&scenario=S.
// POST accepts a draft document: string scores, newline-separated action
// text and "label | url" attachment lines, parsed server side.
func (h *AssessmentHandler) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleView(w, r)
	case http.MethodPost:
		h.handleSave(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *AssessmentHandler) handleView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assessment"
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	view, err := h.deps.AssessmentView(r.Context(), propertyID, r.URL.Query().Get("scenario"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *AssessmentHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_assessment"
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	var d draft.Assessment
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	view, err := h.deps.SaveDraft(r.Context(), propertyID, d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleHistory handles GET /assessment/history?property=ID&scenario=S&limit=N.
func (h *AssessmentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	history, err := h.deps.History(r.Context(), propertyID, r.URL.Query().Get("scenario"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if history == nil {
		history = []model.ConditionAssessment{}
	}
	writeJSON(w, http.StatusOK, history)
}
