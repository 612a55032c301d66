package api

import (
	"context"
	"net/http"

	"github.com/hale/groundwork/internal/domain/model"
)

// ScenariosDependencies defines the interface for scenario comparisons.
type ScenariosDependencies interface {
	Comparisons(ctx context.Context, propertyID, baseline string) (*model.ConditionAssessment, []Comparison, error)
}

// ScenariosHandler handles scenario comparison requests.
type ScenariosHandler struct {
	deps ScenariosDependencies
}

// NewScenariosHandler creates a new scenarios handler.
func NewScenariosHandler(deps ScenariosDependencies) *ScenariosHandler {
	return &ScenariosHandler{deps: deps}
}

type scenariosResponse struct {
	Baseline    *model.ConditionAssessment `json:"baseline"`
	Comparisons []Comparison               `json:"comparisons"`
}

// HandleScenarios handles GET /assessment/scenarios?property=ID&baseline=S.
func (h *ScenariosHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scenarios"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	baseline, comparisons, err := h.deps.Comparisons(r.Context(), propertyID, r.URL.Query().Get("baseline"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if comparisons == nil {
		comparisons = []Comparison{}
	}
	writeJSON(w, http.StatusOK, scenariosResponse{Baseline: baseline, Comparisons: comparisons})
}
