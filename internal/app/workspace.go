// Package app hosts the condition assessment orchestrator: per-property
// workspaces coordinating fetches, the editor draft lifecycle, baseline
// comparisons, saves and report exports.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hale/groundwork/internal/adapters/repository"
	"github.com/hale/groundwork/internal/domain/delta"
	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
	"github.com/hale/groundwork/internal/domain/severity"
	"github.com/hale/groundwork/internal/domain/types"
	"github.com/hale/groundwork/internal/export"
	"github.com/hale/groundwork/pkg/logger"
	"github.com/hale/groundwork/pkg/metrics"
)

// Fetch kinds, each with an independent request lifecycle.
const (
	fetchKindAssessment = "assessment"
	fetchKindHistory    = "history"
	fetchKindOverrides  = "overrides"
)

// EditorMode is the tagged editor state. The draft buffer mirrors the
// persisted assessment while the editor is closed and becomes an exclusive
// edit buffer while it is open.
type EditorMode string

const (
	EditorClosed EditorMode = "viewing"
	EditorNew    EditorMode = "editing:new"
	EditorEdit   EditorMode = "editing:edit"
)

// User-visible status messages.
const (
	msgSaved      = "Assessment saved."
	msgSaveFailed = "Unable to save the assessment. Your edits are preserved."

	errLoadAssessment = "Unable to load the latest condition assessment."
	errLoadHistory    = "Unable to load the assessment history."
	errLoadOverrides  = "Unable to load the scenario assessments."
)

// Workspace orchestrates condition assessment state for one property under
// one active scenario filter. All state is owned exclusively by the
// workspace; a response from a superseded fetch is discarded by comparing
// its generation against the latest issued for that fetch kind.
type Workspace struct {
	mu sync.Mutex

	store    repository.Store
	exporter export.Exporter
	log      logger.Logger

	propertyID   string
	scenario     string
	historyLimit int

	current   *model.ConditionAssessment
	history   []model.ConditionAssessment
	overrides []model.ConditionAssessment

	currentErr   string
	historyErr   string
	overridesErr string

	// Generation counters, one per fetch kind. A fetch records the counter
	// value at issue time and applies its result only if the counter is
	// unchanged on arrival.
	currentGen   uint64
	historyGen   uint64
	overridesGen uint64

	mode        EditorMode
	draft       draft.Assessment
	saving      bool
	exporting   bool
	saveMessage string

	// baseline is the scenario key selected as the comparison reference.
	// Empty means "first overrides entry".
	baseline string
}

func newWorkspace(store repository.Store, exporter export.Exporter, log logger.Logger, propertyID, scenario string, historyLimit int) *Workspace {
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	w := &Workspace{
		store:        store,
		exporter:     exporter,
		log:          log,
		propertyID:   propertyID,
		scenario:     scenario,
		historyLimit: historyLimit,
		mode:         EditorClosed,
	}
	w.draft = draft.Build(nil, scenario)
	return w
}

// PropertyID returns the property this workspace is bound to.
func (w *Workspace) PropertyID() string {
	return w.propertyID
}

// Scenario returns the active scenario filter.
func (w *Workspace) Scenario() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scenario
}

// SetScenario changes the active scenario filter and refreshes all three
// fetches under the new filter.
func (w *Workspace) SetScenario(ctx context.Context, scenario string) {
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	w.mu.Lock()
	changed := w.scenario != scenario
	w.scenario = scenario
	w.mu.Unlock()
	if changed {
		w.Refresh(ctx)
	}
}

// Refresh re-runs all three fetches.
func (w *Workspace) Refresh(ctx context.Context) {
	w.RefreshAssessment(ctx)
	w.RefreshHistory(ctx)
	w.RefreshOverrides(ctx)
}

// RefreshAssessment fetches the current assessment. On failure the
// assessment resets to nil and a dedicated error string is set; the other
// fetch kinds are unaffected.
func (w *Workspace) RefreshAssessment(ctx context.Context) {
	w.mu.Lock()
	w.currentGen++
	gen := w.currentGen
	propertyID, scenario := w.propertyID, w.scenario
	w.mu.Unlock()

	metrics.RecordFetch(fetchKindAssessment)
	start := time.Now()
	assessment, err := w.store.Assessment(ctx, propertyID, scenario)
	metrics.RecordFetchDuration(fetchKindAssessment, time.Since(start).Seconds())

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.currentGen {
		metrics.RecordStaleDrop(fetchKindAssessment)
		w.log.Debug(ctx, "stale assessment response dropped",
			logger.String("property", propertyID),
			logger.Uint64("generation", gen))
		return
	}
	if err != nil {
		metrics.RecordFetchError(fetchKindAssessment)
		w.log.Error(ctx, "assessment fetch failed",
			logger.String("property", propertyID), logger.Error(err))
		w.current = nil
		w.currentErr = errLoadAssessment
	} else {
		w.current = assessment
		w.currentErr = ""
	}
	w.syncViewDraftLocked()
}

// RefreshHistory fetches the assessment history, newest first.
func (w *Workspace) RefreshHistory(ctx context.Context) {
	w.mu.Lock()
	w.historyGen++
	gen := w.historyGen
	propertyID, scenario, limit := w.propertyID, w.scenario, w.historyLimit
	w.mu.Unlock()

	metrics.RecordFetch(fetchKindHistory)
	start := time.Now()
	history, err := w.store.History(ctx, propertyID, scenario, limit)
	metrics.RecordFetchDuration(fetchKindHistory, time.Since(start).Seconds())

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.historyGen {
		metrics.RecordStaleDrop(fetchKindHistory)
		w.log.Debug(ctx, "stale history response dropped",
			logger.String("property", propertyID),
			logger.Uint64("generation", gen))
		return
	}
	if err != nil {
		metrics.RecordFetchError(fetchKindHistory)
		w.log.Error(ctx, "history fetch failed",
			logger.String("property", propertyID), logger.Error(err))
		w.history = nil
		w.historyErr = errLoadHistory
	} else {
		w.history = history
		w.historyErr = ""
	}
}

// RefreshOverrides fetches the per-scenario assessment set.
func (w *Workspace) RefreshOverrides(ctx context.Context) {
	w.mu.Lock()
	w.overridesGen++
	gen := w.overridesGen
	propertyID := w.propertyID
	w.mu.Unlock()

	metrics.RecordFetch(fetchKindOverrides)
	start := time.Now()
	overrides, err := w.store.ScenarioAssessments(ctx, propertyID)
	metrics.RecordFetchDuration(fetchKindOverrides, time.Since(start).Seconds())

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.overridesGen {
		metrics.RecordStaleDrop(fetchKindOverrides)
		w.log.Debug(ctx, "stale overrides response dropped",
			logger.String("property", propertyID),
			logger.Uint64("generation", gen))
		return
	}
	if err != nil {
		metrics.RecordFetchError(fetchKindOverrides)
		w.log.Error(ctx, "scenario overrides fetch failed",
			logger.String("property", propertyID), logger.Error(err))
		w.overrides = nil
		w.overridesErr = errLoadOverrides
	} else {
		w.overrides = overrides
		w.overridesErr = ""
	}
}

// syncViewDraftLocked rebuilds the mirror draft from the latest fetched
// assessment. Only applies while the editor is closed; an open editor owns
// the draft exclusively.
func (w *Workspace) syncViewDraftLocked() {
	if w.mode == EditorClosed {
		w.draft = draft.Build(w.current, w.scenario)
	}
}

// OpenEditor opens the editor in the given mode. A fresh draft is always
// recomputed; stale in-progress edits are never reused. The previous save
// message is cleared.
func (w *Workspace) OpenEditor(mode EditorMode) error {
	if mode != EditorNew && mode != EditorEdit {
		return ErrInvalidEditorMode
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.saveMessage = ""
	w.mode = mode
	w.seedDraftLocked()
	return nil
}

// seedDraftLocked computes the draft for the current editor mode. New drafts
// seed blank for the active filter; edit drafts seed from the scenario's own
// assessment when filtering by a concrete scenario, else from the most
// recent history entry.
func (w *Workspace) seedDraftLocked() {
	if w.mode == EditorNew {
		w.draft = draft.Build(nil, w.scenario)
		return
	}
	source := w.current
	if w.scenario == model.ScenarioAll && len(w.history) > 0 {
		latest := w.history[0]
		source = &latest
	}
	w.draft = draft.Build(source, w.scenario)
}

// CloseEditor discards the draft, returns to viewing and refreshes the
// history and scenario lists. Refresh failures are recorded on their error
// strings, never surfaced to the close call.
func (w *Workspace) CloseEditor(ctx context.Context) {
	w.mu.Lock()
	w.mode = EditorClosed
	w.syncViewDraftLocked()
	w.mu.Unlock()

	w.RefreshHistory(ctx)
	w.RefreshOverrides(ctx)
}

// ResetDraft re-seeds the draft for the current mode without closing the
// editor.
func (w *Workspace) ResetDraft() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == EditorClosed {
		return ErrEditorClosed
	}
	w.seedDraftLocked()
	return nil
}

// Draft returns a copy of the draft buffer and the current editor mode.
func (w *Workspace) Draft() (draft.Assessment, EditorMode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyDraft(w.draft), w.mode
}

// UpdateDraft applies an edit to a copy of the draft and swaps it in. Only
// legal while the editor is open.
func (w *Workspace) UpdateDraft(apply func(*draft.Assessment)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == EditorClosed {
		return ErrEditorClosed
	}
	next := copyDraft(w.draft)
	apply(&next)
	w.draft = next
	return nil
}

// UpdateSystem applies an edit to one system, copy-on-write on the touched
// index.
func (w *Workspace) UpdateSystem(index int, apply func(*draft.System)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == EditorClosed {
		return ErrEditorClosed
	}
	if index < 0 || index >= len(w.draft.Systems) {
		return ErrSystemIndex
	}
	next := copyDraft(w.draft)
	apply(&next.Systems[index])
	w.draft = next
	return nil
}

// ReplaceDraft swaps the whole edit buffer, used by callers submitting a
// fully formed draft. Only legal while the editor is open.
func (w *Workspace) ReplaceDraft(d draft.Assessment) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == EditorClosed {
		return ErrEditorClosed
	}
	w.draft = copyDraft(d)
	return nil
}

// Save persists the draft. On failure the editor stays open and the draft is
// preserved unchanged. On success the canonical assessment is re-fetched
// (the source of truth after the write is the store, not the local draft),
// the editor closes, and the history and scenario lists refresh.
func (w *Workspace) Save(ctx context.Context) error {
	w.mu.Lock()
	if w.mode == EditorClosed {
		w.mu.Unlock()
		return ErrEditorClosed
	}
	if w.saving {
		w.mu.Unlock()
		return ErrSaveInProgress
	}
	w.saving = true
	payload := w.draft.Payload()
	propertyID := w.propertyID
	w.mu.Unlock()

	ok, err := w.store.SaveAssessment(ctx, propertyID, payload)

	w.mu.Lock()
	w.saving = false
	if err != nil || !ok {
		metrics.RecordSaveError()
		w.saveMessage = msgSaveFailed
		w.mu.Unlock()
		if err != nil {
			w.log.Error(ctx, "assessment save failed",
				logger.String("property", propertyID), logger.Error(err))
			return fmt.Errorf("save assessment: %w", err)
		}
		w.log.Warn(ctx, "assessment save rejected",
			logger.String("property", propertyID))
		return ErrSaveRejected
	}
	metrics.RecordSave()
	w.mode = EditorClosed
	w.saveMessage = msgSaved
	w.mu.Unlock()

	w.RefreshAssessment(ctx)
	w.RefreshHistory(ctx)
	w.RefreshOverrides(ctx)
	return nil
}

// Export renders a condition report for download. The exporting flag is
// released on every exit path.
func (w *Workspace) Export(ctx context.Context, format export.Format) (export.Report, error) {
	w.mu.Lock()
	if w.exporting {
		w.mu.Unlock()
		return export.Report{}, ErrExportInProgress
	}
	w.exporting = true
	in := export.Input{
		PropertyID:  w.propertyID,
		Assessment:  w.current,
		History:     append([]model.ConditionAssessment(nil), w.history...),
		GeneratedAt: time.Now().UTC(),
	}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.exporting = false
		w.mu.Unlock()
	}()

	report, err := w.exporter.Export(ctx, in, format)
	if err != nil {
		metrics.RecordExportError()
		w.log.Error(ctx, "report export failed",
			logger.String("property", w.propertyID),
			logger.String("format", string(format)), logger.Error(err))
		return export.Report{}, fmt.Errorf("export report: %w", err)
	}
	metrics.RecordExport(string(format))
	return report, nil
}

// SetBaseline selects the scenario used as the comparison reference.
func (w *Workspace) SetBaseline(scenario string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.baseline = scenario
}

// Comparison is one scenario assessment diffed against the baseline.
type Comparison struct {
	Assessment     model.ConditionAssessment `json:"assessment"`
	ScoreDelta     float64                   `json:"score_delta"`
	ScoreDeltaText string                    `json:"score_delta_text"`
	TrendText      string                    `json:"trend_text"`
	RatingChange   delta.Change              `json:"rating_change"`
	RiskChange     delta.Change              `json:"risk_change"`
}

// Comparisons returns the selected baseline and every other scenario entry
// diffed against it. The baseline defaults to the first overrides entry when
// none is selected or the selection no longer exists.
func (w *Workspace) Comparisons() (*model.ConditionAssessment, []Comparison) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.overrides) == 0 {
		return nil, nil
	}

	baseline := w.overrides[0]
	if w.baseline != "" {
		for _, entry := range w.overrides {
			if entry.Scenario == w.baseline {
				baseline = entry
				break
			}
		}
	}

	comparisons := make([]Comparison, 0, len(w.overrides)-1)
	for _, entry := range w.overrides {
		if entry.Scenario == baseline.Scenario {
			continue
		}
		d := entry.OverallScore - baseline.OverallScore
		comparisons = append(comparisons, Comparison{
			Assessment:     entry,
			ScoreDelta:     d,
			ScoreDeltaText: delta.FormatValue(&d),
			TrendText:      delta.FormatScore(d),
			RatingChange:   delta.DescribeRatingChange(entry.OverallRating, baseline.OverallRating),
			RiskChange:     delta.DescribeRiskChange(entry.RiskLevel, baseline.RiskLevel),
		})
	}

	base := baseline
	return &base, comparisons
}

// SystemView is one building system with its display classification.
type SystemView struct {
	System    model.SystemCondition `json:"system"`
	Severity  types.Severity        `json:"severity"`
	Visual    types.Visual          `json:"visual"`
	DeltaText string                `json:"delta_text"`
}

// View is the display state assembled for the workspace.
type View struct {
	PropertyID     string                      `json:"property_id"`
	Scenario       string                      `json:"scenario"`
	Assessment     *model.ConditionAssessment  `json:"assessment"`
	Severity       types.Severity              `json:"severity"`
	SeverityVisual types.Visual                `json:"severity_visual"`
	ScoreDeltaText string                      `json:"score_delta_text"`
	TrendText      string                      `json:"trend_text"`
	Systems        []SystemView                `json:"systems"`
	History        []model.ConditionAssessment `json:"history"`
	AssessmentErr  string                      `json:"assessment_error,omitempty"`
	HistoryErr     string                      `json:"history_error,omitempty"`
	OverridesErr   string                      `json:"overrides_error,omitempty"`
	SaveMessage    string                      `json:"save_message,omitempty"`
	EditorMode     EditorMode                  `json:"editor_mode"`
	Saving         bool                        `json:"saving"`
	Exporting      bool                        `json:"exporting"`
}

// Snapshot assembles the current display state: overall and per-system
// severity classified against the previous history entry, formatted trend
// phrases, per-fetch errors and the editor flags.
func (w *Workspace) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := View{
		PropertyID:    w.propertyID,
		Scenario:      w.scenario,
		Assessment:    w.current,
		Severity:      types.SeverityNeutral,
		History:       append([]model.ConditionAssessment(nil), w.history...),
		AssessmentErr: w.currentErr,
		HistoryErr:    w.historyErr,
		OverridesErr:  w.overridesErr,
		SaveMessage:   w.saveMessage,
		EditorMode:    w.mode,
		Saving:        w.saving,
		Exporting:     w.exporting,
	}

	var previous *model.ConditionAssessment
	if len(w.history) > 1 {
		previous = &w.history[1]
	}

	if w.current != nil {
		overallDelta := scoreDelta(w.current.OverallScore, previous)
		view.Severity = severity.Classify(w.current.OverallRating, overallDelta)
		view.ScoreDeltaText = delta.FormatValue(overallDelta)
		if overallDelta != nil {
			view.TrendText = delta.FormatScore(*overallDelta)
		} else {
			view.TrendText = delta.FormatScore(0)
		}

		view.Systems = make([]SystemView, len(w.current.Systems))
		for i, sys := range w.current.Systems {
			sysDelta := systemDelta(sys, previous)
			sev := severity.Classify(sys.Rating, sysDelta)
			view.Systems[i] = SystemView{
				System:    sys,
				Severity:  sev,
				Visual:    types.SeverityVisuals(sev),
				DeltaText: delta.FormatValue(sysDelta),
			}
		}
	}
	view.SeverityVisual = types.SeverityVisuals(view.Severity)

	return view
}

func scoreDelta(current float64, previous *model.ConditionAssessment) *float64 {
	if previous == nil {
		return nil
	}
	d := current - previous.OverallScore
	return &d
}

func systemDelta(sys model.SystemCondition, previous *model.ConditionAssessment) *float64 {
	if previous == nil {
		return nil
	}
	for _, prev := range previous.Systems {
		if prev.Name == sys.Name {
			d := sys.Score - prev.Score
			return &d
		}
	}
	return nil
}

func copyDraft(d draft.Assessment) draft.Assessment {
	next := d
	next.Systems = append([]draft.System(nil), d.Systems...)
	return next
}
