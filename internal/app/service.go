package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hale/groundwork/internal/adapters/repository"
	"github.com/hale/groundwork/internal/domain/checklist"
	"github.com/hale/groundwork/internal/domain/draft"
	"github.com/hale/groundwork/internal/domain/model"
	"github.com/hale/groundwork/internal/domain/signals"
	"github.com/hale/groundwork/internal/export"
	"github.com/hale/groundwork/pkg/logger"
	"github.com/hale/groundwork/pkg/metrics"
)

const defaultHistoryLimit = 20

// Service is the application entry point. It owns a workspace per property
// and exposes the assessment, signal and checklist operations the transport
// adapters call into.
type Service struct {
	mu sync.Mutex

	store           repository.Store
	exporter        export.Exporter
	log             logger.Logger
	evaluator       *signals.Evaluator
	historyLimit    int
	defaultScenario string

	workspaces map[string]*Workspace
	running    bool
	startedAt  time.Time
}

// ServiceOption applies a configuration option to the Service.
type ServiceOption func(*Service)

// WithStore sets the assessment store.
func WithStore(store repository.Store) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithExporter sets the report exporter.
func WithExporter(exporter export.Exporter) ServiceOption {
	return func(s *Service) {
		s.exporter = exporter
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHistoryLimit caps how many history entries a workspace fetches.
func WithHistoryLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithLocale sets the locale used for number rendering in signal messages.
func WithLocale(tag string) ServiceOption {
	return func(s *Service) {
		if tag != "" {
			s.evaluator = signals.NewEvaluator(
				signals.WithFormatter(signals.LocaleFormatter(tag)))
		}
	}
}

// WithDefaultScenario sets the scenario filter new workspaces start with.
func WithDefaultScenario(scenario string) ServiceOption {
	return func(s *Service) {
		if scenario != "" {
			s.defaultScenario = scenario
		}
	}
}

// New builds the service. A store is required.
func New(opts ...ServiceOption) (*Service, error) {
	s := &Service{
		log:             logger.Get(),
		evaluator:       signals.NewEvaluator(),
		historyLimit:    defaultHistoryLimit,
		defaultScenario: model.ScenarioAll,
		workspaces:      make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		return nil, fmt.Errorf("new service: store is required")
	}
	if s.exporter == nil {
		s.exporter = export.NewReportExporter()
	}
	return s, nil
}

// Start marks the service running.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.startedAt = time.Now()
	s.log.Info(ctx, "assessment service started",
		logger.Int("history_limit", s.historyLimit),
		logger.String("default_scenario", s.defaultScenario))
	return nil
}

// Stop marks the service stopped and drops all workspaces.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.workspaces = make(map[string]*Workspace)
	s.log.Info(ctx, "assessment service stopped")
	return nil
}

// Workspace returns the workspace for a property, creating it on first use.
func (s *Service) Workspace(propertyID string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, ErrNotRunning
	}
	w, ok := s.workspaces[propertyID]
	if !ok {
		w = newWorkspace(s.store, s.exporter, s.log, propertyID, s.defaultScenario, s.historyLimit)
		s.workspaces[propertyID] = w
	}
	return w, nil
}

// AssessmentView refreshes and returns the display state for a property
// under the given scenario filter.
func (s *Service) AssessmentView(ctx context.Context, propertyID, scenario string) (View, error) {
	w, err := s.Workspace(propertyID)
	if err != nil {
		return View{}, err
	}
	if scenario != "" && w.Scenario() != scenario {
		w.SetScenario(ctx, scenario)
	} else {
		w.Refresh(ctx)
	}
	return w.Snapshot(), nil
}

// History returns the persisted history directly from the store.
func (s *Service) History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return nil, ErrNotRunning
	}
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.store.History(ctx, propertyID, scenario, limit)
}

// Comparisons refreshes the scenario set and diffs it against the baseline.
func (s *Service) Comparisons(ctx context.Context, propertyID, baseline string) (*model.ConditionAssessment, []Comparison, error) {
	w, err := s.Workspace(propertyID)
	if err != nil {
		return nil, nil, err
	}
	w.SetBaseline(baseline)
	w.RefreshOverrides(ctx)
	base, comparisons := w.Comparisons()
	return base, comparisons, nil
}

// SaveDraft runs the full editor lifecycle for a submitted draft: open,
// replace the buffer, save. Used by transports that carry a complete draft
// per request instead of incremental edits.
func (s *Service) SaveDraft(ctx context.Context, propertyID string, d draft.Assessment) (View, error) {
	w, err := s.Workspace(propertyID)
	if err != nil {
		return View{}, err
	}
	if err := w.OpenEditor(EditorNew); err != nil {
		return View{}, err
	}
	if err := w.ReplaceDraft(d); err != nil {
		return View{}, err
	}
	if err := w.Save(ctx); err != nil {
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

// Export renders a downloadable condition report for a property.
func (s *Service) Export(ctx context.Context, propertyID string, format export.Format) (export.Report, error) {
	w, err := s.Workspace(propertyID)
	if err != nil {
		return export.Report{}, err
	}
	w.RefreshAssessment(ctx)
	w.RefreshHistory(ctx)
	return w.Export(ctx, format)
}

// Signals evaluates feasibility signals for a quick analysis entry.
func (s *Service) Signals(entry model.QuickAnalysisEntry, zoning *model.ZoningContext, topMix *model.MixAllocation) model.FeasibilitySignals {
	scenario := entry.Scenario
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	metrics.RecordSignalEvaluation(scenario)
	return s.evaluator.Evaluate(entry, zoning, topMix)
}

// ChecklistItems returns the due diligence checklist for a property.
func (s *Service) ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return nil, ErrNotRunning
	}
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	return s.store.ChecklistItems(ctx, propertyID, scenario)
}

// ChecklistSummary aggregates checklist progress for a property.
func (s *Service) ChecklistSummary(ctx context.Context, propertyID, scenario string) (checklist.Summary, error) {
	items, err := s.ChecklistItems(ctx, propertyID, scenario)
	if err != nil {
		return checklist.Summary{}, err
	}
	return checklist.Summarize(items), nil
}

// SetChecklistStatus updates one checklist item's status.
func (s *Service) SetChecklistStatus(ctx context.Context, itemID, status string) error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	if err := s.store.SetChecklistStatus(ctx, itemID, status); err != nil {
		return err
	}
	metrics.RecordChecklistUpdate()
	return nil
}

// Stats reports service level counters for the stats endpoint.
type Stats struct {
	Running    bool      `json:"running"`
	StartedAt  time.Time `json:"started_at"`
	Workspaces int       `json:"workspaces"`
}

// GetStats returns current service stats.
func (s *Service) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Running:    s.running,
		StartedAt:  s.startedAt,
		Workspaces: len(s.workspaces),
	}
}
