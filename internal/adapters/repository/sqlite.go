package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hale/groundwork/internal/domain/model"
)

const defaultHistoryLimit = 20

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    scenario TEXT NOT NULL,
    overall_rating TEXT NOT NULL,
    overall_score REAL NOT NULL,
    risk_level TEXT NOT NULL,
    summary TEXT NOT NULL,
    scenario_context TEXT NOT NULL DEFAULT '',
    inspector_name TEXT NOT NULL DEFAULT '',
    recorded_at TEXT NOT NULL,
    created_at TEXT NOT NULL,
    systems TEXT NOT NULL,
    recommended_actions TEXT NOT NULL,
    attachments TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_lookup
    ON assessments(property_id, scenario, recorded_at);

CREATE TABLE IF NOT EXISTS checklist_items (
    id TEXT PRIMARY KEY,
    property_id TEXT NOT NULL,
    scenario TEXT NOT NULL,
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL
        CHECK(status IN ('pending','in_progress','completed','not_applicable')),
    priority TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checklist_lookup
    ON checklist_items(property_id, scenario);
`

// SQLiteStore implements Store over a SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source, used by tests to pin created_at.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

const assessmentColumns = `id, property_id, scenario, overall_rating, overall_score,
    risk_level, summary, scenario_context, inspector_name, recorded_at,
    systems, recommended_actions, attachments`

func scanAssessment(row interface{ Scan(...any) error }) (model.ConditionAssessment, error) {
	var (
		a           model.ConditionAssessment
		recordedAt  string
		systems     string
		actions     string
		attachments string
	)
	err := row.Scan(&a.ID, &a.PropertyID, &a.Scenario, &a.OverallRating,
		&a.OverallScore, &a.RiskLevel, &a.Summary, &a.ScenarioContext,
		&a.InspectorName, &recordedAt, &systems, &actions, &attachments)
	if err != nil {
		return a, err
	}
	if ts, err := time.Parse(time.RFC3339, recordedAt); err == nil {
		a.RecordedAt = ts
	}
	if err := json.Unmarshal([]byte(systems), &a.Systems); err != nil {
		return a, fmt.Errorf("decode systems: %w", err)
	}
	if err := json.Unmarshal([]byte(actions), &a.RecommendedActions); err != nil {
		return a, fmt.Errorf("decode recommended actions: %w", err)
	}
	if err := json.Unmarshal([]byte(attachments), &a.Attachments); err != nil {
		return a, fmt.Errorf("decode attachments: %w", err)
	}
	return a, nil
}

// Assessment returns the newest assessment for the property. A concrete
// scenario filters to that scenario; "all" returns the newest across all
// scenarios.
func (s *SQLiteStore) Assessment(ctx context.Context, propertyID, scenario string) (*model.ConditionAssessment, error) {
	query := "SELECT " + assessmentColumns + ` FROM assessments
        WHERE property_id = ?`
	args := []any{propertyID}
	if scenario != "" && scenario != model.ScenarioAll {
		query += " AND scenario = ?"
		args = append(args, scenario)
	}
	query += " ORDER BY recorded_at DESC, created_at DESC LIMIT 1"

	row := s.db.QueryRowContext(ctx, query, args...)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	return &a, nil
}

// History returns up to limit assessments, newest first.
func (s *SQLiteStore) History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	query := "SELECT " + assessmentColumns + ` FROM assessments
        WHERE property_id = ?`
	args := []any{propertyID}
	if scenario != "" && scenario != model.ScenarioAll {
		query += " AND scenario = ?"
		args = append(args, scenario)
	}
	query += " ORDER BY recorded_at DESC, created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.ConditionAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// ScenarioAssessments returns the latest assessment per scenario saved for
// the property, newest first.
func (s *SQLiteStore) ScenarioAssessments(ctx context.Context, propertyID string) ([]model.ConditionAssessment, error) {
	query := "SELECT " + assessmentColumns + ` FROM assessments a
        WHERE a.property_id = ?
          AND a.id = (
              SELECT b.id FROM assessments b
              WHERE b.property_id = a.property_id AND b.scenario = a.scenario
              ORDER BY b.recorded_at DESC, b.created_at DESC LIMIT 1
          )
        ORDER BY a.recorded_at DESC, a.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("query scenario assessments: %w", err)
	}
	defer rows.Close()

	var out []model.ConditionAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario assessments: %w", err)
	}
	return out, nil
}

// SaveAssessment inserts a new assessment record; history is append-only and
// the newest record becomes current for its property+scenario.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, propertyID string, up model.AssessmentUpsert) (bool, error) {
	scenario := up.Scenario
	if scenario == "" {
		scenario = model.ScenarioAll
	}

	recordedAt := s.now()
	if up.RecordedAt != "" {
		if ts, err := time.Parse(time.RFC3339, up.RecordedAt); err == nil {
			recordedAt = ts
		}
	}

	systems, err := json.Marshal(emptyIfNilSystems(up.Systems))
	if err != nil {
		return false, fmt.Errorf("encode systems: %w", err)
	}
	actions, err := json.Marshal(emptyIfNil(up.RecommendedActions))
	if err != nil {
		return false, fmt.Errorf("encode recommended actions: %w", err)
	}
	attachments, err := json.Marshal(emptyIfNilAttachments(up.Attachments))
	if err != nil {
		return false, fmt.Errorf("encode attachments: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO assessments (
            id, property_id, scenario, overall_rating, overall_score,
            risk_level, summary, scenario_context, inspector_name,
            recorded_at, created_at, systems, recommended_actions, attachments
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), propertyID, scenario, up.OverallRating,
		up.OverallScore, up.RiskLevel, up.Summary, up.ScenarioContext,
		up.InspectorName, recordedAt.Format(time.RFC3339),
		s.now().Format(time.RFC3339Nano), string(systems), string(actions),
		string(attachments))
	if err != nil {
		return false, fmt.Errorf("insert assessment: %w", err)
	}
	return true, nil
}

// ChecklistItems returns checklist items for the property, scenario-filtered
// unless the filter is "all".
func (s *SQLiteStore) ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error) {
	query := `SELECT id, property_id, scenario, category, title, status, priority
        FROM checklist_items WHERE property_id = ?`
	args := []any{propertyID}
	if scenario != "" && scenario != model.ScenarioAll {
		query += " AND scenario = ?"
		args = append(args, scenario)
	}
	query += " ORDER BY category, title"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query checklist items: %w", err)
	}
	defer rows.Close()

	var out []model.ChecklistItem
	for rows.Next() {
		var item model.ChecklistItem
		if err := rows.Scan(&item.ID, &item.PropertyID, &item.Scenario,
			&item.Category, &item.Title, &item.Status, &item.Priority); err != nil {
			return nil, fmt.Errorf("scan checklist row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist items: %w", err)
	}
	return out, nil
}

// SetChecklistStatus updates one checklist item's status.
func (s *SQLiteStore) SetChecklistStatus(ctx context.Context, itemID, status string) error {
	if !model.ValidChecklistStatus(status) {
		return ErrInvalidStatus
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE checklist_items SET status = ? WHERE id = ?", status, itemID)
	if err != nil {
		return fmt.Errorf("update checklist status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update checklist status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddChecklistItem inserts a checklist item. Used by seeding, not part of the
// Store contract consumed by the orchestrator.
func (s *SQLiteStore) AddChecklistItem(ctx context.Context, item model.ChecklistItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if !model.ValidChecklistStatus(item.Status) {
		return ErrInvalidStatus
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO checklist_items (id, property_id, scenario, category, title, status, priority)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.PropertyID, item.Scenario, item.Category, item.Title,
		item.Status, item.Priority)
	if err != nil {
		return fmt.Errorf("insert checklist item: %w", err)
	}
	return nil
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emptyIfNilSystems(in []model.SystemCondition) []model.SystemCondition {
	if in == nil {
		return []model.SystemCondition{}
	}
	return in
}

func emptyIfNilAttachments(in []model.Attachment) []model.Attachment {
	if in == nil {
		return []model.Attachment{}
	}
	return in
}
