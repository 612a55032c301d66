// Package repository defines the assessment store contract and its SQLite
// implementation.
package repository

import (
	"context"

	"github.com/hale/groundwork/internal/domain/model"
)

// Store provides read/write access to persisted assessments and checklist
// items. Scenario arguments accept a concrete scenario or the "all" sentinel.
type Store interface {
	// Assessment returns the latest assessment for a property under the
	// given scenario filter, or nil when none exists.
	Assessment(ctx context.Context, propertyID, scenario string) (*model.ConditionAssessment, error)

	// History returns up to limit assessments for a property+scenario,
	// newest first.
	History(ctx context.Context, propertyID, scenario string, limit int) ([]model.ConditionAssessment, error)

	// ScenarioAssessments returns the latest assessment per scenario that
	// has ever been saved for the property.
	ScenarioAssessments(ctx context.Context, propertyID string) ([]model.ConditionAssessment, error)

	// SaveAssessment persists a new assessment record. Returns false when
	// the store rejected the write.
	SaveAssessment(ctx context.Context, propertyID string, up model.AssessmentUpsert) (bool, error)

	// ChecklistItems returns the checklist items for a property, filtered
	// by scenario unless the filter is "all".
	ChecklistItems(ctx context.Context, propertyID, scenario string) ([]model.ChecklistItem, error)

	// SetChecklistStatus updates the status of one checklist item.
	SetChecklistStatus(ctx context.Context, itemID, status string) error
}
