package model

// Checklist item statuses.
const (
	ChecklistPending       = "pending"
	ChecklistInProgress    = "in_progress"
	ChecklistCompleted     = "completed"
	ChecklistNotApplicable = "not_applicable"
)

// ChecklistStatuses lists the valid item statuses.
func ChecklistStatuses() []string {
	return []string{
		ChecklistPending,
		ChecklistInProgress,
		ChecklistCompleted,
		ChecklistNotApplicable,
	}
}

// ValidChecklistStatus reports whether status is one of the known statuses.
func ValidChecklistStatus(status string) bool {
	switch status {
	case ChecklistPending, ChecklistInProgress, ChecklistCompleted, ChecklistNotApplicable:
		return true
	default:
		return false
	}
}

// ChecklistItem is one due-diligence task for a property under a scenario.
type ChecklistItem struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	Scenario   string `json:"scenario"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
}
