// Package draft builds and parses the editable buffer for a condition
// assessment. Numeric fields are carried as text for input binding; list
// fields are flattened to newline-delimited text.
package draft

import (
	"strconv"
	"time"

	"github.com/hale/groundwork/internal/domain/model"
)

// localTimeLayout matches the browser datetime-local input format.
const localTimeLayout = "2006-01-02T15:04"

// Defaults applied when no persisted assessment exists yet.
const (
	defaultOverallRating = "B"
	defaultOverallScore  = "75"
	defaultSystemRating  = "B"
	defaultSystemScore   = "70"
	defaultRiskLevel     = model.RiskModerate
)

// DefaultSystemNames is the fixed set of building systems a blank draft is
// seeded with.
func DefaultSystemNames() []string {
	return []string{
		"Structural Frame & Envelope",
		"Mechanical & Electrical Systems",
		"Compliance & Envelope Maintenance",
	}
}

// System is the editable form of one building system.
type System struct {
	Name        string `json:"name"`
	Rating      string `json:"rating"`
	Score       string `json:"score"`
	Notes       string `json:"notes"`
	ActionsText string `json:"actions_text"`
}

// Assessment is the edit buffer mirroring a persisted assessment with
// text-friendly field types.
type Assessment struct {
	Scenario        string   `json:"scenario"`
	OverallRating   string   `json:"overall_rating"`
	OverallScore    string   `json:"overall_score"`
	RiskLevel       string   `json:"risk_level"`
	Summary         string   `json:"summary"`
	ScenarioContext string   `json:"scenario_context"`
	InspectorName   string   `json:"inspector_name"`
	RecordedAt      string   `json:"recorded_at"` // local-input format
	Systems         []System `json:"systems"`
	ActionsText     string   `json:"actions_text"`
	AttachmentsText string   `json:"attachments_text"`
}

func defaultSystems() []System {
	names := DefaultSystemNames()
	systems := make([]System, len(names))
	for i, name := range names {
		systems[i] = System{
			Name:   name,
			Rating: defaultSystemRating,
			Score:  defaultSystemScore,
		}
	}
	return systems
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build converts a persisted assessment (or nil) into an editable draft.
// The target scenario is the assessment's own when present, otherwise the
// active filter, falling back to "all".
func Build(a *model.ConditionAssessment, activeScenario string) Assessment {
	scenario := activeScenario
	if scenario == "" {
		scenario = model.ScenarioAll
	}
	if a != nil && a.Scenario != "" {
		scenario = a.Scenario
	}

	if a == nil {
		return Assessment{
			Scenario:      scenario,
			OverallRating: defaultOverallRating,
			OverallScore:  defaultOverallScore,
			RiskLevel:     defaultRiskLevel,
			Systems:       defaultSystems(),
		}
	}

	systems := defaultSystems()
	if len(a.Systems) > 0 {
		systems = make([]System, len(a.Systems))
		for i, s := range a.Systems {
			systems[i] = System{
				Name:        s.Name,
				Rating:      s.Rating,
				Score:       formatScore(s.Score),
				Notes:       s.Notes,
				ActionsText: FormatActionsText(s.RecommendedActions),
			}
		}
	}

	recordedAt := ""
	if !a.RecordedAt.IsZero() {
		recordedAt = a.RecordedAt.Format(localTimeLayout)
	}

	return Assessment{
		Scenario:        scenario,
		OverallRating:   a.OverallRating,
		OverallScore:    formatScore(a.OverallScore),
		RiskLevel:       a.RiskLevel,
		Summary:         a.Summary,
		ScenarioContext: a.ScenarioContext,
		InspectorName:   a.InspectorName,
		RecordedAt:      recordedAt,
		Systems:         systems,
		ActionsText:     FormatActionsText(a.RecommendedActions),
		AttachmentsText: FormatAttachmentsText(a.Attachments),
	}
}

// Payload converts the draft into a save payload. Score text that does not
// parse coerces to 0. Blank optional fields are omitted from the payload
// entirely.
func (d Assessment) Payload() model.AssessmentUpsert {
	systems := make([]model.SystemCondition, len(d.Systems))
	for i, s := range d.Systems {
		systems[i] = model.SystemCondition{
			Name:               s.Name,
			Rating:             s.Rating,
			Score:              ParseScore(s.Score),
			Notes:              s.Notes,
			RecommendedActions: ParseActionsText(s.ActionsText),
		}
	}

	recordedAt := ""
	if d.RecordedAt != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, d.RecordedAt, time.Local); err == nil {
			recordedAt = ts.Format(time.RFC3339)
		}
	}

	scenario := d.Scenario
	if scenario == "" {
		scenario = model.ScenarioAll
	}

	return model.AssessmentUpsert{
		Scenario:           scenario,
		OverallRating:      d.OverallRating,
		OverallScore:       ParseScore(d.OverallScore),
		RiskLevel:          d.RiskLevel,
		Summary:            d.Summary,
		ScenarioContext:    d.ScenarioContext,
		Systems:            systems,
		RecommendedActions: ParseActionsText(d.ActionsText),
		Attachments:        ParseAttachmentsText(d.AttachmentsText),
		InspectorName:      d.InspectorName,
		RecordedAt:         recordedAt,
	}
}
