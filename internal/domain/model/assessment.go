// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Development scenarios a property can be assessed under. ScenarioAll is the
// sentinel for an unscoped assessment or filter.
const (
	ScenarioAll              = "all"
	ScenarioRawLand          = "raw_land"
	ScenarioExistingBuilding = "existing_building"
	ScenarioHeritageProperty = "heritage_property"
	ScenarioUnderusedAsset   = "underused_asset"
	ScenarioMixedUse         = "mixed_use_redevelopment"
)

// KnownScenarios lists the concrete development scenarios, excluding the
// "all" sentinel.
func KnownScenarios() []string {
	return []string{
		ScenarioRawLand,
		ScenarioExistingBuilding,
		ScenarioHeritageProperty,
		ScenarioUnderusedAsset,
		ScenarioMixedUse,
	}
}

// Risk levels, ordered from best to worst.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskElevated = "elevated"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

var riskRanks = map[string]int{
	RiskLow:      1,
	RiskModerate: 2,
	RiskElevated: 3,
	RiskHigh:     4,
	RiskCritical: 5,
}

// RiskRank returns the ordinal position of a risk level, lower is better.
// Unknown levels return 0.
func RiskRank(level string) int {
	return riskRanks[strings.ToLower(strings.TrimSpace(level))]
}

// RatingRank returns the ordinal position of a rating letter, higher is
// better (A=5 … E=1). Unknown ratings return 0.
func RatingRank(rating string) int {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "A":
		return 5
	case "B":
		return 4
	case "C":
		return 3
	case "D":
		return 2
	case "E":
		return 1
	default:
		return 0
	}
}

// SystemCondition is the inspected state of one named building system.
type SystemCondition struct {
	Name               string   `json:"name"`
	Rating             string   `json:"rating"`
	Score              float64  `json:"score"`
	Notes              string   `json:"notes"`
	RecommendedActions []string `json:"recommended_actions"`
}

// Attachment is a labelled reference attached to an assessment. URL is empty
// when the attachment has no link.
type Attachment struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// ConditionAssessment is one inspection record for a property, optionally
// scoped to a single development scenario.
type ConditionAssessment struct {
	ID                 string            `json:"id"`
	PropertyID         string            `json:"property_id"`
	Scenario           string            `json:"scenario"`
	OverallRating      string            `json:"overall_rating"`
	OverallScore       float64           `json:"overall_score"`
	RiskLevel          string            `json:"risk_level"`
	Summary            string            `json:"summary"`
	ScenarioContext    string            `json:"scenario_context,omitempty"`
	InspectorName      string            `json:"inspector_name,omitempty"`
	RecordedAt         time.Time         `json:"recorded_at"`
	Systems            []SystemCondition `json:"systems"`
	RecommendedActions []string          `json:"recommended_actions"`
	Attachments        []Attachment      `json:"attachments"`
}

// AssessmentUpsert is the save payload accepted by the store. Optional fields
// are omitted entirely when blank rather than sent as empty strings.
type AssessmentUpsert struct {
	Scenario           string            `json:"scenario"`
	OverallRating      string            `json:"overall_rating"`
	OverallScore       float64           `json:"overall_score"`
	RiskLevel          string            `json:"risk_level"`
	Summary            string            `json:"summary"`
	ScenarioContext    string            `json:"scenario_context,omitempty"`
	Systems            []SystemCondition `json:"systems"`
	RecommendedActions []string          `json:"recommended_actions"`
	Attachments        []Attachment      `json:"attachments"`
	InspectorName      string            `json:"inspector_name,omitempty"`
	RecordedAt         string            `json:"recorded_at,omitempty"` // RFC3339
}
