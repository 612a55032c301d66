// Command seed loads a demonstration property into the assessment store so
// the API has data to serve during local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hale/groundwork/internal/adapters/repository"
	"github.com/hale/groundwork/internal/domain/model"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		dbPath     = flag.String("db", "groundwork.db", "Path to the SQLite database")
		propertyID = flag.String("property", "prop-demo", "Property ID to seed")
		months     = flag.Int("months", 6, "Months of history to generate")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, *dbPath, *propertyID, *months); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("seeded property %s in %s\n", *propertyID, *dbPath)
}

func run(ctx context.Context, dbPath, propertyID string, months int) error {
	store, err := repository.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := seedHistory(ctx, store, propertyID, months); err != nil {
		return err
	}
	if err := seedScenarios(ctx, store, propertyID); err != nil {
		return err
	}
	return seedChecklist(ctx, store, propertyID)
}

// seedHistory writes a monthly series of gradually improving assessments.
func seedHistory(ctx context.Context, store *repository.SQLiteStore, propertyID string, months int) error {
	ratings := []string{"D", "C", "C", "B", "B", "A"}
	risks := []string{
		model.RiskHigh, model.RiskElevated, model.RiskElevated,
		model.RiskModerate, model.RiskModerate, model.RiskLow,
	}
	now := time.Now().UTC()

	for i := 0; i < months; i++ {
		idx := i
		if idx >= len(ratings) {
			idx = len(ratings) - 1
		}
		score := 45 + float64(i)*8
		recordedAt := now.AddDate(0, i-months, 0)

		up := model.AssessmentUpsert{
			Scenario:      model.ScenarioExistingBuilding,
			OverallRating: ratings[idx],
			OverallScore:  score,
			RiskLevel:     risks[idx],
			Summary:       fmt.Sprintf("Quarterly walkthrough %d of %d", i+1, months),
			InspectorName: "T. Okafor",
			RecordedAt:    recordedAt.Format(time.RFC3339),
			Systems: []model.SystemCondition{
				{Name: "Structural Frame & Envelope", Rating: ratings[idx], Score: score + 2,
					Notes: "Settlement cracks monitored", RecommendedActions: []string{"Annual crack gauge readings"}},
				{Name: "Mechanical & Electrical Systems", Rating: ratings[idx], Score: score - 4,
					Notes: "Chiller plant past mid-life", RecommendedActions: []string{"Budget chiller overhaul"}},
				{Name: "Compliance & Envelope Maintenance", Rating: ratings[idx], Score: score,
					RecommendedActions: []string{"Refresh fire certificate"}},
			},
			RecommendedActions: []string{"Re-inspect before exercise of option"},
			Attachments: []model.Attachment{
				{Label: "Inspection photos", URL: "https://files.example.com/" + propertyID + "/photos"},
			},
		}
		if _, err := store.SaveAssessment(ctx, propertyID, up); err != nil {
			return err
		}
	}
	return nil
}

// seedScenarios writes one assessment per development scenario so the
// comparison view has entries to diff.
func seedScenarios(ctx context.Context, store *repository.SQLiteStore, propertyID string) error {
	scenarios := []struct {
		scenario string
		rating   string
		score    float64
		risk     string
		summary  string
	}{
		{model.ScenarioRawLand, "B", 78, model.RiskLow, "Clean greenfield parcel, services at boundary"},
		{model.ScenarioHeritageProperty, "C", 58, model.RiskElevated, "Conserved facade limits structural intervention"},
		{model.ScenarioUnderusedAsset, "B", 70, model.RiskModerate, "Low occupancy but sound core systems"},
		{model.ScenarioMixedUse, "B", 74, model.RiskModerate, "Podium conversion feasible under current plot ratio"},
	}
	recordedAt := time.Now().UTC().Format(time.RFC3339)

	for _, s := range scenarios {
		up := model.AssessmentUpsert{
			Scenario:      s.scenario,
			OverallRating: s.rating,
			OverallScore:  s.score,
			RiskLevel:     s.risk,
			Summary:       s.summary,
			RecordedAt:    recordedAt,
		}
		if _, err := store.SaveAssessment(ctx, propertyID, up); err != nil {
			return err
		}
	}
	return nil
}

func seedChecklist(ctx context.Context, store *repository.SQLiteStore, propertyID string) error {
	items := []model.ChecklistItem{
		{PropertyID: propertyID, Scenario: model.ScenarioAll, Category: "legal",
			Title: "Confirm clean title and encumbrances", Status: model.ChecklistCompleted, Priority: "high"},
		{PropertyID: propertyID, Scenario: model.ScenarioAll, Category: "legal",
			Title: "Review existing tenancy agreements", Status: model.ChecklistInProgress, Priority: "medium"},
		{PropertyID: propertyID, Scenario: model.ScenarioExistingBuilding, Category: "technical",
			Title: "Commission structural survey", Status: model.ChecklistPending, Priority: "high"},
		{PropertyID: propertyID, Scenario: model.ScenarioExistingBuilding, Category: "technical",
			Title: "Test M&E plant under load", Status: model.ChecklistPending, Priority: "medium"},
		{PropertyID: propertyID, Scenario: model.ScenarioHeritageProperty, Category: "regulatory",
			Title: "Engage conservation authority", Status: model.ChecklistPending, Priority: "high"},
		{PropertyID: propertyID, Scenario: model.ScenarioMixedUse, Category: "regulatory",
			Title: "Verify approved use groups", Status: model.ChecklistNotApplicable, Priority: "low"},
	}
	for _, item := range items {
		if err := store.AddChecklistItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
