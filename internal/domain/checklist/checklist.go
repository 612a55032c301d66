// Package checklist aggregates due-diligence checklist items into completion
// summaries.
package checklist

import (
	"math"

	"github.com/hale/groundwork/internal/domain/model"
)

// Counts tallies items by status.
type Counts struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	InProgress    int `json:"in_progress"`
	Pending       int `json:"pending"`
	NotApplicable int `json:"not_applicable"`
}

func (c *Counts) add(status string) {
	c.Total++
	switch status {
	case model.ChecklistCompleted:
		c.Completed++
	case model.ChecklistInProgress:
		c.InProgress++
	case model.ChecklistNotApplicable:
		c.NotApplicable++
	default:
		// Unknown statuses count as pending rather than vanishing.
		c.Pending++
	}
}

// Summary holds overall and per-category completion counts. Derived, never
// authoritative.
type Summary struct {
	Counts
	CompletionPercentage int               `json:"completion_percentage"`
	Categories           map[string]Counts `json:"categories"`
}

// Summarize folds a flat item list into a summary in a single pass. Input
// order does not matter. An empty input yields all-zero counts with a 0
// completion percentage.
func Summarize(items []model.ChecklistItem) Summary {
	s := Summary{Categories: map[string]Counts{}}
	for _, item := range items {
		s.add(item.Status)
		cat := s.Categories[item.Category]
		cat.add(item.Status)
		s.Categories[item.Category] = cat
	}
	if s.Total > 0 {
		s.CompletionPercentage = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}
