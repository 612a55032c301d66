package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MetricKind discriminates the decoded variants of a quick-analysis metric.
type MetricKind int

const (
	MetricAbsent MetricKind = iota
	MetricNumber
	MetricText
	MetricList
)

// MetricValue is a decoded quick-analysis metric. The API delivers metrics as
// loosely typed JSON, so values are decoded into an explicit variant at the
// boundary instead of being narrowed ad hoc downstream.
type MetricValue struct {
	Kind   MetricKind
	Number float64
	Text   string
	List   []string
}

// NumberMetric builds a numeric metric value.
func NumberMetric(v float64) MetricValue {
	return MetricValue{Kind: MetricNumber, Number: v}
}

// TextMetric builds a text metric value.
func TextMetric(s string) MetricValue {
	return MetricValue{Kind: MetricText, Text: s}
}

// ListMetric builds a list metric value.
func ListMetric(items ...string) MetricValue {
	return MetricValue{Kind: MetricList, List: items}
}

// Metrics maps metric keys to decoded values.
type Metrics map[string]MetricValue

// Get returns the value for key, or an absent value when the key is missing.
func (m Metrics) Get(key string) MetricValue {
	if v, ok := m[key]; ok {
		return v
	}
	return MetricValue{Kind: MetricAbsent}
}

// DecodeMetrics converts a raw JSON metrics object into typed metric values.
// Unrecognized shapes and nulls decode as absent.
func DecodeMetrics(raw map[string]any) Metrics {
	out := make(Metrics, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case nil:
			// JSON null: treated as absent, key dropped.
		case float64:
			out[key] = NumberMetric(v)
		case int:
			out[key] = NumberMetric(float64(v))
		case int64:
			out[key] = NumberMetric(float64(v))
		case json.Number:
			if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
				out[key] = NumberMetric(f)
			}
		case string:
			out[key] = TextMetric(v)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				} else {
					items = append(items, fmt.Sprint(item))
				}
			}
			out[key] = MetricValue{Kind: MetricList, List: items}
		case []string:
			out[key] = MetricValue{Kind: MetricList, List: v}
		}
	}
	return out
}

// QuickAnalysisEntry is the scenario-tagged metrics input for feasibility
// signal derivation.
type QuickAnalysisEntry struct {
	Scenario string
	Metrics  Metrics
	Notes    []string
}

// FeasibilitySignals is the derived opportunities/risks output. Stateless,
// recomputed from current inputs on every evaluation.
type FeasibilitySignals struct {
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}

// ZoningContext carries optional zoning and optimization figures feeding the
// raw-land signal rules. Nil pointers mean the figure is unknown.
type ZoningContext struct {
	MaxBuildableGFASqm        *float64 `json:"max_buildable_gfa_sqm,omitempty"`
	AdditionalPotentialGFASqm *float64 `json:"additional_potential_gfa_sqm,omitempty"`
	AllowablePlotRatio        *float64 `json:"allowable_plot_ratio,omitempty"`
}

// MixAllocation is the top allocation of an asset-mix optimization run.
type MixAllocation struct {
	AssetType string  `json:"asset_type"`
	SharePct  float64 `json:"share_pct"`
}
