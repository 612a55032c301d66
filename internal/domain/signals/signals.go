// Package signals derives per-scenario opportunity and risk messages from
// quick-analysis metrics.
package signals

import (
	"fmt"
	"strings"

	"github.com/hale/groundwork/internal/domain/model"
)

// Metric keys consumed by the scenario rules.
const (
	metricPotentialGFA   = "potential_gfa_sqm"
	metricSiteArea       = "site_area_sqm"
	metricPlotRatio      = "plot_ratio"
	metricGFAUplift      = "gfa_uplift_sqm"
	metricAveragePSF     = "average_psf_price"
	metricHeritageRisk   = "heritage_risk"
	metricNearbyMRT      = "nearby_mrt_count"
	metricBuildingHeight = "building_height_m"
	metricMonthlyRent    = "average_monthly_rent"
	metricUseGroups      = "use_groups"
)

const lowRiseHeightThresholdM = 20

// Evaluator turns a quick-analysis entry into feasibility signals. Number
// rendering goes through an injected formatter so callers control locale.
type Evaluator struct {
	format NumberFormatter
}

// NewEvaluator builds an evaluator, defaulting to an English-locale
// formatter.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{format: LocaleFormatter("en")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate applies the scenario rule for the entry, then appends the asset
// mix opportunity when an optimization context is supplied. Zoning context
// only affects the raw-land rule.
func (e *Evaluator) Evaluate(entry model.QuickAnalysisEntry, zoning *model.ZoningContext, topMix *model.MixAllocation) model.FeasibilitySignals {
	out := model.FeasibilitySignals{
		Opportunities: []string{},
		Risks:         []string{},
	}

	switch entry.Scenario {
	case model.ScenarioRawLand:
		e.rawLand(entry.Metrics, zoning, &out)
	case model.ScenarioExistingBuilding:
		e.existingBuilding(entry.Metrics, &out)
	case model.ScenarioHeritageProperty:
		e.heritageProperty(entry.Metrics, &out)
	case model.ScenarioUnderusedAsset:
		e.underusedAsset(entry.Metrics, &out)
	case model.ScenarioMixedUse:
		e.mixedUse(entry.Metrics, &out)
	default:
		// Unknown scenario: surface the analyst's own notes verbatim.
		out.Opportunities = append(out.Opportunities, entry.Notes...)
	}

	if topMix != nil {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Optimized asset mix allocates %s%% to %s",
			e.format(topMix.SharePct), topMix.AssetType))
	}

	return out
}

func (e *Evaluator) rawLand(m model.Metrics, zoning *model.ZoningContext, out *model.FeasibilitySignals) {
	potential := m.Get(metricPotentialGFA)
	siteArea := m.Get(metricSiteArea)
	plotRatio := m.Get(metricPlotRatio)

	if potential.Kind == model.MetricNumber && siteArea.Kind == model.MetricNumber {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Potential GFA of %s sqm on a %s sqm site",
			e.format(potential.Number), e.format(siteArea.Number)))
	}
	if plotRatio.Kind != model.MetricNumber {
		out.Risks = append(out.Risks,
			"Plot ratio unavailable; confirm allowable intensity with the planning authority")
	}
	if siteArea.Kind != model.MetricNumber {
		out.Risks = append(out.Risks,
			"Site area not captured; a boundary survey is required before massing studies")
	}

	if zoning == nil {
		return
	}
	if zoning.MaxBuildableGFASqm != nil {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Zoning allows up to %s sqm of buildable GFA",
			e.format(*zoning.MaxBuildableGFASqm)))
	}
	if zoning.AdditionalPotentialGFASqm != nil {
		if *zoning.AdditionalPotentialGFASqm > 0 {
			out.Opportunities = append(out.Opportunities, fmt.Sprintf(
				"%s sqm of additional GFA headroom under current zoning",
				e.format(*zoning.AdditionalPotentialGFASqm)))
		} else {
			out.Risks = append(out.Risks,
				"No additional GFA headroom under current zoning")
		}
	}
	if plotRatio.Kind != model.MetricNumber && zoning.AllowablePlotRatio != nil {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Allowable plot ratio capped at %s under the governing plan",
			e.format(*zoning.AllowablePlotRatio)))
	}
}

func (e *Evaluator) existingBuilding(m model.Metrics, out *model.FeasibilitySignals) {
	uplift := m.Get(metricGFAUplift)
	if uplift.Kind == model.MetricNumber && uplift.Number > 0 {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Unlock ≈%s sqm of additional GFA through redevelopment",
			e.format(uplift.Number)))
	} else {
		out.Risks = append(out.Risks,
			"Limited GFA uplift at the current development intensity")
	}
	if m.Get(metricAveragePSF).Kind != model.MetricNumber {
		out.Risks = append(out.Risks,
			"Average psf pricing unavailable for the surrounding market")
	}
}

func (e *Evaluator) heritageProperty(m model.Metrics, out *model.FeasibilitySignals) {
	risk := m.Get(metricHeritageRisk)
	switch strings.ToLower(strings.TrimSpace(risk.Text)) {
	case "high":
		out.Risks = append(out.Risks,
			"High heritage risk; conservation constraints may block redevelopment")
	case "medium":
		out.Risks = append(out.Risks,
			"Moderate heritage sensitivity; allow lead time for conservation review")
	default:
		out.Opportunities = append(out.Opportunities,
			"Heritage constraints appear manageable for adaptive reuse")
	}
}

func (e *Evaluator) underusedAsset(m model.Metrics, out *model.FeasibilitySignals) {
	mrt := m.Get(metricNearbyMRT)
	if mrt.Kind == model.MetricNumber && mrt.Number > 0 {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"%s MRT stations within walking distance support repositioning",
			e.format(mrt.Number)))
	} else {
		out.Risks = append(out.Risks,
			"Limited transit access may cap achievable rents")
	}

	height := m.Get(metricBuildingHeight)
	if height.Kind == model.MetricNumber && height.Number < lowRiseHeightThresholdM {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Low-rise massing at %s m leaves unused height allowance",
			e.format(height.Number)))
	}

	if m.Get(metricMonthlyRent).Kind != model.MetricNumber {
		out.Risks = append(out.Risks,
			"Average monthly rent unavailable; income underwriting is incomplete")
	}
}

func (e *Evaluator) mixedUse(m model.Metrics, out *model.FeasibilitySignals) {
	plotRatio := m.Get(metricPlotRatio)
	if plotRatio.Kind == model.MetricNumber && plotRatio.Number > 0 {
		out.Opportunities = append(out.Opportunities, fmt.Sprintf(
			"Plot ratio of %s supports a layered mixed-use programme",
			e.format(plotRatio.Number)))
	}

	groups := m.Get(metricUseGroups)
	if groups.Kind == model.MetricList && len(groups.List) > 0 {
		out.Opportunities = append(out.Opportunities,
			"Approved use groups: "+strings.Join(groups.List, ", "))
	}

	if plotRatio.Kind != model.MetricNumber {
		out.Risks = append(out.Risks,
			"Plot ratio unavailable for mixed-use massing studies")
	}
}
