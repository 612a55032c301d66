// Package severity classifies building system health from a rating letter and
// a score trend.
package severity

import (
	"strings"

	"github.com/hale/groundwork/internal/domain/types"
)

// Delta thresholds for trend classification.
const (
	criticalDropThreshold = -10
	warningDropThreshold  = -5
	strongGainThreshold   = 8
	modestGainThreshold   = 4
)

// Classify maps a rating letter and a score delta to a severity tag. The rule
// order is significant: a D or E rating is critical regardless of trend, and
// a large drop outranks any gain rule. Every input combination is covered;
// the function never produces types.SeverityInfo.
func Classify(rating string, scoreDelta *float64) types.Severity {
	r := strings.ToUpper(strings.TrimSpace(rating))
	if r == "" {
		return types.SeverityNeutral
	}

	if r == "D" || r == "E" {
		return types.SeverityCritical
	}

	var d float64
	if scoreDelta != nil {
		d = *scoreDelta
	}

	switch {
	case d <= criticalDropThreshold:
		return types.SeverityCritical
	case d <= warningDropThreshold:
		return types.SeverityWarning
	case d >= strongGainThreshold:
		return types.SeverityPositive
	case r == "C":
		return types.SeverityWarning
	case d >= modestGainThreshold:
		return types.SeverityPositive
	default:
		return types.SeverityNeutral
	}
}
