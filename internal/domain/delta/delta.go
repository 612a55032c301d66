// Package delta renders score, rating and risk changes as display phrases.
package delta

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hale/groundwork/internal/domain/model"
	"github.com/hale/groundwork/internal/domain/types"
)

// Change pairs a human phrase with a tone. Consumers use the tone only to
// select a display color.
type Change struct {
	Text string     `json:"text"`
	Tone types.Tone `json:"tone"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatValue renders a signed delta. A nil delta renders as "0"; negative
// values carry their inherent sign.
func FormatValue(delta *float64) string {
	if delta == nil {
		return "0"
	}
	if *delta > 0 {
		return "+" + formatNumber(*delta)
	}
	return formatNumber(*delta)
}

// FormatScore renders a score delta as a trend phrase.
func FormatScore(delta float64) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("improved by %s points", formatNumber(delta))
	case delta < 0:
		return fmt.Sprintf("dropped %s points", formatNumber(math.Abs(delta)))
	default:
		return "held steady"
	}
}

// DescribeRatingChange compares a current rating against a reference rating.
func DescribeRatingChange(current, reference string) Change {
	cur := strings.ToUpper(strings.TrimSpace(current))
	ref := strings.ToUpper(strings.TrimSpace(reference))
	curRank := model.RatingRank(cur)
	refRank := model.RatingRank(ref)

	switch {
	case curRank == 0 || refRank == 0:
		return Change{Text: "Rating not comparable", Tone: types.ToneNeutral}
	case curRank > refRank:
		return Change{Text: fmt.Sprintf("Improved from %s to %s", ref, cur), Tone: types.TonePositive}
	case curRank < refRank:
		return Change{Text: fmt.Sprintf("Slipped from %s to %s", ref, cur), Tone: types.ToneNegative}
	default:
		return Change{Text: fmt.Sprintf("Held at %s", cur), Tone: types.ToneNeutral}
	}
}

// DescribeRiskChange compares a current risk level against a reference level.
func DescribeRiskChange(current, reference string) Change {
	cur := strings.ToLower(strings.TrimSpace(current))
	ref := strings.ToLower(strings.TrimSpace(reference))
	curRank := model.RiskRank(cur)
	refRank := model.RiskRank(ref)

	switch {
	case curRank == 0 || refRank == 0:
		return Change{Text: "Risk not comparable", Tone: types.ToneNeutral}
	case curRank < refRank:
		return Change{Text: fmt.Sprintf("Risk eased from %s to %s", ref, cur), Tone: types.TonePositive}
	case curRank > refRank:
		return Change{Text: fmt.Sprintf("Risk rose from %s to %s", ref, cur), Tone: types.ToneNegative}
	default:
		return Change{Text: fmt.Sprintf("Risk unchanged at %s", cur), Tone: types.ToneNeutral}
	}
}
