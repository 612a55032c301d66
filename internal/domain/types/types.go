// Package types contains display classification types shared across the service.
package types

// Severity is a coarse health/trend classification for a building system or
// an overall assessment.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"

	// SeverityInfo is a display tag reserved for externally supplied
	// insights. The classifier never produces it.
	SeverityInfo Severity = "info"
)

// Tone qualifies a change descriptor for display color selection.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// Visual is a display style resolved from a severity or tone.
type Visual struct {
	Label      string `json:"label"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

var severityVisuals = map[Severity]Visual{
	SeverityCritical: {Label: "Critical", Color: "#b71c1c", Background: "#fdecea"},
	SeverityWarning:  {Label: "Watch", Color: "#b26a00", Background: "#fff4e5"},
	SeverityPositive: {Label: "Improving", Color: "#1b5e20", Background: "#e8f5e9"},
	SeverityNeutral:  {Label: "Stable", Color: "#37474f", Background: "#eceff1"},
	SeverityInfo:     {Label: "Insight", Color: "#0d47a1", Background: "#e3f2fd"},
}

var toneVisuals = map[Tone]Visual{
	TonePositive: {Label: "Up", Color: "#1b5e20", Background: "#e8f5e9"},
	ToneNegative: {Label: "Down", Color: "#b71c1c", Background: "#fdecea"},
	ToneNeutral:  {Label: "Flat", Color: "#37474f", Background: "#eceff1"},
}

// SeverityVisuals resolves the display style for a severity. Unknown values
// fall back to the neutral style.
func SeverityVisuals(s Severity) Visual {
	if v, ok := severityVisuals[s]; ok {
		return v
	}
	return severityVisuals[SeverityNeutral]
}

// DeltaVisuals resolves the display style for a change tone. Unknown values
// fall back to the neutral style.
func DeltaVisuals(t Tone) Visual {
	if v, ok := toneVisuals[t]; ok {
		return v
	}
	return toneVisuals[ToneNeutral]
}
