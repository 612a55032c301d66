// Package export renders condition assessment reports for download.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hale/groundwork/internal/domain/model"
)

// Format is a supported report format.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// Sentinel kinds for export errors.
var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrNoAssessment  = errors.New("no assessment to export")
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatPDF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Input bundles everything a report is built from.
type Input struct {
	PropertyID  string
	Assessment  *model.ConditionAssessment
	History     []model.ConditionAssessment
	GeneratedAt time.Time
}

// Report is a rendered document ready for download.
type Report struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Exporter renders condition reports.
type Exporter interface {
	Export(ctx context.Context, in Input, format Format) (Report, error)
}

// ReportExporter implements Exporter for the JSON and PDF formats.
type ReportExporter struct {
	title string
}

// Option applies a configuration option to the ReportExporter.
type Option func(*ReportExporter)

// WithTitle overrides the report title line.
func WithTitle(title string) Option {
	return func(e *ReportExporter) {
		if title != "" {
			e.title = title
		}
	}
}

// NewReportExporter builds a report exporter.
func NewReportExporter(opts ...Option) *ReportExporter {
	e := &ReportExporter{title: "Condition Assessment Report"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders the report in the requested format.
func (e *ReportExporter) Export(ctx context.Context, in Input, format Format) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("export cancelled: %w", err)
	}
	if in.Assessment == nil {
		return Report{}, ErrNoAssessment
	}
	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	switch format {
	case FormatJSON:
		data, err := e.renderJSON(in, generatedAt)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Data:        data,
			Filename:    filename(in.PropertyID, generatedAt, "json"),
			ContentType: "application/json",
		}, nil
	case FormatPDF:
		data, err := e.renderPDF(in, generatedAt)
		if err != nil {
			return Report{}, err
		}
		return Report{
			Data:        data,
			Filename:    filename(in.PropertyID, generatedAt, "pdf"),
			ContentType: "application/pdf",
		}, nil
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func filename(propertyID string, generatedAt time.Time, ext string) string {
	return fmt.Sprintf("condition-report-%s-%s.%s",
		propertyID, generatedAt.UTC().Format("20060102-150405"), ext)
}

// reportDocument is the canonical JSON report shape.
type reportDocument struct {
	Title       string                      `json:"title"`
	PropertyID  string                      `json:"property_id"`
	GeneratedAt time.Time                   `json:"generated_at"`
	Assessment  *model.ConditionAssessment  `json:"assessment"`
	History     []model.ConditionAssessment `json:"history,omitempty"`
}

func (e *ReportExporter) renderJSON(in Input, generatedAt time.Time) ([]byte, error) {
	doc := reportDocument{
		Title:       e.title,
		PropertyID:  in.PropertyID,
		GeneratedAt: generatedAt,
		Assessment:  in.Assessment,
		History:     in.History,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}
