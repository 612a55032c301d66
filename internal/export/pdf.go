package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/hale/groundwork/internal/domain/model"
)

// PDF layout constants (millimetres / points).
const (
	pdfTitleSize   = 16.0
	pdfHeadingSize = 12.0
	pdfBodySize    = 10.0
	pdfLineHeight  = 6.0
)

func (e *ReportExporter) renderPDF(in Input, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, 10, e.title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", pdfBodySize)
	pdf.CellFormat(0, pdfLineHeight,
		fmt.Sprintf("Property %s - generated %s", in.PropertyID,
			generatedAt.UTC().Format("2006-01-02 15:04 UTC")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	a := in.Assessment
	writeHeading(pdf, "Overall")
	writeLine(pdf, fmt.Sprintf("Scenario: %s", a.Scenario))
	writeLine(pdf, fmt.Sprintf("Rating %s - score %s - risk %s",
		a.OverallRating, formatPDFScore(a.OverallScore), a.RiskLevel))
	if a.Summary != "" {
		writeLine(pdf, a.Summary)
	}
	if a.ScenarioContext != "" {
		writeLine(pdf, "Context: "+a.ScenarioContext)
	}
	if a.InspectorName != "" {
		writeLine(pdf, "Inspector: "+a.InspectorName)
	}
	if !a.RecordedAt.IsZero() {
		writeLine(pdf, "Recorded: "+a.RecordedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}
	pdf.Ln(3)

	if len(a.Systems) > 0 {
		writeHeading(pdf, "Building systems")
		for _, sys := range a.Systems {
			writeLine(pdf, fmt.Sprintf("%s: rating %s, score %s",
				sys.Name, sys.Rating, formatPDFScore(sys.Score)))
			if sys.Notes != "" {
				writeLine(pdf, "  "+sys.Notes)
			}
			for _, action := range sys.RecommendedActions {
				writeLine(pdf, "  - "+action)
			}
		}
		pdf.Ln(3)
	}

	if len(a.RecommendedActions) > 0 {
		writeHeading(pdf, "Recommended actions")
		for _, action := range a.RecommendedActions {
			writeLine(pdf, "- "+action)
		}
		pdf.Ln(3)
	}

	if len(a.Attachments) > 0 {
		writeHeading(pdf, "Attachments")
		for _, att := range a.Attachments {
			line := att.Label
			if att.URL != "" {
				line += " (" + att.URL + ")"
			}
			writeLine(pdf, "- "+line)
		}
		pdf.Ln(3)
	}

	if len(in.History) > 0 {
		writeHeading(pdf, "History")
		for _, h := range in.History {
			writeLine(pdf, fmt.Sprintf("%s - rating %s, score %s, risk %s",
				historyTimestamp(h), h.OverallRating,
				formatPDFScore(h.OverallScore), h.RiskLevel))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", pdfHeadingSize)
	pdf.CellFormat(0, pdfLineHeight+1, text, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", pdfBodySize)
}

func writeLine(pdf *fpdf.Fpdf, text string) {
	pdf.MultiCell(0, pdfLineHeight, text, "", "L", false)
}

func formatPDFScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func historyTimestamp(a model.ConditionAssessment) string {
	if a.RecordedAt.IsZero() {
		return "undated"
	}
	return a.RecordedAt.UTC().Format("2006-01-02")
}
