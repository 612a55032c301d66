package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hale/groundwork/internal/export"
)

// ExportDependencies defines the interface for report exports.
type ExportDependencies interface {
	Export(ctx context.Context, propertyID string, format export.Format) (export.Report, error)
}

// ExportHandler handles report download requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /assessment/export?property=ID&format=json|pdf.
// The rendered document is returned inline with a download disposition.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	propertyID, ok := propertyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingProperty))
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	report, err := h.deps.Export(r.Context(), propertyID, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Data)
}
