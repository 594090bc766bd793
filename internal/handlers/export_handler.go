package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"fiado-backend/internal/services"
	"fiado-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type ExportHandler struct {
	Service *services.ExportService
}

func NewExportHandler(s *services.ExportService) *ExportHandler {
	return &ExportHandler{Service: s}
}

// ExportCSV streams the full fiado report.
// GET /api/export/csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.GenerateCSV(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("fiado_report_%s.csv", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}

// ExportCustomerPDF streams one customer's statement.
// GET /api/export/pdf/{id}
func (h *ExportHandler) ExportCustomerPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	stmt, err := h.Service.GetStatement(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := h.Service.GeneratePDF(stmt)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement_%d.pdf"`, id))
	w.Write(data)
}

// ExportBulkPDF streams a ZIP of statements for every active customer.
// GET /api/export/pdf
func (h *ExportHandler) ExportBulkPDF(w http.ResponseWriter, r *http.Request) {
	pdfs, err := h.Service.GenerateBulkPDFs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := h.Service.CreateBulkPDFZip(pdfs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="statements.zip"`)
	w.Write(data)
}
