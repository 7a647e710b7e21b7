package interfaces

import (
	"errors"
	"net/http"
	"time"

	"assemblyline-cloud/internal/httpapi"
	"assemblyline-cloud/internal/observability/metrics"
	reportsapp "assemblyline-cloud/internal/reports/application"
)

// ExportHandler serves downloadable report files.
type ExportHandler struct {
	service *reportsapp.Service
}

// NewExportHandler constructs a handler.
func NewExportHandler(service *reportsapp.Service) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export handler: nil service")
	}
	return &ExportHandler{service: service}, nil
}

// ServeHTTP routes export downloads under /api/v1/production/exports.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.URL.Path {
	case "/api/v1/production/exports/qc.pdf":
		h.handleQCPDF(w, r)
	case "/api/v1/production/exports/assembly.pdf":
		h.handleAssemblyPDF(w, r)
	case "/api/v1/production/exports/production.xlsx":
		h.handleProductionXLSX(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// exportDay reads the date query parameter, defaulting to today.
func exportDay(r *http.Request) (time.Time, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return reportsapp.ParseReportDate(date)
}

func (h *ExportHandler) handleQCPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	day, err := exportDay(r)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.service.QCRecordsByDay(r.Context(), day)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := BuildQCReportPDF(day, records)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *ExportHandler) handleAssemblyPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	day, err := exportDay(r)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	imeis, err := h.service.AssemblyIMEIs(r.Context(), day)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := BuildAssemblyChecklistPDF(day, imeis)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *ExportHandler) handleProductionXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("xlsx", result, time.Since(start))
	}()

	day, err := exportDay(r)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.service.ProductionRows(r.Context(), day)
	if err != nil {
		result = metrics.ResultError
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	data, err := BuildProductionXLSX(day, rows)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
