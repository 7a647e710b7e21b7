package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"assemblyline-cloud/internal/httpapi"
	qcapp "assemblyline-cloud/internal/qc/application"
	qc "assemblyline-cloud/internal/qc/domain"
	"assemblyline-cloud/internal/workflow"
)

// Handler provides quality-check HTTP endpoints.
type Handler struct {
	service *qcapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *qcapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("qc handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes QC endpoints under /api/v1/production.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/production/QualityCheck":
		if r.Method == http.MethodPost {
			h.handleSubmit(w, r)
			return
		}
	case "/api/v1/production/showAllDateReports":
		if r.Method == http.MethodPost {
			h.handleReports(w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	input := qcapp.SubmitInput{Points: make(map[string]bool, len(qc.PointKeys))}
	if imeiNo, ok := raw["imeiNo"].(string); ok {
		input.IMEINo = imeiNo
	}
	if empName, ok := raw["empName"].(string); ok {
		input.EmpName = empName
	}
	for _, key := range qc.PointKeys {
		if value, ok := raw[key].(bool); ok {
			input.Points[key] = value
		}
	}
	record, err := h.service.Submit(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Quality check submitted successfully", map[string]any{
		"qcReport": record,
	})
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	records, err := h.service.ReportsByDate(r.Context(), req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"reports": records,
	})
}

func respondError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, workflow.ErrGateClosed), errors.Is(err, workflow.ErrStageLocked), errors.Is(err, workflow.ErrChecklistIncomplete):
		httpapi.Fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, workflow.ErrDuplicateUnit):
		httpapi.Fail(w, http.StatusConflict, err.Error())
	default:
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
	}
}
