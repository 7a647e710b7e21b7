package http

import (
	"encoding/json"
	"errors"
	"net/http"

	batteryapp "assemblyline-cloud/internal/battery/application"
	"assemblyline-cloud/internal/httpapi"
	"assemblyline-cloud/internal/workflow"
)

// Handler provides battery-stage HTTP endpoints.
type Handler struct {
	service *batteryapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *batteryapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("battery handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes battery endpoints under /api/v1/production.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/production/addBatteryConnectionDetails":
		if r.Method == http.MethodPost {
			h.handleSubmit(w, r)
			return
		}
	case "/api/v1/production/fetchBatteryConnectionDetails":
		if r.Method == http.MethodGet {
			h.handleList(w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo                   string  `json:"imeiNo"`
		BatteryType              string  `json:"batteryType"`
		Voltage                  float64 `json:"voltage"`
		BatteryConnectedStatus   bool    `json:"batteryConnectedStatus"`
		CapacitorConnectedStatus bool    `json:"capacitorConnectedStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.service.Submit(r.Context(), batteryapp.SubmitInput{
		IMEINo:                   req.IMEINo,
		BatteryType:              req.BatteryType,
		Voltage:                  req.Voltage,
		BatteryConnectedStatus:   req.BatteryConnectedStatus,
		CapacitorConnectedStatus: req.CapacitorConnectedStatus,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Battery connection details added successfully", map[string]any{
		"batteryConnectionDetails": record,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"batteryConnectionDetailsList": records,
	})
}

func respondError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, workflow.ErrUnitNotFound):
		httpapi.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrDuplicateUnit):
		httpapi.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrGateClosed):
		httpapi.Fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
	}
}
