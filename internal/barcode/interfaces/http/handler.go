package http

import (
	"encoding/json"
	"errors"
	"net/http"

	barcodeapp "assemblyline-cloud/internal/barcode/application"
	"assemblyline-cloud/internal/httpapi"
	"assemblyline-cloud/internal/workflow"
)

// Handler provides barcode-stage HTTP endpoints.
type Handler struct {
	service *barcodeapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *barcodeapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("barcode handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes barcode endpoints under /api/v1/production.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/production/addBarCode":
		if r.Method == http.MethodPost {
			h.handleAdd(w, r)
			return
		}
	case "/api/v1/production/fetchAllBarCodeIMEINo":
		if r.Method == http.MethodGet {
			h.handleList(w, r)
			return
		}
	case "/api/v1/production/veriFyImeiNoAgain":
		if r.Method == http.MethodPost {
			h.handleVerifyAgain(w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BatchNo string `json:"batchNo"`
		LotNo   string `json:"lotNo"`
		IMEINo  string `json:"imeiNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.service.Add(r.Context(), req.BatchNo, req.LotNo, req.IMEINo)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Barcode added successfully", map[string]any{
		"barCode": record,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"allBarCodeIMEINo": records,
	})
}

func (h *Handler) handleVerifyAgain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo string `json:"imeiNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.service.VerifyAgain(r.Context(), req.IMEINo); err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "IMEI verified successfully", nil)
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
	default:
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
	}
}
