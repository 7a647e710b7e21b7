package http

import (
	"encoding/json"
	"errors"
	"net/http"

	firmwareapp "assemblyline-cloud/internal/firmware/application"
	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/httpapi"
	"assemblyline-cloud/internal/workflow"
)

// Handler provides firmware-stage HTTP endpoints.
type Handler struct {
	service *firmwareapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *firmwareapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("firmware handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes firmware endpoints under /api/v1/production.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/production/createFirmWare":
		if r.Method == http.MethodPost {
			h.handleCreate(w, r)
			return
		}
	case "/api/v1/production/fetchFirmwareByImeiNo":
		if r.Method == http.MethodPost {
			h.handleFindByIMEI(w, r)
			return
		}
	case "/api/v1/production/editFirmWareDetails":
		if r.Method == http.MethodPost {
			h.handleEdit(w, r)
			return
		}
	case "/api/v1/production/deleteFirmWareDetails":
		if r.Method == http.MethodPost {
			h.handleDelete(w, r)
			return
		}
	case "/api/v1/production/getNextFirmwareSlNo":
		if r.Method == http.MethodGet {
			h.handleNextSerial(w, r)
			return
		}
	case "/api/v1/production/fetchFirmWareDetails":
		if r.Method == http.MethodGet {
			h.handleList(w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo  string `json:"imeiNo"`
		ICCIDNo string `json:"iccidNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.service.Create(r.Context(), req.IMEINo, req.ICCIDNo)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Firmware details created successfully", map[string]any{
		"firmWareDetails": record,
	})
}

func (h *Handler) handleFindByIMEI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo string `json:"imeiNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.service.FindByIMEI(r.Context(), req.IMEINo)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"firmWareDetails": record,
	})
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirmwareID string `json:"firmWareId"`
		IMEINo     string `json:"imeiNo"`
		ICCIDNo    string `json:"iccidNo"`
		SlNo       string `json:"slNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	record, err := h.service.Edit(r.Context(), firmwareapp.EditInput{
		FirmwareID: req.FirmwareID,
		IMEINo:     req.IMEINo,
		ICCIDNo:    req.ICCIDNo,
		SlNo:       req.SlNo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Firmware details updated successfully", map[string]any{
		"firmWareDetails": record,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo string `json:"imeiNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.service.Delete(r.Context(), req.IMEINo); err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Firmware details deleted successfully", nil)
}

func (h *Handler) handleNextSerial(w http.ResponseWriter, r *http.Request) {
	slNo, err := h.service.NextSerial(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"nextSlNo": slNo,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"firmWareDetailsList": records,
	})
}

func respondError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, workflow.ErrUnitNotFound), errors.Is(err, firmware.ErrRecordNotFound):
		httpapi.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrDuplicateUnit):
		httpapi.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrGateClosed), errors.Is(err, workflow.ErrStageLocked):
		httpapi.Fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
	}
}
