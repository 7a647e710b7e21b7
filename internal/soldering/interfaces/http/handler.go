package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"assemblyline-cloud/internal/httpapi"
	solderingapp "assemblyline-cloud/internal/soldering/application"
	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// Handler provides soldering-stage HTTP endpoints.
type Handler struct {
	service *solderingapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *solderingapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("soldering handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes soldering endpoints under /api/v1/production.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/production/addSolderingDetails":
		if r.Method == http.MethodPost {
			h.handleSubmit(w, r)
			return
		}
	case "/api/v1/production/fetchSolderingDetailsandImeiNo":
		if r.Method == http.MethodGet {
			h.handleList(w, r)
			return
		}
	case "/api/v1/production/verifySolderingDetails":
		if r.Method == http.MethodPost {
			h.handleVerify(w, r)
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
	input := solderingapp.SubmitInput{Points: make(map[string]bool, len(soldering.PointKeys))}
	if id, ok := raw["barcodeImeiId"].(string); ok {
		input.BarcodeImeiID = id
	}
	for _, key := range soldering.PointKeys {
		if value, ok := raw[key].(bool); ok {
			input.Points[key] = value
		}
	}
	record, err := h.service.Submit(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Soldering details added successfully", map[string]any{
		"solderingDetails": record,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "", map[string]any{
		"solderingDetailsList": items,
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IMEINo string `json:"imeiNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.service.Verify(r.Context(), req.IMEINo); err != nil {
		respondError(w, err)
		return
	}
	httpapi.OK(w, "Soldering details verified successfully", nil)
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
	case errors.Is(err, workflow.ErrGateClosed), errors.Is(err, workflow.ErrChecklistIncomplete):
		httpapi.Fail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
	}
}
