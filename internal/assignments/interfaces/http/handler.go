package http

import (
	"errors"
	"net/http"

	assignmentsapp "assemblyline-cloud/internal/assignments/application"
	"assemblyline-cloud/internal/auth"
	"assemblyline-cloud/internal/httpapi"
)

// Handler provides work-list HTTP endpoints.
type Handler struct {
	service *assignmentsapp.Service
}

// NewHandler constructs a handler.
func NewHandler(service *assignmentsapp.Service) (*Handler, error) {
	if service == nil {
		return nil, errors.New("assignments handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes the work-list endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/production/FetchLoginEmployeeWorkList" && r.Method == http.MethodGet {
		h.handleWorkList(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleWorkList(w http.ResponseWriter, r *http.Request) {
	empID := auth.EmpIDFromContext(r.Context())
	if empID == "" {
		httpapi.Fail(w, http.StatusUnauthorized, "missing employee identity")
		return
	}
	emp, err := h.service.WorkList(r.Context(), empID, empID)
	if err != nil {
		httpapi.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	httpapi.OK(w, "", map[string]any{
		"emp": emp,
	})
}
