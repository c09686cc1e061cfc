package httpapi

import (
	"encoding/json"
	"net/http"

	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/service"
)

type ApplicationsHandler struct {
	Applications *service.ApplicationsService
}

func (h ApplicationsHandler) MyList(w http.ResponseWriter, r *http.Request) {
	res, err := h.Applications.MyApplications(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"applications": res.Applications,
		"totalCount":   res.TotalCount,
	})
}

func (h ApplicationsHandler) FormInfo(w http.ResponseWriter, r *http.Request) {
	res, err := h.Applications.FormInfo(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

func (h ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req domain.CreateApplicationRequest
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), 400)
		return
	}

	res, err := h.Applications.Create(r.Context(), req)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	// Soft failures pass through with their envelope; the UI branches on
	// success, not on the HTTP status.
	writeJSON(w, res)
}
