package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gamecraft-engine/internal/service"
)

type AdminHandler struct {
	Admin *service.AdminService
}

// List narrows by the status/company query params. Each distinct filter
// combination is its own cache key downstream.
func (h AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("status") {
		h.Admin.SetStatusFilter(q.Get("status"))
	}
	if q.Has("company") {
		h.Admin.SetCompanyFilter(q.Get("company"))
	}

	res, err := h.Admin.Applications(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}

	status, company := h.Admin.Filters()
	writeJSON(w, map[string]any{
		"applications": res.Applications,
		"totalCount":   res.TotalCount,
		"statusFilter": status,
		"companyFilter": company,
	})
}

func (h AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	res, err := h.Admin.Dashboard(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

// DetailByPath expects /admin/applications/{id}
func (h AdminHandler) DetailByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := adminAppID(r.URL.Path)
	if !ok {
		http.Error(w, "invalid id", 400)
		return
	}

	res, err := h.Admin.ApplicationDetail(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

// UpdateStatusByPath expects /admin/applications/{id}/status
func (h AdminHandler) UpdateStatusByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := adminAppID(strings.TrimSuffix(r.URL.Path, "/status"))
	if !ok {
		http.Error(w, "invalid id", 400)
		return
	}

	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		http.Error(w, "status is required", 400)
		return
	}

	res, err := h.Admin.UpdateStatus(r.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

func adminAppID(path string) (int64, bool) {
	idStr := strings.TrimPrefix(path, "/admin/applications/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
