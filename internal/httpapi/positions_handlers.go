package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/service"
)

type PositionsHandler struct {
	Positions *service.PositionsService
}

// List merges the request's query params into the browse state and fetches.
// Absent params keep their previous values; ?reset=1 starts from defaults.
func (h PositionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("reset") == "1" {
		defaults := platform.DefaultSearchParams()
		snap, err := h.Positions.Fetch(r.Context(), overlayFromParams(defaults))
		writeSnapshot(w, r, snap, err)
		return
	}

	partial := partialFromQuery(q)
	snap, err := h.Positions.Fetch(r.Context(), partial)
	writeSnapshot(w, r, snap, err)
}

func writeSnapshot(w http.ResponseWriter, r *http.Request, snap service.Snapshot, err error) {
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", snap.Error)
		return
	}
	writeJSON(w, snap)
}

func (h PositionsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"params":   h.Positions.Params(),
		"snapshot": h.Positions.Snapshot(),
	})
}

func (h PositionsHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	res, err := h.Positions.FilterOptions(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

func (h PositionsHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	jobs, err := h.Positions.Popular(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

func (h PositionsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	jobs, err := h.Positions.Recent(r.Context(), days)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

func (h PositionsHandler) DeadlineSoon(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	jobs, err := h.Positions.DeadlineSoon(r.Context(), days)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

// ByPath expects /positions/{id} or /positions/slug/{slug}
func (h PositionsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/positions/")

	if slug, ok := strings.CutPrefix(rest, "slug/"); ok {
		if slug == "" {
			http.Error(w, "missing slug", 400)
			return
		}
		res, err := h.Positions.BySlug(r.Context(), slug)
		if err != nil {
			WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
			return
		}
		writeJSON(w, res)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", 400)
		return
	}
	res, err := h.Positions.Detail(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "backend_unavailable", err.Error())
		return
	}
	writeJSON(w, res)
}

func partialFromQuery(q url.Values) platform.PartialParams {
	var p platform.PartialParams

	if q.Has("page") {
		if v, err := strconv.Atoi(q.Get("page")); err == nil {
			p.Page = &v
		}
	}
	if q.Has("size") {
		if v, err := strconv.Atoi(q.Get("size")); err == nil {
			p.Size = &v
		}
	}
	str := func(key string, dst **string) {
		if q.Has(key) {
			v := q.Get(key)
			*dst = &v
		}
	}
	str("search", &p.Search)
	str("company", &p.Company)
	str("location", &p.Location)
	str("experienceLevel", &p.ExperienceLevel)
	str("jobType", &p.JobType)
	str("skill", &p.Skill)
	str("sort", &p.Sort)
	return p
}

// overlayFromParams turns a full param set into a partial that sets every
// field, used for resets.
func overlayFromParams(sp platform.SearchParams) platform.PartialParams {
	return platform.PartialParams{
		Page:            &sp.Page,
		Size:            &sp.Size,
		Search:          &sp.Search,
		Company:         &sp.Company,
		Location:        &sp.Location,
		ExperienceLevel: &sp.ExperienceLevel,
		JobType:         &sp.JobType,
		Skill:           &sp.Skill,
		Sort:            &sp.Sort,
	}
}
