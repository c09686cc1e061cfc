package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/store"
)

type BookmarksHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	bms, err := store.ListBookmarks(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]any{"bookmarks": bms})
}

func (h BookmarksHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PositionID int64  `json:"positionId"`
		Title      string `json:"title"`
		Company    string `json:"company"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", 400)
		return
	}
	if req.PositionID <= 0 {
		http.Error(w, "positionId is required", 400)
		return
	}

	if err := store.AddBookmark(r.Context(), h.DB, req.PositionID, req.Title, req.Company); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := events.RequestIDFrom(r.Context())
	h.Hub.Notify(reqID, events.NoticeSuccess, "Bookmarked")
	writeJSON(w, map[string]any{"ok": true, "positionId": req.PositionID})
}

// RemoveByPath expects /bookmarks/{positionId}
func (h BookmarksHandler) RemoveByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/bookmarks/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", 400)
		return
	}

	if err := store.RemoveBookmark(r.Context(), h.DB, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := events.RequestIDFrom(r.Context())
	h.Hub.Notify(reqID, events.NoticeSuccess, "Bookmark removed")
	writeJSON(w, map[string]any{"ok": true, "positionId": id})
}
