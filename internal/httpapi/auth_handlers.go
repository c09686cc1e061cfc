package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/service"
)

type AuthHandler struct {
	Auth       *service.AuthService
	SyncStatus *atomic.Value // stores httpapi.SyncStatus
}

// Session returns the locally held session. The token never leaves the
// engine; the UI only needs the user and the flag.
func (h AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := h.Auth.Sessions.Current()
	writeJSON(w, map[string]any{
		"user":            sess.User,
		"isAuthenticated": sess.Authenticated,
	})
}

func (h AuthHandler) LoginURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"url": h.Auth.LoginURL()})
}

func (h AuthHandler) LoginRedirect(w http.ResponseWriter, r *http.Request) {
	target, err := h.Auth.ResolveLoginRedirect(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "login_redirect_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"url": target})
}

// Refresh re-syncs the session against the backend (the rehydration path the
// UI hits on startup and after the OAuth callback).
func (h AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ok, _ := h.Auth.CheckAuthStatus(r.Context())
	sess := h.Auth.Sessions.Current()
	writeJSON(w, map[string]any{
		"authenticated": ok,
		"user":          sess.User,
	})
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context())
	writeJSON(w, map[string]any{"ok": true})
}

func (h AuthHandler) Promote(w http.ResponseWriter, r *http.Request) {
	ok := h.Auth.PromoteToAdmin(r.Context())
	sess := h.Auth.Sessions.Current()
	writeJSON(w, map[string]any{"ok": ok, "user": sess.User})
}

// UpdateProfile merges patchable fields into the stored user. The store
// ignores the call when nobody is logged in, so answer 401 up front instead.
func (h AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !h.Auth.Sessions.IsAuthenticated() {
		WriteError(w, r, http.StatusUnauthorized, "not_authenticated", "sign in first")
		return
	}

	var patch domain.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	h.Auth.Sessions.UpdateUser(patch)
	sess := h.Auth.Sessions.Current()
	writeJSON(w, map[string]any{"user": sess.User})
}

func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SyncStatus.Load().(SyncStatus)
	writeJSON(w, st)
}

// Sync kicks a background session recheck, mirroring how the UI's manual
// "refresh" button works without blocking the request.
func (h AuthHandler) Sync(w http.ResponseWriter, r *http.Request) {
	st := h.SyncStatus.Load().(SyncStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.SyncStatus.Store(SyncStatus{
		LastCheckAt: time.Now().Format(time.RFC3339),
		LastOkAt:    st.LastOkAt,
		Running:     true,
	})

	go func() {
		ctx, cancel := newDetachedContext(15 * time.Second)
		defer cancel()

		ok, err := h.Auth.CheckAuthStatus(ctx)

		next := h.SyncStatus.Load().(SyncStatus)
		next.Running = false
		next.LastCheckAt = time.Now().Format(time.RFC3339)
		next.Authenticated = ok
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = time.Now().Format(time.RFC3339)
		}
		h.SyncStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
