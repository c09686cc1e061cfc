package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := RequireAuth(d.Auth)
	requireAdmin := RequireAdmin(d.Auth)
	protect := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAuth(h).ServeHTTP
	}
	protectAdmin := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAdmin(h).ServeHTTP
	}

	// Auth / session
	ah := AuthHandler{Auth: d.Auth, SyncStatus: d.SyncStatus}
	mux.HandleFunc("/auth/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Session,
	}))
	mux.HandleFunc("/auth/login-url", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.LoginURL,
	}))
	mux.HandleFunc("/auth/login-redirect", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.LoginRedirect,
	}))
	mux.HandleFunc("/auth/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Refresh,
	}))
	mux.HandleFunc("/auth/logout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Logout,
	}))
	mux.HandleFunc("/auth/promote", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: protect(ah.Promote),
	}))
	mux.HandleFunc("/auth/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodPatch: protect(ah.UpdateProfile),
	}))
	mux.HandleFunc("/auth/sync-status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Status,
	}))
	mux.HandleFunc("/auth/sync", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Sync,
	}))

	// Applications (candidate-facing, behind auth)
	aph := ApplicationsHandler{Applications: d.Applications}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  protect(aph.MyList),
		http.MethodPost: protect(aph.Create),
	}))
	mux.HandleFunc("/applications/form-info", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: protect(aph.FormInfo),
	}))

	// Admin (behind the admin guard)
	adh := AdminHandler{Admin: d.Admin}
	mux.HandleFunc("/admin/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: protectAdmin(adh.Dashboard),
	}))
	mux.HandleFunc("/admin/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: protectAdmin(adh.List),
	}))
	mux.HandleFunc("/admin/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: protectAdmin(adh.DetailByPath),
		http.MethodPut: protectAdmin(adh.UpdateStatusByPath),
	}))

	// Positions (public browse paths)
	ph := PositionsHandler{Positions: d.Positions}
	mux.HandleFunc("/positions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))
	mux.HandleFunc("/positions/state", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Snapshot,
	}))
	mux.HandleFunc("/positions/filter-options", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.FilterOptions,
	}))
	mux.HandleFunc("/positions/popular", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Popular,
	}))
	mux.HandleFunc("/positions/recent", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Recent,
	}))
	mux.HandleFunc("/positions/deadline-soon", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.DeadlineSoon,
	}))
	mux.HandleFunc("/positions/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.ByPath, // /positions/{id} or /positions/slug/{slug}
	}))

	// Bookmarks (local state, behind auth)
	bh := BookmarksHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/bookmarks", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  protect(bh.List),
		http.MethodPost: protect(bh.Add),
	}))
	mux.HandleFunc("/bookmarks/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: protect(bh.RemoveByPath),
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dbh.Checkpoint)

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
