package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
	"gamecraft-engine/internal/service"
	"gamecraft-engine/internal/session"
)

func testAuthService() *service.AuthService {
	return &service.AuthService{
		Sessions: session.NewStore(nil),
		API:      platform.New("http://127.0.0.1:0"),
		Cache:    query.NewCache(),
		Hub:      events.NewHub(),
	}
}

func okHandler() (http.HandlerFunc, *bool) {
	called := false
	return func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{"ok":true}`))
	}, &called
}

type guardBody struct {
	OK       bool   `json:"ok"`
	Redirect string `json:"redirect"`
}

func decodeGuard(t *testing.T, rec *httptest.ResponseRecorder) guardBody {
	t.Helper()
	var b guardBody
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("bad body %q: %v", rec.Body.String(), err)
	}
	return b
}

func TestRequireAuthDeniesAnonymous(t *testing.T) {
	auth := testAuthService()
	next, called := okHandler()
	h := RequireAuth(auth)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

	if *called {
		t.Fatal("protected handler ran for an anonymous request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	b := decodeGuard(t, rec)
	if b.OK || b.Redirect != service.LoginPath {
		t.Fatalf("body = %+v", b)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	auth := testAuthService()
	auth.Sessions.Login(domain.User{ID: "7", Role: domain.RoleUser}, "tok")
	next, called := okHandler()
	h := RequireAuth(auth)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

	if !*called || rec.Code != http.StatusOK {
		t.Fatalf("called=%v status=%d", *called, rec.Code)
	}
}

func TestRequireAdminRedirectsByRole(t *testing.T) {
	auth := testAuthService()
	next, called := okHandler()
	h := RequireAdmin(auth)(next)

	// Anonymous: 401, login redirect.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", rec.Code)
	}
	if b := decodeGuard(t, rec); b.Redirect != service.LoginPath {
		t.Fatalf("anonymous body = %+v", b)
	}

	// Signed-in non-admin: 403, back to the user dashboard.
	auth.Sessions.Login(domain.User{ID: "7", Role: domain.RoleUser}, "tok")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user status = %d", rec.Code)
	}
	if b := decodeGuard(t, rec); b.Redirect != service.DashboardPath {
		t.Fatalf("user body = %+v", b)
	}
	if *called {
		t.Fatal("protected handler ran before authorization")
	}

	// Admin: passes through.
	auth.Sessions.Login(domain.User{ID: "1", Role: domain.RoleAdmin}, "tok")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if !*called || rec.Code != http.StatusOK {
		t.Fatalf("admin: called=%v status=%d", *called, rec.Code)
	}
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = events.RequestIDFrom(r.Context())
	}), RequestID)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("no request id in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header %q != context %q", got, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "fixed-id" {
		t.Fatalf("client id not honored: %q", seen)
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestID, Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	next, called := okHandler()
	h := Cors(http.HandlerFunc(next))

	req := httptest.NewRequest(http.MethodOptions, "/applications", nil)
	req.Header.Set("Origin", "tauri://localhost")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *called {
		t.Fatal("preflight reached the handler")
	}
	if rec.Code != 204 {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "tauri://localhost" {
		t.Fatalf("headers = %v", rec.Header())
	}
}
