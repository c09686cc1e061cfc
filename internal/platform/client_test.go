package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecraft-engine/internal/domain"
)

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Auth.UserInfo(context.Background()); err != nil {
		t.Fatal(err)
	}

	if ct := got.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if ac := got.Get("Accept"); ac != "application/json" {
		t.Fatalf("Accept = %q", ac)
	}
}

func TestCookiesCarrySession(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123", Path: "/"})
			w.Write([]byte(`{"success":true}`))
			return
		}
		ck, err := r.Cookie("JSESSIONID")
		if err != nil || ck.Value != "abc123" {
			w.WriteHeader(401)
			w.Write([]byte(`{"success":false,"message":"no session"}`))
			return
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Auth.UserInfo(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Applications.MyList(context.Background()); err != nil {
		t.Fatalf("session cookie was not replayed: %v", err)
	}
}

func TestNon2xxUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`{"success":false,"message":"admin only"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Admin.Dashboard(context.Background())
	if err == nil {
		t.Fatal("expected an error for 403")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != 403 || apiErr.Message != "admin only" {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestNon2xxWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Applications.FormInfo(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "HTTP error 500" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":tru`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Applications.MyList(context.Background())
	if err == nil {
		t.Fatal("expected a decode error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("a 2xx parse failure is not an APIError")
	}
}

func TestSoftFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"invalid"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Applications.Create(context.Background(), domain.CreateApplicationRequest{})
	if err != nil {
		t.Fatalf("soft failure must not error: %v", err)
	}
	if res.Success || res.Message != "invalid" {
		t.Fatalf("got %+v", res.Envelope)
	}
}

func TestAdminApplicationsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"totalCount":0,"applications":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	if _, err := c.Admin.Applications(context.Background(), "", ""); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Fatalf("unfiltered list sent params: %q", gotQuery)
	}

	if _, err := c.Admin.Applications(context.Background(), "REVIEWING", "Nexon"); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "company=Nexon&status=REVIEWING" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestUpdateStatusBody(t *testing.T) {
	var gotPath, gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		b := make([]byte, 256)
		n, _ := r.Body.Read(b)
		gotBody = string(b[:n])
		w.Write([]byte(`{"success":true,"message":"updated"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Admin.UpdateApplicationStatus(context.Background(), 42, "ACCEPTED", "solid portfolio")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("got %+v", res)
	}
	if gotPath != "/admin/applications/42/status" || gotMethod != http.MethodPut {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
	if gotBody != `{"status":"ACCEPTED","adminNotes":"solid portfolio"}`+"\n" && gotBody != `{"status":"ACCEPTED","adminNotes":"solid portfolio"}` {
		t.Fatalf("body = %q", gotBody)
	}
}
