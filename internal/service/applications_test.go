package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
)

func cfgVal() *atomic.Value {
	v := &atomic.Value{}
	v.Store(config.Default())
	return v
}

func newApplicationsService(t *testing.T, handler http.Handler) *ApplicationsService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &ApplicationsService{
		API:    platform.New(srv.URL),
		Cache:  query.NewCache(),
		Hub:    events.NewHub(),
		CfgVal: cfgVal(),
	}
}

func TestMyApplicationsCached(t *testing.T) {
	var hits int32
	svc := newApplicationsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"success":true,"totalCount":1,"applications":[{"id":1,"company":"Krafton","position":"Server Programmer","status":"SUBMITTED"}]}`))
	}))

	ctx := context.Background()
	first, err := svc.MyApplications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalCount != 1 || len(first.Applications) != 1 {
		t.Fatalf("got %+v", first)
	}

	if _, err := svc.MyApplications(ctx); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("fresh read hit the backend again: %d calls", n)
	}
}

func TestMyApplicationsSoftFailureIsZero(t *testing.T) {
	svc := newApplicationsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"login required"}`))
	}))

	res, err := svc.MyApplications(context.Background())
	if err != nil {
		t.Fatalf("soft failure must not error: %v", err)
	}
	if res.TotalCount != 0 || len(res.Applications) != 0 {
		t.Fatalf("got %+v", res)
	}
}

func TestCreateSuccessInvalidatesMyList(t *testing.T) {
	var listHits int32
	svc := newApplicationsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/application/my-list":
			n := atomic.AddInt32(&listHits, 1)
			if n == 1 {
				w.Write([]byte(`{"success":true,"totalCount":0,"applications":[]}`))
				return
			}
			w.Write([]byte(`{"success":true,"totalCount":1,"applications":[{"id":9,"company":"Krafton","position":"Server Programmer","status":"SUBMITTED"}]}`))
		case "/application/create":
			w.Write([]byte(`{"success":true,"message":"application received","applicationId":9}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ch := svc.Hub.Subscribe()
	defer svc.Hub.Unsubscribe(ch)
	ctx := context.Background()

	if _, err := svc.MyApplications(ctx); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Create(ctx, domain.CreateApplicationRequest{Company: "Krafton", Position: "Server Programmer"})
	if err != nil || !res.Success {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	if n := drainNotice(t, ch); n.Level != events.NoticeSuccess {
		t.Fatalf("notice = %+v", n)
	}

	// The cached empty list must be gone; the next read refetches.
	after, err := svc.MyApplications(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if after.TotalCount != 1 {
		t.Fatalf("list still stale after successful create: %+v", after)
	}
	if atomic.LoadInt32(&listHits) != 2 {
		t.Fatalf("list hits = %d", listHits)
	}
}

func TestCreateSoftFailureLeavesCacheAlone(t *testing.T) {
	var listHits int32
	svc := newApplicationsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/application/my-list":
			atomic.AddInt32(&listHits, 1)
			w.Write([]byte(`{"success":true,"totalCount":0,"applications":[]}`))
		case "/application/create":
			w.Write([]byte(`{"success":false,"message":"duplicate application"}`))
		}
	}))

	ch := svc.Hub.Subscribe()
	defer svc.Hub.Unsubscribe(ch)
	ctx := context.Background()

	if _, err := svc.MyApplications(ctx); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Create(ctx, domain.CreateApplicationRequest{Company: "Krafton"})
	if err != nil {
		t.Fatalf("soft failure must not error: %v", err)
	}
	if res.Success {
		t.Fatal("expected a rejected create")
	}
	n := drainNotice(t, ch)
	if n.Level != events.NoticeError || n.Message != "duplicate application" {
		t.Fatalf("notice = %+v", n)
	}

	if _, err := svc.MyApplications(ctx); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&listHits) != 1 {
		t.Fatal("failed create invalidated the list")
	}
}

func TestCreateTransportErrorNotifies(t *testing.T) {
	svc := newApplicationsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
		w.Write([]byte(`{"success":false,"message":"maintenance window"}`))
	}))

	ch := svc.Hub.Subscribe()
	defer svc.Hub.Unsubscribe(ch)

	_, err := svc.Create(context.Background(), domain.CreateApplicationRequest{Company: "Krafton"})
	if err == nil {
		t.Fatal("expected an error for 503")
	}
	if n := drainNotice(t, ch); n.Level != events.NoticeError {
		t.Fatalf("notice = %+v", n)
	}
}
