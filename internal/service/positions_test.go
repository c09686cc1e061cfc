package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
)

func newPositionsService(t *testing.T, handler http.Handler) *PositionsService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPositionsService(platform.New(srv.URL), query.NewCache(), events.NewHub(), cfgVal())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestFetchMergesPartialParams(t *testing.T) {
	var got []url.Values
	svc := newPositionsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query())
		w.Write([]byte(`{"success":true,"jobs":[],"pagination":{"currentPage":0,"totalPages":1,"totalElements":0}}`))
	}))
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, platform.PartialParams{Search: strPtr("unreal")}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Fetch(ctx, platform.PartialParams{Page: intPtr(2)}); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("requests = %d", len(got))
	}
	// Defaults ride along on the first request.
	if got[0].Get("page") != "0" || got[0].Get("size") != "12" || got[0].Get("sort") != "latest" {
		t.Fatalf("first query = %v", got[0])
	}
	if got[0].Get("search") != "unreal" {
		t.Fatalf("first query = %v", got[0])
	}
	// Paging forward keeps the keyword; untouched params never reset.
	if got[1].Get("page") != "2" || got[1].Get("search") != "unreal" {
		t.Fatalf("second query = %v", got[1])
	}

	p := svc.Params()
	if p.Page != 2 || p.Search != "unreal" || p.Sort != "latest" {
		t.Fatalf("params = %+v", p)
	}
}

func TestFetchFailureKeepsLastRows(t *testing.T) {
	var fail atomic.Bool
	svc := newPositionsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(500)
			return
		}
		w.Write([]byte(`{"success":true,"jobs":[{"id":1,"slug":"gameplay-1","title":"Gameplay Programmer","company":"Krafton"}],"pagination":{"totalPages":3,"totalElements":25}}`))
	}))
	ctx := context.Background()

	snap, err := svc.Fetch(ctx, platform.PartialParams{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Positions) != 1 || snap.TotalPages != 3 {
		t.Fatalf("snap = %+v", snap)
	}

	fail.Store(true)
	snap, err = svc.Fetch(ctx, platform.PartialParams{Page: intPtr(1)})
	if err == nil {
		t.Fatal("expected an error")
	}
	if snap.Error == "" {
		t.Fatal("error snapshot has no message")
	}

	kept := svc.Snapshot()
	if len(kept.Positions) != 1 || kept.TotalPages != 3 {
		t.Fatalf("previous rows not kept: %+v", kept)
	}
	if kept.Error == "" {
		t.Fatal("snapshot should surface the failure")
	}
}

func TestFetchSoftFailureUsesServerMessage(t *testing.T) {
	svc := newPositionsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"index rebuilding"}`))
	}))

	snap, err := svc.Fetch(context.Background(), platform.PartialParams{})
	if err != nil {
		t.Fatalf("soft failure must not error: %v", err)
	}
	if snap.Error != "index rebuilding" {
		t.Fatalf("snap = %+v", snap)
	}
}

func TestFilterOptionsCached(t *testing.T) {
	var hits int32
	svc := newPositionsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"success":true,"companies":[{"name":"Krafton","count":4}],"locations":[{"name":"Seoul","count":9}]}`))
	}))
	ctx := context.Background()

	if _, err := svc.FilterOptions(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FilterOptions(ctx); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("hits = %d", hits)
	}
}

func TestAnnotateScoresWhenMatchingEnabled(t *testing.T) {
	svc := newPositionsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"jobs":[{"id":1,"title":"Unity Client Programmer","requiredSkills":["Unity","C#"]},{"id":2,"title":"HR Coordinator"}],"pagination":{"totalPages":1,"totalElements":2}}`))
	}))

	cfg := config.Default()
	cfg.Matching.Enabled = true
	cfg.Matching.SkillRules = []config.Rule{{Tag: "unity", Weight: 10, Any: []string{"Unity"}}}
	svc.CfgVal.Store(cfg)

	snap, err := svc.Fetch(context.Background(), platform.PartialParams{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Positions) != 2 {
		t.Fatalf("positions = %d", len(snap.Positions))
	}
	if snap.Positions[0].MatchScore <= snap.Positions[1].MatchScore {
		t.Fatalf("scores = %d %d", snap.Positions[0].MatchScore, snap.Positions[1].MatchScore)
	}
}
