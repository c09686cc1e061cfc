package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
	"gamecraft-engine/internal/rank"
)

const detailStale = 30 * time.Second

// PositionsService owns the browse state for job postings. The primary list
// deliberately bypasses the cache layer: page/sort/filter change on nearly
// every interaction, so long-lived caching buys nothing there. The slow-
// moving reads (filter options, curated lists, details) go through it.
type PositionsService struct {
	API    *platform.Client
	Cache  *query.Cache
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config

	mu     sync.Mutex
	params platform.SearchParams
	snap   Snapshot
}

// Snapshot is the last fetched page of results plus its paging totals.
type Snapshot struct {
	Positions     []domain.JobPosition `json:"positions"`
	TotalPages    int                  `json:"totalPages"`
	TotalElements int                  `json:"totalElements"`
	Error         string               `json:"error,omitempty"`
	FetchedAt     time.Time            `json:"fetchedAt"`
}

func NewPositionsService(api *platform.Client, cache *query.Cache, hub *events.Hub, cfgVal *atomic.Value) *PositionsService {
	return &PositionsService{
		API:    api,
		Cache:  cache,
		Hub:    hub,
		CfgVal: cfgVal,
		params: platform.DefaultSearchParams(),
	}
}

func (s *PositionsService) cfg() config.Config {
	return s.CfgVal.Load().(config.Config)
}

func (s *PositionsService) Params() platform.SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *PositionsService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Fetch merges partial params into the current record and issues a direct
// fetch with the merged set; untouched params carry over, none reset.
func (s *PositionsService) Fetch(ctx context.Context, partial platform.PartialParams) (Snapshot, error) {
	s.mu.Lock()
	s.params = s.params.Merge(partial)
	merged := s.params
	s.mu.Unlock()

	res, err := s.API.Positions.List(ctx, merged)
	if err != nil {
		log.Printf("level=error msg=\"positions fetch failed\" err=%v", err)
		snap := Snapshot{Error: "Network error while loading positions", FetchedAt: time.Now()}
		s.keepSnapshot(snap, true)
		return snap, err
	}

	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Failed to load positions"
		}
		snap := Snapshot{Error: msg, FetchedAt: time.Now()}
		s.keepSnapshot(snap, true)
		return snap, nil
	}

	snap := Snapshot{
		Positions:     s.annotate(res.Jobs),
		TotalPages:    res.Pagination.TotalPages,
		TotalElements: res.Pagination.TotalElements,
		FetchedAt:     time.Now(),
	}
	s.keepSnapshot(snap, false)
	return snap, nil
}

// keepSnapshot preserves the previous result rows on failure so the UI keeps
// showing the last good page alongside the error.
func (s *PositionsService) keepSnapshot(snap Snapshot, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if failed {
		snap.Positions = s.snap.Positions
		snap.TotalPages = s.snap.TotalPages
		snap.TotalElements = s.snap.TotalElements
	}
	s.snap = snap
}

func (s *PositionsService) FilterOptions(ctx context.Context) (platform.FilterOptionsResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("positions/filter-options"), s.cfg().FilterOptionsStale(),
		func(ctx context.Context) (platform.FilterOptionsResponse, error) {
			res, err := s.API.Positions.FilterOptions(ctx)
			if err != nil {
				return platform.FilterOptionsResponse{}, err
			}
			if !res.Success {
				return platform.FilterOptionsResponse{}, nil
			}
			return res, nil
		})
}

func (s *PositionsService) Detail(ctx context.Context, id int64) (platform.PositionDetailResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("positions/detail", strconv.FormatInt(id, 10)), detailStale,
		func(ctx context.Context) (platform.PositionDetailResponse, error) {
			return s.API.Positions.Detail(ctx, id)
		})
}

func (s *PositionsService) BySlug(ctx context.Context, slug string) (platform.PositionDetailResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("positions/slug", slug), detailStale,
		func(ctx context.Context) (platform.PositionDetailResponse, error) {
			return s.API.Positions.BySlug(ctx, slug)
		})
}

func (s *PositionsService) Popular(ctx context.Context, limit int) ([]domain.JobPosition, error) {
	res, err := query.GetAs(ctx, s.Cache, query.Key("positions/popular", strconv.Itoa(limit)), s.cfg().CuratedStale(),
		func(ctx context.Context) (platform.PositionListResponse, error) {
			return s.API.Positions.Popular(ctx, limit)
		})
	if err != nil {
		return nil, err
	}
	return s.annotate(res.Jobs), nil
}

func (s *PositionsService) Recent(ctx context.Context, days int) ([]domain.JobPosition, error) {
	res, err := query.GetAs(ctx, s.Cache, query.Key("positions/recent", strconv.Itoa(days)), s.cfg().CuratedStale(),
		func(ctx context.Context) (platform.PositionListResponse, error) {
			return s.API.Positions.Recent(ctx, days)
		})
	if err != nil {
		return nil, err
	}
	return s.annotate(res.Jobs), nil
}

func (s *PositionsService) DeadlineSoon(ctx context.Context, days int) ([]domain.JobPosition, error) {
	res, err := query.GetAs(ctx, s.Cache, query.Key("positions/deadline-soon", strconv.Itoa(days)), s.cfg().DeadlineSoonStale(),
		func(ctx context.Context) (platform.PositionListResponse, error) {
			return s.API.Positions.DeadlineSoon(ctx, days)
		})
	if err != nil {
		return nil, err
	}
	return s.annotate(res.Jobs), nil
}

func (s *PositionsService) annotate(jobs []domain.JobPosition) []domain.JobPosition {
	cfg := s.cfg()
	if !cfg.Matching.Enabled || len(jobs) == 0 {
		return jobs
	}
	scorer := rank.YAMLScorer{Cfg: cfg}
	out := make([]domain.JobPosition, len(jobs))
	for i, j := range jobs {
		score, _ := scorer.Score(j)
		j.MatchScore = score
		out[i] = j
	}
	return out
}
