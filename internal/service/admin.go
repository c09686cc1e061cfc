package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
)

const adminListStale = 30 * time.Second

// StatusAll is the unfiltered sentinel; it is never sent to the backend.
const StatusAll = "ALL"

// AdminService drives the staff view. The two filter dimensions re-key the
// underlying list query: changing either produces a distinct cache entry
// rather than filtering a previously fetched set client-side, which keeps
// results correct if the backend ever paginates this path.
type AdminService struct {
	API    *platform.Client
	Cache  *query.Cache
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config

	mu            sync.Mutex
	statusFilter  string
	companyFilter string
}

func (s *AdminService) cfg() config.Config {
	return s.CfgVal.Load().(config.Config)
}

func (s *AdminService) Filters() (status, company string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusFilter == "" {
		return StatusAll, s.companyFilter
	}
	return s.statusFilter, s.companyFilter
}

func (s *AdminService) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
}

func (s *AdminService) SetCompanyFilter(company string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companyFilter = company
}

// Applications lists every application matching the active filters.
func (s *AdminService) Applications(ctx context.Context) (platform.AdminApplicationListResponse, error) {
	status, company := s.Filters()

	sent := status
	if sent == StatusAll {
		sent = ""
	}

	key := query.Key("admin/applications", status, company)
	return query.GetAs(ctx, s.Cache, key, adminListStale,
		func(ctx context.Context) (platform.AdminApplicationListResponse, error) {
			res, err := s.API.Admin.Applications(ctx, sent, company)
			if err != nil {
				return platform.AdminApplicationListResponse{}, err
			}
			if !res.Success {
				return platform.AdminApplicationListResponse{}, nil
			}
			return res, nil
		})
}

func (s *AdminService) Dashboard(ctx context.Context) (platform.AdminDashboardResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("admin/dashboard"), s.cfg().DashboardStale(),
		func(ctx context.Context) (platform.AdminDashboardResponse, error) {
			res, err := s.API.Admin.Dashboard(ctx)
			if err != nil {
				return platform.AdminDashboardResponse{}, err
			}
			if !res.Success {
				return platform.AdminDashboardResponse{}, nil
			}
			return res, nil
		})
}

func (s *AdminService) ApplicationDetail(ctx context.Context, id int64) (platform.AdminApplicationDetailResponse, error) {
	return s.API.Admin.ApplicationDetail(ctx, id)
}

// UpdateStatus moves one application to a new status. Invalidation of the
// admin list and dashboard keys happens strictly after the mutation's
// success is observed; a failed update touches no cache state.
func (s *AdminService) UpdateStatus(ctx context.Context, id int64, status, adminNotes string) (platform.Envelope, error) {
	reqID := events.RequestIDFrom(ctx)

	res, err := s.API.Admin.UpdateApplicationStatus(ctx, id, status, adminNotes)
	if err != nil {
		log.Printf("level=error msg=\"status update failed\" id=%d err=%v", id, err)
		msg := err.Error()
		if msg == "" {
			msg = "Status update failed"
		}
		s.Hub.Notify(reqID, events.NoticeError, msg)
		return res, err
	}

	if !res.Success {
		s.Hub.Notify(reqID, events.NoticeError, res.Message)
		return res, nil
	}

	s.Hub.Notify(reqID, events.NoticeSuccess, res.Message)
	s.Cache.Invalidate("admin/applications")
	s.Cache.Invalidate("admin/dashboard")
	return res, nil
}
