package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
)

// myListStale keeps the candidate's own list on the stale-while-revalidate
// path during navigation without pinning it for long.
const myListStale = 30 * time.Second

type ApplicationsService struct {
	API    *platform.Client
	Cache  *query.Cache
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config
}

func (s *ApplicationsService) cfg() config.Config {
	return s.CfgVal.Load().(config.Config)
}

// MyApplications returns the candidate's own applications through the cache.
// A soft failure yields the zero response, not an error.
func (s *ApplicationsService) MyApplications(ctx context.Context) (platform.ApplicationListResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("applications/my"), myListStale,
		func(ctx context.Context) (platform.ApplicationListResponse, error) {
			res, err := s.API.Applications.MyList(ctx)
			if err != nil {
				return platform.ApplicationListResponse{}, err
			}
			if !res.Success {
				return platform.ApplicationListResponse{}, nil
			}
			return res, nil
		})
}

// FormInfo is the static reference data behind the application form.
// It changes rarely; cached on a slow cadence.
func (s *ApplicationsService) FormInfo(ctx context.Context) (platform.FormInfoResponse, error) {
	return query.GetAs(ctx, s.Cache, query.Key("applications/form-info"), s.cfg().FormInfoStale(),
		func(ctx context.Context) (platform.FormInfoResponse, error) {
			res, err := s.API.Applications.FormInfo(ctx)
			if err != nil {
				return platform.FormInfoResponse{}, err
			}
			if !res.Success {
				return platform.FormInfoResponse{}, nil
			}
			return res, nil
		})
}

// Create submits an application. The payload is validated server-side; this
// layer only reports the outcome and, on success, invalidates the my-list
// key so the next read refetches. A failed create never invalidates.
func (s *ApplicationsService) Create(ctx context.Context, req domain.CreateApplicationRequest) (platform.CreateApplicationResponse, error) {
	reqID := events.RequestIDFrom(ctx)

	res, err := s.API.Applications.Create(ctx, req)
	if err != nil {
		log.Printf("level=error msg=\"create application failed\" company=%s err=%v", req.Company, err)
		msg := err.Error()
		if msg == "" {
			msg = "Application submission failed"
		}
		s.Hub.Notify(reqID, events.NoticeError, msg)
		return res, err
	}

	if !res.Success {
		// Soft failure: server rejected the payload. No invalidation.
		s.Hub.Notify(reqID, events.NoticeError, res.Message)
		return res, nil
	}

	s.Hub.Notify(reqID, events.NoticeSuccess, res.Message)
	s.Cache.Invalidate(query.Key("applications/my"))
	return res, nil
}
