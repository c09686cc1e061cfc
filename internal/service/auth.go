package service

import (
	"context"
	"log"
	"strconv"

	"gamecraft-engine/internal/domain"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
	"gamecraft-engine/internal/session"
)

// Redirect targets handed to the UI shell by the guards.
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// Guard is a guard decision: either OK, or a redirect target the UI should
// navigate to. Guards never error; authorization failure is a redirect plus
// a notice, not a fault.
type Guard struct {
	OK       bool   `json:"ok"`
	Redirect string `json:"redirect,omitempty"`
}

type AuthService struct {
	Sessions *session.Store
	API      *platform.Client
	Cache    *query.Cache
	Hub      *events.Hub
}

// LoginURL is where the UI sends the browser to start the OAuth dance.
func (s *AuthService) LoginURL() string {
	return s.API.Auth.LoginURL()
}

func (s *AuthService) ResolveLoginRedirect(ctx context.Context) (string, error) {
	return s.API.Auth.ResolveLoginRedirect(ctx)
}

// CheckAuthStatus fetches the backend's idea of the current session and syncs
// the local store to it: unknown -> authenticated on success, unknown ->
// anonymous on failure or an unauthenticated answer.
func (s *AuthService) CheckAuthStatus(ctx context.Context) (bool, error) {
	res, err := s.API.Auth.UserInfo(ctx)
	if err != nil {
		log.Printf("level=warn msg=\"auth status check failed\" err=%v", err)
		if s.Sessions.IsAuthenticated() {
			s.Sessions.Logout()
		}
		return false, err
	}

	if !res.Success || res.User == nil {
		if s.Sessions.IsAuthenticated() {
			s.Sessions.Logout()
		}
		return false, nil
	}

	s.Sessions.Login(domain.User{
		ID:           strconv.FormatInt(res.User.ID, 10),
		Email:        res.User.Email,
		Nickname:     res.User.Name,
		ProfileImage: res.User.ProfileImage,
		Role:         domain.Role(res.User.Role),
	}, "server-session-token")
	return true, nil
}

// Logout ends the server session and always clears local state, even when
// the remote call fails; a dead backend must not strand the UI looking
// logged in.
func (s *AuthService) Logout(ctx context.Context) {
	reqID := events.RequestIDFrom(ctx)

	_, err := s.API.Auth.Logout(ctx)
	s.Sessions.Logout()
	s.Cache.Invalidate("applications/")
	s.Cache.Invalidate("admin/")

	if err != nil {
		log.Printf("level=warn msg=\"remote logout failed\" err=%v", err)
		s.Hub.Notify(reqID, events.NoticeInfo, "Signed out")
		return
	}
	s.Hub.Notify(reqID, events.NoticeSuccess, "Signed out")
}

// PromoteToAdmin asks the backend to grant the current user the admin role,
// then re-syncs the session so the new role is visible locally.
func (s *AuthService) PromoteToAdmin(ctx context.Context) bool {
	reqID := events.RequestIDFrom(ctx)

	res, err := s.API.Admin.PromoteToAdmin(ctx)
	if err != nil {
		log.Printf("level=error msg=\"promote failed\" err=%v", err)
		s.Hub.Notify(reqID, events.NoticeError, "Admin promotion failed")
		return false
	}
	if !res.Success {
		s.Hub.Notify(reqID, events.NoticeError, res.Message)
		return false
	}

	s.Hub.Notify(reqID, events.NoticeSuccess, res.Message)
	if _, err := s.CheckAuthStatus(ctx); err != nil {
		log.Printf("level=warn msg=\"auth resync after promote failed\" err=%v", err)
	}
	return true
}

// RequireAuth gates a protected surface on a live session.
func (s *AuthService) RequireAuth(ctx context.Context) Guard {
	if s.Sessions.IsAuthenticated() {
		return Guard{OK: true}
	}
	s.Hub.Notify(events.RequestIDFrom(ctx), events.NoticeError, "Sign in required")
	return Guard{Redirect: LoginPath}
}

// RequireAdmin gates the admin surface: anonymous users go to login,
// non-admins back to their dashboard.
func (s *AuthService) RequireAdmin(ctx context.Context) Guard {
	if !s.Sessions.IsAuthenticated() {
		s.Hub.Notify(events.RequestIDFrom(ctx), events.NoticeError, "Sign in required")
		return Guard{Redirect: LoginPath}
	}
	if !s.Sessions.IsAdmin() {
		s.Hub.Notify(events.RequestIDFrom(ctx), events.NoticeError, "Admin access required")
		return Guard{Redirect: DashboardPath}
	}
	return Guard{OK: true}
}
