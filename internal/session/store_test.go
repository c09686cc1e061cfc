package session

import (
	"testing"

	"gamecraft-engine/internal/domain"
)

type memPersister struct {
	saved []domain.Session
	load  *domain.Session
}

func (m *memPersister) Load() (domain.Session, bool, error) {
	if m.load == nil {
		return domain.Session{}, false, nil
	}
	return *m.load, true, nil
}

func (m *memPersister) Save(s domain.Session) error {
	m.saved = append(m.saved, s)
	return nil
}

func sampleUser() domain.User {
	return domain.User{
		ID:       "7",
		Email:    "a@b.com",
		Nickname: "Kim",
		Role:     domain.RoleUser,
	}
}

func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	sess := s.Current()
	want := sess.User != nil && sess.Token != ""
	if sess.Authenticated != want {
		t.Fatalf("invariant broken: authenticated=%v user=%v token=%q", sess.Authenticated, sess.User, sess.Token)
	}
}

func TestLoginLogout(t *testing.T) {
	s := NewStore(nil)
	checkInvariant(t, s)

	if s.IsAuthenticated() {
		t.Fatal("fresh store must be anonymous")
	}

	s.Login(sampleUser(), "server-session-token")
	checkInvariant(t, s)
	if !s.IsAuthenticated() {
		t.Fatal("expected authenticated after login")
	}
	sess := s.Current()
	if sess.User == nil || sess.User.Nickname != "Kim" {
		t.Fatalf("unexpected user after login: %+v", sess.User)
	}

	s.Logout()
	checkInvariant(t, s)
	if s.IsAuthenticated() {
		t.Fatal("expected anonymous after logout")
	}

	// Idempotent: a second logout is the same cleared state.
	s.Logout()
	checkInvariant(t, s)
	sess = s.Current()
	if sess.User != nil || sess.Token != "" || sess.Authenticated {
		t.Fatalf("double logout left state behind: %+v", sess)
	}
}

func TestUpdateUserMerge(t *testing.T) {
	s := NewStore(nil)
	s.Login(sampleUser(), "tok")

	nick := "X"
	s.UpdateUser(domain.UserPatch{Nickname: &nick})

	sess := s.Current()
	if sess.User.Nickname != "X" {
		t.Fatalf("nickname not merged: %q", sess.User.Nickname)
	}
	if sess.User.ID != "7" || sess.User.Email != "a@b.com" || sess.User.Role != domain.RoleUser {
		t.Fatalf("merge touched untouched fields: %+v", sess.User)
	}
	checkInvariant(t, s)
}

func TestUpdateUserNoopWhenAnonymous(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p)

	nick := "X"
	s.UpdateUser(domain.UserPatch{Nickname: &nick})

	if got := s.Current(); got.User != nil {
		t.Fatalf("update on empty session created a user: %+v", got.User)
	}
	if len(p.saved) != 0 {
		t.Fatalf("no-op update must not persist, saved %d times", len(p.saved))
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Login(sampleUser(), "tok")

	sess := s.Current()
	sess.User.Nickname = "mutated"

	if s.Current().User.Nickname != "Kim" {
		t.Fatal("Current leaked a mutable reference to store state")
	}
}

func TestRehydrate(t *testing.T) {
	u := sampleUser()
	p := &memPersister{load: &domain.Session{User: &u, Token: "tok", Authenticated: true}}

	s := NewStore(p)
	if !s.IsAuthenticated() {
		t.Fatal("expected rehydrated session to be authenticated")
	}
	checkInvariant(t, s)
}

func TestRehydrateRederivesFlag(t *testing.T) {
	// A stored record claiming authenticated without a user must come back
	// anonymous.
	p := &memPersister{load: &domain.Session{Authenticated: true}}

	s := NewStore(p)
	if s.IsAuthenticated() {
		t.Fatal("rehydration trusted a corrupt authenticated flag")
	}
	checkInvariant(t, s)
}

func TestPersistOnTransitions(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p)

	s.Login(sampleUser(), "tok")
	s.Logout()

	if len(p.saved) != 2 {
		t.Fatalf("expected 2 persisted writes, got %d", len(p.saved))
	}
	if !p.saved[0].Authenticated || p.saved[1].Authenticated {
		t.Fatalf("persisted states out of order: %+v", p.saved)
	}
}
