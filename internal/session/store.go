package session

import (
	"log"
	"sync"

	"gamecraft-engine/internal/domain"
)

// Namespace is the fixed key the serialized session lives under.
const Namespace = "auth-storage"

// Persister writes the session somewhere durable. Save receives the cleared
// state on logout rather than a separate delete path, so rehydration always
// finds a well-formed record.
type Persister interface {
	Load() (domain.Session, bool, error)
	Save(domain.Session) error
}

// Store is the single source of truth for who is logged in. Reads are
// synchronous and reflect the last completed write. No network I/O happens
// here; callers decide when to invoke the transitions.
type Store struct {
	mu      sync.RWMutex
	session domain.Session
	persist Persister
}

func NewStore(p Persister) *Store {
	s := &Store{persist: p}
	if p == nil {
		return s
	}
	sess, ok, err := p.Load()
	if err != nil {
		log.Printf("level=warn msg=\"session rehydrate failed\" err=%v", err)
		return s
	}
	if ok {
		// Re-derive the flag instead of trusting the stored one.
		sess.Authenticated = sess.User != nil && sess.Token != ""
		s.session = sess
	}
	return s
}

// Current returns a copy of the session. The user pointer is cloned so
// callers cannot mutate store state through it.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloned(s.session)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated && s.session.User != nil && s.session.User.IsAdmin()
}

// Login sets the session. The token is not validated here; the caller
// guarantees a prior successful auth exchange.
func (s *Store) Login(user domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.session = domain.Session{
		User:          &u,
		Token:         token,
		Authenticated: true,
	}
	s.save()
}

// Logout clears the session. Safe to call repeatedly.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	s.save()
}

// UpdateUser merges patch fields into the current user. No-op when nobody is
// logged in. Identity fields (id, role) are not patchable.
func (s *Store) UpdateUser(patch domain.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.User == nil {
		return
	}
	u := *s.session.User
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Nickname != nil {
		u.Nickname = *patch.Nickname
	}
	if patch.ProfileImage != nil {
		u.ProfileImage = *patch.ProfileImage
	}
	s.session.User = &u
	s.save()
}

// save runs under s.mu.
func (s *Store) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(cloned(s.session)); err != nil {
		log.Printf("level=warn msg=\"session persist failed\" err=%v", err)
	}
}

func cloned(sess domain.Session) domain.Session {
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}
