package gradeauth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Authenticator = (*SessionState)(nil)

// SessionState caches the latest authentication check and broadcasts
// transitions to subscribers. It is owned by the composition root and
// injected into consumers; it is a cache, not the source of truth, and can
// re-derive its view from the TokenStore at any time.
type SessionState struct {
	mu            sync.Mutex
	authenticated bool
	claims        *TokenClaims
	store         *TokenStore
	codec         *TokenCodec
	logger        Logger
	now           func() time.Time
	subscribers   map[uuid.UUID]func(bool)
}

// NewSessionState returns a SessionState starting out unauthenticated.
func NewSessionState(store *TokenStore, codec *TokenCodec) *SessionState {
	if codec == nil {
		codec = NewTokenCodec()
	}

	return &SessionState{
		store:       store,
		codec:       codec,
		logger:      defLogger{},
		now:         time.Now,
		subscribers: map[uuid.UUID]func(bool){},
	}
}

func (s *SessionState) WithLogger(logger Logger) *SessionState {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock overrides the time source used for expiry checks.
func (s *SessionState) WithClock(now func() time.Time) *SessionState {
	if now != nil {
		s.now = now
	}
	return s
}

// IsAuthenticated returns the cached flag when it is already true;
// otherwise it attempts to re-derive the session from storage. The flag
// flips to true (with one broadcast) only when a well-formed, non-expired
// token is found. A failed check leaves the flag untouched.
func (s *SessionState) IsAuthenticated() bool {
	s.mu.Lock()
	if s.authenticated {
		s.mu.Unlock()
		return true
	}

	raw, err := s.store.Load()
	if err != nil {
		s.mu.Unlock()
		return false
	}

	claims, err := s.codec.Decode(raw)
	if err != nil {
		s.logger.Debug("stored token failed to decode: %v", err)
		s.mu.Unlock()
		return false
	}

	if s.codec.IsExpired(claims, s.now()) {
		s.mu.Unlock()
		return false
	}

	s.authenticated = true
	s.claims = claims
	observers := s.observers()
	s.mu.Unlock()

	notify(observers, true)
	return true
}

// MarkAuthenticated records a successful login. The claims come from the
// token the server just issued; a broadcast fires only when the flag
// actually transitions.
func (s *SessionState) MarkAuthenticated(claims *TokenClaims) {
	s.mu.Lock()
	transitioned := !s.authenticated
	s.authenticated = true
	s.claims = claims
	observers := s.observers()
	s.mu.Unlock()

	if transitioned {
		notify(observers, true)
	}
}

// Username returns the decoded subject when authenticated.
func (s *SessionState) Username() (string, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return "", false
	}
	return s.claims.Subject(), true
}

// Roles returns the decoded role list when authenticated.
func (s *SessionState) Roles() RoleList {
	if !s.IsAuthenticated() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims == nil {
		return nil
	}
	return s.claims.Roles
}

// HasRole checks membership of a role in the authenticated session.
func (s *SessionState) HasRole(role Role) bool {
	return s.Roles().Contains(role)
}

// Logout clears both storage scopes, resets the cached flag, and
// broadcasts false when the session was authenticated.
func (s *SessionState) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Error("failed to clear token storage on logout: %v", err)
	}

	s.mu.Lock()
	transitioned := s.authenticated
	s.authenticated = false
	s.claims = nil
	observers := s.observers()
	s.mu.Unlock()

	if transitioned {
		notify(observers, false)
	}
}

// Subscribe registers an observer for authentication-state transitions and
// returns a handle for Unsubscribe. Observers fire on transitions only,
// never on polls that resolve to the cached value.
func (s *SessionState) Subscribe(fn func(authenticated bool)) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.subscribers[id] = fn
	return id
}

// Unsubscribe removes an observer
func (s *SessionState) Unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, id)
}

// observers snapshots the subscriber list; callers must hold the lock.
// Notifications run after the lock is released so observers can call back
// into the session.
func (s *SessionState) observers() []func(bool) {
	fns := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	return fns
}

func notify(observers []func(bool), authenticated bool) {
	for _, fn := range observers {
		fn(authenticated)
	}
}
