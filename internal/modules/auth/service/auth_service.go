package service

import (
	"sync"

	"taskdeck/internal/modules/auth/domain"
)

// AuthService holds the live session state and is the token source every
// remote call reads at call time. All mutation goes through Dispatch, so the
// domain reducer is the only place transitions happen.
type AuthService struct {
	mu    sync.RWMutex
	state domain.Session
}

func NewAuthService() *AuthService {
	return &AuthService{}
}

func (s *AuthService) Dispatch(event domain.Event) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.Reduce(s.state, event)
	return s.state
}

func (s *AuthService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token implements remote.TokenSource.
func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Authenticated reports whether a full session is held right now. Other
// modules gate their writes on it.
func (s *AuthService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

// UserID implements remote.TokenSource.
func (s *AuthService) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.ID
}
