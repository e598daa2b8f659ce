package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stock_portfolio/internal/feature/auth/domain/entity"
)

// Verifier checks a username/password pair.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (*entity.Account, error)
}

// LoginRecorder stamps the last login time of an account.
type LoginRecorder interface {
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

// sessionService tracks the single principal of this process.
type sessionService struct {
	verifier Verifier
	recorder LoginRecorder
	now      func() time.Time

	mu      sync.RWMutex
	current *entity.Account
}

// NewSessionService creates a session service with no principal.
func NewSessionService(verifier Verifier, recorder LoginRecorder) *sessionService {
	return &sessionService{
		verifier: verifier,
		recorder: recorder,
		now:      time.Now,
	}
}

// Login verifies the credentials and makes the account the current principal.
// A failure to record the login time is logged and does not fail the login.
func (s *sessionService) Login(ctx context.Context, username, password string) (*entity.Account, error) {
	account, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	if err := s.recorder.UpdateLastLogin(ctx, account.ID, at); err != nil {
		slog.Warn("failed to record last login", "account_id", account.ID, "error", err)
	} else {
		account.LastLoginAt = &at
	}

	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	slog.Info("login successful", "account_id", account.ID, "username", account.Username)
	return account, nil
}

// Logout clears the current principal. It is a no-op when nobody is logged in.
func (s *sessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		slog.Info("logout", "account_id", s.current.ID)
	}
	s.current = nil
}

// Current returns a copy of the current principal.
func (s *sessionService) Current() (*entity.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	a := *s.current
	return &a, true
}
