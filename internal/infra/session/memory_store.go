// Package session provides the in-memory store backing the login cookie.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// memoryStore keeps sessions in process memory guarded by a mutex. Sessions
// do not survive a restart; every login mints a fresh token.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	ttl      time.Duration
	logger   *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the memory store and hooks the expiry sweeper into the fx lifecycle.
func New(params Params) service.SessionStore {
	store := newMemoryStore(params.Config.Session.TTL, params.Logger)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	interval := params.Config.Session.SweepInterval

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go store.sweep(sweepCtx, interval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelSweep()

			return nil
		},
	})

	return store
}

func newMemoryStore(ttl time.Duration, logger *slog.Logger) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*entity.Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create mints a new session for the user and returns it, token included.
func (s *memoryStore) Create(_ context.Context, user *entity.User) (*entity.Session, error) {
	session := &entity.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// Get resolves a token to its live session. Expired entries are dropped on read.
func (s *memoryStore) Get(_ context.Context, token string) (*entity.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, service.ErrSessionNotFound
	}

	if session.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()

		return nil, service.ErrSessionNotFound
	}

	return session, nil
}

// Delete discards the session for the token. Unknown tokens are a no-op.
func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	return nil
}

// sweep drops expired sessions periodically so dead logins do not pile up.
func (s *memoryStore) sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, remaining := s.removeExpired(time.Now())
			if removed > 0 && s.logger != nil {
				s.logger.LogAttrs(ctx, slog.LevelDebug, "Session sweep",
					slog.Int("removed", removed),
					slog.Int("remaining", remaining),
				)
			}
		}
	}
}

func (s *memoryStore) removeExpired(now time.Time) (removed, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}

	return removed, len(s.sessions)
}
