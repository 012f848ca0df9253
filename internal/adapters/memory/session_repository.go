package memory

import (
	"briefing-service/internal/core/domain"
	"briefing-service/internal/core/port"
	"context"
	"fmt"
	"sync"
	"time"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionRepository хранит сессии в памяти процесса.
// Изменения одной сессии сериализуются ее собственным мьютексом.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
	logger   port.LoggerPort
}

func NewSessionRepository(ttl time.Duration, logger port.LoggerPort) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.WithFields(port.Fields{"component": "SessionRepository"}),
	}
}

func (r *SessionRepository) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	session.TouchedAt = r.now()
	r.sessions[session.ID] = &sessionEntry{session: session}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, sessionID string, fn func(*domain.Session) error) error {
	r.mu.RLock()
	entry, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	entry.session.TouchedAt = r.now()
	return fn(entry.session)
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ExpireIdle удаляет сессии, к которым не обращались дольше ttl, и возвращает их число.
func (r *SessionRepository) ExpireIdle() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for id, entry := range r.sessions {
		// сессию, которая сейчас обрабатывается, не трогаем
		if !entry.mu.TryLock() {
			continue
		}
		idle := entry.session.TouchedAt.Before(deadline)
		entry.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			expired++
		}
	}
	return expired
}

// RunJanitor периодически удаляет простаивающие сессии до отмены контекста.
func (r *SessionRepository) RunJanitor(ctx context.Context, interval time.Duration, metrics port.MetricsPort) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("Session janitor started", port.Fields{"interval": interval.String(), "ttl": r.ttl.String()})
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Session janitor stopped", nil)
			return
		case <-ticker.C:
			if n := r.ExpireIdle(); n > 0 {
				r.logger.Info("Expired idle sessions", port.Fields{"expired": n, "active": r.Count()})
			}
			metrics.SessionsActive(r.Count())
		}
	}
}
