package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-widget/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
)

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process. Expired entries are
// invisible to readers and removed by Sweep.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *MemorySessionRepository) CreateOrUpdate(_ context.Context, session entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = memoryEntry{
		session:   session,
		expiresAt: that.now().Add(that.ttl),
	}

	return nil
}

func (that *MemorySessionRepository) GetByID(_ context.Context, id string) (entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		return entity.Session{}, apperror.ErrSessionNotFound
	}

	return entry.session, nil
}

func (that *MemorySessionRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		delete(that.sessions, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (that *MemorySessionRepository) Sweep() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for id, entry := range that.sessions {
		if that.expired(entry) {
			delete(that.sessions, id)
			removed++
		}
	}

	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (that *MemorySessionRepository) RunSweeper(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	log := logger.With("method", "RunSweeper")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := that.Sweep(); removed > 0 {
				log.Debug("expired sessions removed", "count", removed)
			}
		}
	}
}

func (that *MemorySessionRepository) expired(entry memoryEntry) bool {
	return that.ttl > 0 && !that.now().Before(entry.expiresAt)
}
