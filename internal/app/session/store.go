package session

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// Store persists sessions by ID.
type Store interface {
	// Get returns apperrors.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart and are not shared between instances.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		_ = m.Delete(context.Background(), id)
		return nil, apperrors.ErrSessionNotFound
	}

	s := entry.session
	s.Flashes = append([]Flash(nil), entry.session.Flashes...)
	return &s, nil
}

func (m *MemoryStore) Set(_ context.Context, s *Session, ttl time.Duration) error {
	entry := memoryEntry{session: *s}
	entry.session.Flashes = append([]Flash(nil), s.Flashes...)
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.sessions[s.ID] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
