package session

import (
	"context"
	"sync"
	"time"

	"gatherly/models"
)

// MemoryRepository is an in-process store for tests.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session models.Session
	expires time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]memoryEntry)}
}

func (m *MemoryRepository) Get(_ context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok || time.Now().After(entry.expires) {
		delete(m.entries, token)
		return nil, ErrNotFound
	}
	s := entry.session
	return &s, nil
}

func (m *MemoryRepository) Set(_ context.Context, token string, s *models.Session, tier Tier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{session: *s, expires: time.Now().Add(tier.TTL())}
	return nil
}

func (m *MemoryRepository) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, token)
	return nil
}
