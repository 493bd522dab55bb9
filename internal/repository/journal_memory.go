package repository

import (
	"context"
	"sync"

	"resty_chess/internal/domain/journal"
)

// MemoryJournal is used when no Redis is configured. It keeps at most limit
// entries (all of them when limit <= 0).
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []journal.Entry
	limit   int
}

func NewMemoryJournal(limit int) *MemoryJournal {
	return &MemoryJournal{limit: limit}
}

func (m *MemoryJournal) Append(ctx context.Context, entry journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if m.limit > 0 && len(m.entries) > m.limit {
		m.entries = append([]journal.Entry(nil), m.entries[len(m.entries)-m.limit:]...)
	}
	return nil
}

func (m *MemoryJournal) List(ctx context.Context, limit int) ([]journal.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.entries
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return append([]journal.Entry{}, items...), nil
}
