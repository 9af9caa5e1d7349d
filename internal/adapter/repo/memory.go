package repo

import (
	"context"
	"sync"

	"github.com/flashfund/server/internal/domain"
)

// MemoryJournal is an in-process domain.EventJournal. It backs the server
// when no database is configured, and the tests.
type MemoryJournal struct {
	mu     sync.Mutex
	events []domain.Event
}

// NewMemoryJournal creates an empty journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Append stores the event at the end of the journal.
func (m *MemoryJournal) Append(_ context.Context, evt domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

// List returns a copy of all events in append order.
func (m *MemoryJournal) List(_ context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

var _ domain.EventJournal = (*MemoryJournal)(nil)
