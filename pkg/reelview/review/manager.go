package review

import (
	"sync"

	"go.uber.org/zap"

	"github.com/reelsmaxx/reelview/pkg/reelview/store"
)

// Manager hands out one shared board per view so concurrent requests
// for the same day see the same optimistic state.
type Manager struct {
	mu       sync.Mutex
	store    store.Store
	disp     *Dispatcher
	logger   *zap.Logger
	pageSize int
	boards   map[string]*Board
}

// NewManager creates a board registry.
func NewManager(s store.Store, d *Dispatcher, logger *zap.Logger, pageSize int) *Manager {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Manager{
		store:    s,
		disp:     d,
		logger:   logger,
		pageSize: pageSize,
		boards:   make(map[string]*Board),
	}
}

// Day returns the board for one date key, creating it on first use.
func (m *Manager) Day(dateKey string) *Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := "day:" + dateKey
	b, ok := m.boards[key]
	if !ok {
		b = NewGroupBoard(m.store, m.disp, m.logger, dateKey, m.pageSize)
		m.boards[key] = b
	}
	return b
}

// Feed returns the newest-first board for an optional status filter.
func (m *Manager) Feed(statusFilter string) *Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := "feed:" + statusFilter
	b, ok := m.boards[key]
	if !ok {
		b = NewFeedBoard(m.store, m.disp, m.logger, statusFilter, m.pageSize)
		m.boards[key] = b
	}
	return b
}

// Find looks an item up by id across all live boards. Used by
// item-scoped operations that arrive without a view key.
func (m *Manager) Find(id string) (*Board, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.boards {
		b.mu.Lock()
		for i := range b.items {
			if b.items[i].ID == id {
				b.mu.Unlock()
				return b, true
			}
		}
		b.mu.Unlock()
	}
	return nil, false
}
