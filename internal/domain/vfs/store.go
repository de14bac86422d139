package vfs

import (
	"sync"
	"time"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/events"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/id"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Manager owns the item tree and the clipboard buffer of one desktop
type Manager struct {
	mu        sync.RWMutex
	items     []*types.Item // Protected by mu, insertion order
	clipboard types.Clipboard
	events    events.Publisher
	metrics   *monitoring.Metrics
	newID     func(kind string) string
	now       func() time.Time
}

// NewManager creates an empty file system. Call Seed or Load to populate it.
func NewManager(publisher events.Publisher) *Manager {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Manager{
		events: publisher,
		newID:  id.NewItemID,
		now:    time.Now,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Load replaces the whole tree. The clipboard is cleared.
func (m *Manager) Load(items []types.Item) {
	m.mu.Lock()
	m.items = make([]*types.Item, 0, len(items))
	for i := range items {
		m.items = append(m.items, items[i].Clone())
	}
	m.clipboard = types.Clipboard{}
	n := len(m.items)
	m.mu.Unlock()

	ids := make([]string, 0, n)
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	m.publish(types.EventTreeLoaded, ids, nil)
}

// Items returns a copy of every item, soft-deleted ones included
func (m *Manager) Items() []types.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(*types.Item) bool { return true })
}

// Visible returns a copy of every item that is not in the recycle bin
func (m *Manager) Visible() []types.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(it *types.Item) bool { return !it.IsDeleted })
}

// Len returns the number of items, soft-deleted ones included
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Stats returns file system statistics
func (m *Manager) Stats() types.ItemStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats types.ItemStats
	for _, it := range m.items {
		stats.TotalItems++
		if it.IsDeleted {
			stats.DeletedItems++
		}
		if it.IsFolder() {
			stats.Folders++
			continue
		}
		stats.Files++
		stats.TotalBytes += it.Size
	}
	return stats
}

// find returns the item with id. Caller must hold mu.
func (m *Manager) find(id string) *types.Item {
	if i := m.index(id); i >= 0 {
		return m.items[i]
	}
	return nil
}

func (m *Manager) index(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// collect copies the items matching keep. Caller must hold mu.
func (m *Manager) collect(keep func(*types.Item) bool) []types.Item {
	out := make([]types.Item, 0, len(m.items))
	for _, it := range m.items {
		if keep(it) {
			out = append(out, *it.Clone())
		}
	}
	return out
}

// removeWhere drops matching items and returns their ids. Caller must hold mu.
func (m *Manager) removeWhere(match func(*types.Item) bool) []string {
	var removed []string
	kept := m.items[:0]
	for _, it := range m.items {
		if match(it) {
			removed = append(removed, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(m.items); i++ {
		m.items[i] = nil
	}
	m.items = kept
	return removed
}

func (m *Manager) publish(kind types.EventKind, ids []string, item *types.Item) {
	m.events.Publish(types.Event{Kind: kind, IDs: ids, Item: item})
}

func (m *Manager) record(op string) {
	if m.metrics != nil {
		m.metrics.RecordItemOp(op)
	}
}

func (m *Manager) outcome(op string, o types.Outcome) types.Outcome {
	if m.metrics != nil {
		m.metrics.RecordOutcome(op, string(o))
	}
	return o
}
