package registry

import (
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Pin adds a taskbar shortcut. Pinning an id twice is a no-op returning false.
func (m *Manager) Pin(app types.PinnedApp) bool {
	m.mu.Lock()
	if m.pinIndex(app.ID) >= 0 {
		m.mu.Unlock()
		return false
	}
	m.pinned = append(m.pinned, app)
	m.mu.Unlock()

	m.pinsChanged(app.ID)
	return true
}

// Unpin removes a taskbar shortcut
func (m *Manager) Unpin(id string) bool {
	m.mu.Lock()
	i := m.pinIndex(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.pinned = append(m.pinned[:i:i], m.pinned[i+1:]...)
	m.mu.Unlock()

	m.pinsChanged(id)
	return true
}

// IsPinned reports whether id has a taskbar shortcut
func (m *Manager) IsPinned(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pinIndex(id) >= 0
}

// Pinned returns the shortcuts in taskbar order
func (m *Manager) Pinned() []types.PinnedApp {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.PinnedApp{}, m.pinned...)
}

// SetPinned replaces the shortcuts, dropping duplicate ids
func (m *Manager) SetPinned(pins []types.PinnedApp) {
	m.mu.Lock()
	m.pinned = dedupePins(pins)
	m.mu.Unlock()

	m.pinsChanged()
}

// LoadPinned replaces the shortcuts without publishing
func (m *Manager) LoadPinned(pins []types.PinnedApp) {
	m.mu.Lock()
	m.pinned = dedupePins(pins)
	m.mu.Unlock()
}

func (m *Manager) pinIndex(id string) int {
	for i, p := range m.pinned {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) pinsChanged(ids ...string) {
	m.events.Publish(types.Event{Kind: types.EventPinsChanged, IDs: ids})
}

func dedupePins(pins []types.PinnedApp) []types.PinnedApp {
	out := make([]types.PinnedApp, 0, len(pins))
	seen := make(map[string]struct{}, len(pins))
	for _, p := range pins {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
