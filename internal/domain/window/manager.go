package window

import (
	"sync"
	"time"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/events"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/id"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Defaults used when the caller leaves geometry unset
const (
	DefaultWidth          = 800
	DefaultHeight         = 600
	DefaultTaskbarHeight  = 48
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// Options configures a Manager
type Options struct {
	Viewport      types.WindowSize
	TaskbarHeight int
}

// DefaultOptions returns a 1920x1080 viewport with a 48px taskbar
func DefaultOptions() Options {
	return Options{
		Viewport:      types.WindowSize{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		TaskbarHeight: DefaultTaskbarHeight,
	}
}

// OpenConfig describes a window to open. A nil Position centers the window.
type OpenConfig struct {
	Title    string
	AppID    string
	Position *types.WindowPosition
	Size     *types.WindowSize
	Icon     string
	Props    types.Props
}

// Manager owns the ordered collection of open windows
type Manager struct {
	mu       sync.RWMutex
	windows  []*types.Window // Protected by mu, insertion order
	viewport types.WindowSize
	taskbar  int
	events   events.Publisher
	metrics  *monitoring.Metrics
	newID    func(appID string) string
}

// NewManager creates a new window manager
func NewManager(opts Options, publisher events.Publisher) *Manager {
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = DefaultOptions().Viewport
	}
	if opts.TaskbarHeight < 0 {
		opts.TaskbarHeight = DefaultTaskbarHeight
	}
	if publisher == nil {
		publisher = events.Discard
	}
	return &Manager{
		viewport: opts.Viewport,
		taskbar:  opts.TaskbarHeight,
		events:   publisher,
		newID:    id.NewWindowID,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Center returns the top-left position that centers size inside viewport,
// leaving room for the taskbar strip at the bottom. Never negative.
func Center(viewport, size types.WindowSize, taskbar int) types.WindowPosition {
	return types.WindowPosition{
		X: max(0, (viewport.Width-size.Width)/2),
		Y: max(0, (viewport.Height-size.Height-taskbar)/2),
	}
}

// Open creates a window, makes it active and deactivates all others
func (m *Manager) Open(cfg OpenConfig) *types.Window {
	appID := cfg.AppID
	if appID == "" {
		appID = id.AppSlug(cfg.Title)
	}

	size := types.WindowSize{Width: DefaultWidth, Height: DefaultHeight}
	if cfg.Size != nil {
		size = *cfg.Size
	}

	m.mu.Lock()
	pos := Center(m.viewport, size, m.taskbar)
	if cfg.Position != nil {
		pos = *cfg.Position
	}

	win := &types.Window{
		ID:       m.newID(appID),
		Title:    cfg.Title,
		AppID:    appID,
		Icon:     cfg.Icon,
		Position: pos,
		Size:     size,
		IsActive: true,
		Props:    cfg.Props.Clone(),
		OpenedAt: time.Now(),
	}

	for _, w := range m.windows {
		w.IsActive = false
	}
	m.windows = append(m.windows, win)
	out := win.Clone()
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.WindowOpened()
	}
	m.events.Publish(types.Event{Kind: types.EventWindowOpened, IDs: []string{out.ID}, Window: out.Clone()})
	return out
}

// Close removes a window unconditionally
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	i := m.index(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.windows = append(m.windows[:i], m.windows[i+1:]...)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.WindowsClosed(1)
	}
	m.events.Publish(types.Event{Kind: types.EventWindowClosed, IDs: []string{id}})
	return true
}

// CloseAllFor closes every window hosting appID and returns how many closed
func (m *Manager) CloseAllFor(appID string) int {
	m.mu.Lock()
	var closed []string
	kept := m.windows[:0]
	for _, w := range m.windows {
		if w.AppID == appID {
			closed = append(closed, w.ID)
			continue
		}
		kept = append(kept, w)
	}
	// Clear the tail so dropped windows can be collected
	for i := len(kept); i < len(m.windows); i++ {
		m.windows[i] = nil
	}
	m.windows = kept
	m.mu.Unlock()

	if len(closed) == 0 {
		return 0
	}
	if m.metrics != nil {
		m.metrics.WindowsClosed(len(closed))
	}
	m.events.Publish(types.Event{Kind: types.EventWindowClosed, IDs: closed})
	return len(closed)
}

// Minimize hides a window and clears its active flag. No other window is
// promoted.
func (m *Manager) Minimize(id string) bool {
	return m.update(id, func(w *types.Window) {
		w.IsMinimized = true
		w.IsActive = false
	})
}

// Restore un-minimizes a window and makes it the only active one
func (m *Manager) Restore(id string) bool {
	return m.activate(id, func(w *types.Window) {
		w.IsMinimized = false
	})
}

// Maximize toggles the maximized flag. Position and size are left as they
// are so toggling back reproduces the prior geometry.
func (m *Manager) Maximize(id string) bool {
	return m.update(id, func(w *types.Window) {
		w.IsMaximized = !w.IsMaximized
	})
}

// Focus makes a window the only active one without touching its minimized flag
func (m *Manager) Focus(id string) bool {
	return m.activate(id, nil)
}

// UpdatePosition moves a window
func (m *Manager) UpdatePosition(id string, pos types.WindowPosition) bool {
	return m.update(id, func(w *types.Window) {
		w.Position = pos
	})
}

// UpdateSize resizes a window
func (m *Manager) UpdateSize(id string, size types.WindowSize) bool {
	return m.update(id, func(w *types.Window) {
		w.Size = size
	})
}

// Get retrieves a window by ID
func (m *Manager) Get(id string) (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return nil, false
	}
	return m.windows[i].Clone(), true
}

// List returns all windows in the order they were opened
func (m *Manager) List() []*types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w.Clone())
	}
	return out
}

// ListFor returns the windows hosting appID
func (m *Manager) ListFor(appID string) []*types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*types.Window
	for _, w := range m.windows {
		if w.AppID == appID {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Active returns the active window, if any
func (m *Manager) Active() (*types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, w := range m.windows {
		if w.IsActive {
			return w.Clone(), true
		}
	}
	return nil, false
}

// SetViewport records the client's viewport used for centering
func (m *Manager) SetViewport(size types.WindowSize) bool {
	if size.Width <= 0 || size.Height <= 0 {
		return false
	}
	m.mu.Lock()
	m.viewport = size
	m.mu.Unlock()
	return true
}

// Viewport returns the current viewport
func (m *Manager) Viewport() types.WindowSize {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport
}

// Stats returns manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.WindowStats{TotalWindows: len(m.windows)}
	for _, w := range m.windows {
		if w.IsMinimized {
			stats.MinimizedWindows++
		}
		if w.IsMaximized {
			stats.MaximizedWindows++
		}
		if w.IsActive {
			activeID := w.ID
			stats.ActiveWindowID = &activeID
		}
	}
	return stats
}

// update applies fn to one window (internal)
func (m *Manager) update(id string, fn func(w *types.Window)) bool {
	m.mu.Lock()
	i := m.index(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	fn(m.windows[i])
	out := m.windows[i].Clone()
	m.mu.Unlock()

	m.events.Publish(types.Event{Kind: types.EventWindowUpdated, IDs: []string{id}, Window: out})
	return true
}

// activate marks one window active and every other inactive (internal)
func (m *Manager) activate(id string, fn func(w *types.Window)) bool {
	m.mu.Lock()
	i := m.index(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	for _, w := range m.windows {
		w.IsActive = false
	}
	target := m.windows[i]
	if fn != nil {
		fn(target)
	}
	target.IsActive = true
	out := target.Clone()
	m.mu.Unlock()

	m.events.Publish(types.Event{Kind: types.EventWindowUpdated, IDs: []string{id}, Window: out})
	return true
}

// index finds a window by id (must hold lock)
func (m *Manager) index(id string) int {
	for i, w := range m.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}
