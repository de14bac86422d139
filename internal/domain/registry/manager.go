package registry

import (
	"sync"
	"time"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/events"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// UninstallReason is recorded in the uninstall log
const UninstallReason = "Uninstalled by user"

// Manager holds the installed apps, uninstall log and pinned apps of a desktop
type Manager struct {
	mu        sync.RWMutex
	catalog   *Catalog
	installed []types.App        // Protected by mu
	deleted   []types.DeletedApp // Protected by mu, append only
	pinned    []types.PinnedApp  // Protected by mu
	events    events.Publisher
	metrics   *monitoring.Metrics
	now       func() time.Time
}

// NewManager creates a registry with every catalog app installed
func NewManager(catalog *Catalog, publisher events.Publisher) *Manager {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Manager{
		catalog:   catalog,
		installed: catalog.Defaults(),
		events:    publisher,
		now:       time.Now,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Catalog returns the catalog the registry was built from
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// Get returns an installed app
func (m *Manager) Get(id string) (types.App, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(id); i >= 0 {
		return m.installed[i], true
	}
	return types.App{}, false
}

// IsInstalled reports whether id is installed
func (m *Manager) IsInstalled(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index(id) >= 0
}

// List returns the installed apps in install order
func (m *Manager) List() []types.App {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.App(nil), m.installed...)
}

// Component returns the renderable component of an installed app
func (m *Manager) Component(id string) (string, bool) {
	app, ok := m.Get(id)
	if !ok || !m.catalog.HasComponent(app.ComponentID) {
		return "", false
	}
	return app.ComponentID, true
}

// Install adds app. Installing an id twice is a no-op returning false.
func (m *Manager) Install(app types.App) bool {
	if app.ComponentID == "" {
		app.ComponentID = app.ID
	}

	m.mu.Lock()
	if m.index(app.ID) >= 0 {
		m.mu.Unlock()
		return false
	}
	m.installed = append(m.installed, app)
	m.mu.Unlock()

	m.record("install")
	m.events.Publish(types.Event{Kind: types.EventAppInstalled, IDs: []string{app.ID}})
	return true
}

// Uninstall removes a user app and records it in the uninstall log.
// System apps and unknown ids are refused.
func (m *Manager) Uninstall(id string) bool {
	m.mu.Lock()
	i := m.index(id)
	if i < 0 || m.installed[i].IsSystemApp {
		m.mu.Unlock()
		return false
	}
	app := m.installed[i]
	m.installed = append(m.installed[:i:i], m.installed[i+1:]...)
	m.deleted = append(m.deleted, types.DeletedApp{App: app, DeletedAt: m.now(), Reason: UninstallReason})
	m.mu.Unlock()

	m.record("uninstall")
	m.events.Publish(types.Event{Kind: types.EventAppRemoved, IDs: []string{id}})
	return true
}

// ResetToDefaults reinstalls the catalog apps and drops user installs
func (m *Manager) ResetToDefaults() {
	m.mu.Lock()
	m.installed = m.catalog.Defaults()
	m.mu.Unlock()

	m.record("reset")
	m.events.Publish(types.Event{Kind: types.EventAppsReset})
}

// Load replaces the installed list with a saved one. The catalog's system
// apps are merged back in front, a saved copy of a system app winning over
// the catalog entry. A nil list installs the defaults.
func (m *Manager) Load(saved []types.App) {
	var apps []types.App
	if saved == nil {
		apps = m.catalog.Defaults()
	} else {
		savedSystem := make(map[string]types.App)
		for _, app := range saved {
			if app.IsSystemApp {
				savedSystem[app.ID] = app
			}
		}
		for _, sys := range m.catalog.SystemApps() {
			if app, ok := savedSystem[sys.ID]; ok {
				sys = app
			}
			apps = append(apps, sys)
		}
		for _, app := range saved {
			if !app.IsSystemApp {
				apps = append(apps, app)
			}
		}
	}

	m.mu.Lock()
	m.installed = apps
	m.mu.Unlock()
}

// LoadDeleted replaces the uninstall log
func (m *Manager) LoadDeleted(log []types.DeletedApp) {
	m.mu.Lock()
	m.deleted = append([]types.DeletedApp(nil), log...)
	m.mu.Unlock()
}

// DeletedApps returns the uninstall log, oldest first
func (m *Manager) DeletedApps() []types.DeletedApp {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.DeletedApp(nil), m.deleted...)
}

// Stats returns registry statistics
func (m *Manager) Stats() types.RegistryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.RegistryStats{
		InstalledApps: len(m.installed),
		PinnedApps:    len(m.pinned),
		DeletedApps:   len(m.deleted),
	}
	for _, app := range m.installed {
		if app.IsSystemApp {
			stats.SystemApps++
		}
	}
	return stats
}

func (m *Manager) index(id string) int {
	for i, app := range m.installed {
		if app.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) record(op string) {
	if m.metrics != nil {
		m.metrics.RecordAppChange(op)
	}
}
