package registry

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

//go:embed apps.toml
var catalogTOML []byte

// Catalog lists the apps a desktop starts with and the components the
// client can render
type Catalog struct {
	Components []string    `toml:"components"`
	Apps       []types.App `toml:"apps"`

	components map[string]struct{}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// DefaultCatalog returns the embedded catalog. It is parsed once.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseCatalog(catalogTOML)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultCatalog.clone(), nil
}

// ParseCatalog decodes a TOML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Apps))
	for i, app := range c.Apps {
		if app.ID == "" {
			return fmt.Errorf("app %d: missing id", i)
		}
		if _, dup := seen[app.ID]; dup {
			return fmt.Errorf("app %q: duplicate id", app.ID)
		}
		seen[app.ID] = struct{}{}
	}
	return nil
}

func (c *Catalog) index() {
	c.components = make(map[string]struct{}, len(c.Components))
	for _, comp := range c.Components {
		c.components[comp] = struct{}{}
	}
	for i := range c.Apps {
		if c.Apps[i].ComponentID == "" {
			c.Apps[i].ComponentID = c.Apps[i].ID
		}
	}
}

// HasComponent reports whether the client can render component
func (c *Catalog) HasComponent(component string) bool {
	_, ok := c.components[component]
	return ok
}

// Find returns the catalog entry for id
func (c *Catalog) Find(id string) (types.App, bool) {
	for _, app := range c.Apps {
		if app.ID == id {
			return app, true
		}
	}
	return types.App{}, false
}

// SystemApps returns the apps that can never be uninstalled
func (c *Catalog) SystemApps() []types.App {
	var out []types.App
	for _, app := range c.Apps {
		if app.IsSystemApp {
			out = append(out, app)
		}
	}
	return out
}

// Defaults returns every catalog app, system apps first
func (c *Catalog) Defaults() []types.App {
	out := c.SystemApps()
	for _, app := range c.Apps {
		if !app.IsSystemApp {
			out = append(out, app)
		}
	}
	return out
}

// Merge adds the apps and components of other. Entries of other replace
// entries with the same id.
func (c *Catalog) Merge(other *Catalog) {
	for _, app := range other.Apps {
		replaced := false
		for i := range c.Apps {
			if c.Apps[i].ID == app.ID {
				c.Apps[i] = app
				replaced = true
				break
			}
		}
		if !replaced {
			c.Apps = append(c.Apps, app)
		}
	}
	for _, comp := range other.Components {
		if !c.HasComponent(comp) {
			c.Components = append(c.Components, comp)
		}
	}
	c.index()
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		Components: append([]string(nil), c.Components...),
		Apps:       append([]types.App(nil), c.Apps...),
	}
	out.index()
	return out
}
