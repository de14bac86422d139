package desktop

import (
	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/launch"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/registry"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/vfs"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/window"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/events"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// PropResolved is set to "false" on windows whose app could not be resolved
const PropResolved = "resolved"

// Options configures a Desktop
type Options struct {
	Window  window.Options
	Catalog *registry.Catalog
	Metrics *monitoring.Metrics
	Logger  *zap.Logger
}

// Desktop is the shell state of one profile
type Desktop struct {
	Profile string
	Events  *events.Bus
	Windows *window.Manager
	Files   *vfs.Manager
	Apps    *registry.Manager
	Bridge  *launch.Bridge

	logger *zap.Logger
}

// New creates a desktop with an empty file system and the catalog's apps
func New(profile string, opts Options) *Desktop {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bus := events.NewBus()
	apps := registry.NewManager(opts.Catalog, bus).WithMetrics(opts.Metrics)
	return &Desktop{
		Profile: profile,
		Events:  bus,
		Windows: window.NewManager(opts.Window, bus).WithMetrics(opts.Metrics),
		Files:   vfs.NewManager(bus).WithMetrics(opts.Metrics),
		Apps:    apps,
		Bridge:  launch.NewBridge(apps),
		logger:  logger.Named("desktop").With(zap.String("profile", profile)),
	}
}

// Launch opens a window for appID. A window opens even when the app cannot
// be resolved; it then carries resolved=false so the client can render an
// error placeholder.
func (d *Desktop) Launch(appID string, props types.Props) *types.Window {
	target, ok := d.Bridge.Resolve(appID)
	if !ok {
		d.logger.Debug("App not resolved", zap.String("app_id", appID))
	}
	if props != nil {
		target.Props = props
	}
	return d.open(target)
}

func (d *Desktop) open(target launch.Target) *types.Window {
	props := target.Props.Clone()
	if !target.Resolved {
		if props == nil {
			props = types.Props{}
		}
		props[PropResolved] = "false"
	}
	return d.Windows.Open(window.OpenConfig{
		Title:    target.Title,
		AppID:    target.AppID,
		Position: target.Position,
		Size:     target.Size,
		Icon:     target.Icon,
		Props:    props,
	})
}
