// Package registry tracks which applications are installed on a desktop.
//
// Components:
//   - Catalog: the known apps and renderable components, parsed from the
//     embedded apps.toml
//   - Seeder: merges extra catalog files from a directory on startup
//   - Manager: installed apps, the uninstall log and pinned apps
//
// System apps are always present. Loading a saved install list merges the
// catalog's system apps back in, keeping any saved copy of them.
//
// Example Usage:
//
//	catalog, err := registry.DefaultCatalog()
//	manager := registry.NewManager(catalog, bus)
//	manager.Install(app)
//	ok := manager.Uninstall("snake")
package registry
