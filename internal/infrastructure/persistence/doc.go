// Package persistence writes desktop state to a key-value store.
//
// A Binder subscribes to a desktop's event bus and, per store key, debounces
// writes of the latest state. Writes that hit the storage quota are dropped
// and counted; the in-memory state is never rolled back.
//
// Stored keys:
//   - fileSystem: every visible item (items in the recycle bin are not saved)
//   - webos-files: append log of created files
//   - webos-installed-apps: installed apps
//   - deletedApps: the uninstall log
//   - pinnedApps: taskbar shortcuts
package persistence
