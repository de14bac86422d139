// Package desktop composes one user's shell: the window manager, the file
// system, the app registry and the launch bridge, all sharing one event bus.
//
// The cross-cutting flows live here: opening an item in the right app,
// installing and uninstalling apps with their Program Files folders, and
// the prompt-driven create and rename flows.
package desktop
