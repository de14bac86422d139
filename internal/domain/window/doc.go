// Package window implements the desktop window manager.
//
// The manager keeps open windows in the order they were opened and enforces
// that at most one window is active at a time. Opening, focusing or
// restoring a window activates it and deactivates the rest; minimizing
// deactivates without promoting another. Maximize only toggles a flag:
// full-viewport layout is the client's concern, and the stored position and
// size are left untouched so toggling back is lossless.
//
// Windows are ephemeral. Nothing here is persisted.
package window
