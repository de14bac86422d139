package types

import (
	"strings"
	"time"
)

// EventKind names a state change
type EventKind string

const (
	EventWindowOpened  EventKind = "window.opened"
	EventWindowClosed  EventKind = "window.closed"
	EventWindowUpdated EventKind = "window.updated"

	EventItemCreated  EventKind = "item.created"
	EventItemUpdated  EventKind = "item.updated"
	EventItemDeleted  EventKind = "item.deleted"
	EventItemRestored EventKind = "item.restored"
	EventItemRemoved  EventKind = "item.removed"
	EventTreeLoaded   EventKind = "item.loaded"
	EventClipboardSet EventKind = "clipboard.changed"
	EventAppInstalled EventKind = "app.installed"
	EventAppRemoved   EventKind = "app.uninstalled"
	EventAppsReset    EventKind = "app.reset"
	EventPinsChanged  EventKind = "pins.changed"
)

// Topic returns the part of the kind before the dot ("window", "item", ...)
func (k EventKind) Topic() string {
	topic, _, _ := strings.Cut(string(k), ".")
	return topic
}

// Event is published by the domain managers after each mutation
type Event struct {
	Kind      EventKind `json:"type"`
	IDs       []string  `json:"ids,omitempty"`
	Item      *Item     `json:"item,omitempty"`
	Window    *Window   `json:"window,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
