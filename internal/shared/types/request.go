package types

import "encoding/json"

// OpenWindowRequest opens a window. Position is either an object or the
// string "center"; omitted means center.
type OpenWindowRequest struct {
	Title    string          `json:"title" binding:"required"`
	AppID    string          `json:"appId"`
	Position json.RawMessage `json:"position,omitempty"`
	Size     *WindowSize     `json:"size,omitempty"`
	Icon     string          `json:"icon,omitempty"`
	Props    Props           `json:"props,omitempty"`
}

// CreateItemRequest creates a file or folder
type CreateItemRequest struct {
	Name     string  `json:"name"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

// UpdateItemRequest renames and/or moves an item. ParentID is empty when
// the field is absent and holds the literal null for a move to the root.
type UpdateItemRequest struct {
	Name     *string         `json:"name,omitempty"`
	ParentID json.RawMessage `json:"parentId,omitempty"`
}

// ContentRequest replaces file content
type ContentRequest struct {
	Content string `json:"content"`
}

// ClipboardRequest names the items for copy/cut
type ClipboardRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// PasteRequest names the paste target; nil pastes at the root
type PasteRequest struct {
	ParentID *string `json:"parentId"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Event   *Event `json:"event,omitempty"`
}
