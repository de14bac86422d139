package types

import "time"

// ItemType distinguishes files from folders
type ItemType string

const (
	ItemFile   ItemType = "file"
	ItemFolder ItemType = "folder"
)

// Item is a node in the virtual file system.
// ParentID is nil for items at the root level.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       ItemType   `json:"type"`
	ParentID   *string    `json:"parentId"`
	Content    string     `json:"content,omitempty"`
	Size       int64      `json:"size,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt time.Time  `json:"modifiedAt"`
	Icon       string     `json:"icon,omitempty"`
	IsDeleted  bool       `json:"isDeleted,omitempty"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
	MimeType   string     `json:"mimeType,omitempty"`
}

// IsFolder reports whether the item is a folder
func (i *Item) IsFolder() bool {
	return i.Type == ItemFolder
}

// InFolder reports whether the item sits directly under parentID
func (i *Item) InFolder(parentID *string) bool {
	if i.ParentID == nil || parentID == nil {
		return i.ParentID == nil && parentID == nil
	}
	return *i.ParentID == *parentID
}

// Clone returns a copy that shares no pointers with the original
func (i *Item) Clone() *Item {
	c := *i
	if i.ParentID != nil {
		p := *i.ParentID
		c.ParentID = &p
	}
	if i.DeletedAt != nil {
		d := *i.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// Parent returns a parent reference for id; "" means root
func Parent(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// ClipboardOp is the pending clipboard operation
type ClipboardOp string

const (
	ClipboardNone ClipboardOp = ""
	ClipboardCopy ClipboardOp = "copy"
	ClipboardCut  ClipboardOp = "cut"
)

// Clipboard holds item snapshots taken at copy/cut time
type Clipboard struct {
	Items     []Item      `json:"items"`
	Operation ClipboardOp `json:"operation"`
}

// ItemStats contains file system statistics
type ItemStats struct {
	TotalItems   int   `json:"total_items"`
	Files        int   `json:"files"`
	Folders      int   `json:"folders"`
	DeletedItems int   `json:"deleted_items"`
	TotalBytes   int64 `json:"total_bytes"`
}
