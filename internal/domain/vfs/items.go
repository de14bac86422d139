package vfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// CreateFolder adds an empty folder under parentID (nil for the top level)
func (m *Manager) CreateFolder(name string, parentID *string) types.Item {
	now := m.now()
	folder := &types.Item{
		ID:         m.newID(string(types.ItemFolder)),
		Name:       name,
		Type:       types.ItemFolder,
		ParentID:   cloneParent(parentID),
		CreatedAt:  now,
		ModifiedAt: now,
		Icon:       iconFolder,
	}
	return m.insert("create_folder", folder)
}

// CreateFile adds a file under parentID. Size and mime type are derived from
// content; the icon from the extension of name.
func (m *Manager) CreateFile(name, content string, parentID *string) types.Item {
	size, mime := Measure(content)
	now := m.now()
	file := &types.Item{
		ID:         m.newID(string(types.ItemFile)),
		Name:       name,
		Type:       types.ItemFile,
		ParentID:   cloneParent(parentID),
		Content:    content,
		Size:       size,
		CreatedAt:  now,
		ModifiedAt: now,
		Icon:       IconFor(name),
		MimeType:   mime,
	}
	return m.insert("create_file", file)
}

func (m *Manager) insert(op string, it *types.Item) types.Item {
	m.mu.Lock()
	m.items = append(m.items, it)
	out := it.Clone()
	m.mu.Unlock()

	m.record(op)
	m.publish(types.EventItemCreated, []string{out.ID}, out.Clone())
	return *out
}

// GetItem returns a copy of the item, including soft-deleted ones
func (m *Manager) GetItem(id string) (types.Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if it := m.find(id); it != nil {
		return *it.Clone(), true
	}
	return types.Item{}, false
}

// GetItemsByParent lists the visible items directly under parentID
func (m *Manager) GetItemsByParent(parentID *string) []types.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(it *types.Item) bool {
		return !it.IsDeleted && it.InFolder(parentID)
	})
}

// GetRecycleBinItems lists every soft-deleted item
func (m *Manager) GetRecycleBinItems() []types.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(it *types.Item) bool { return it.IsDeleted })
}

// RenameItem changes the display name. Names are not required to be unique.
func (m *Manager) RenameItem(id, name string) bool {
	return m.update("rename", id, func(it *types.Item) bool {
		it.Name = name
		return true
	})
}

// MoveItem re-parents an item. Moving a folder into itself or one of its
// descendants, or under an unknown parent, is refused.
func (m *Manager) MoveItem(id string, parentID *string) bool {
	return m.update("move", id, func(it *types.Item) bool {
		if !m.canReparent(id, parentID) {
			return false
		}
		it.ParentID = cloneParent(parentID)
		return true
	})
}

// UpdateFileContent replaces the content and sets size to its length
func (m *Manager) UpdateFileContent(id, content string) bool {
	return m.update("update_content", id, func(it *types.Item) bool {
		it.Content = content
		it.Size = int64(len(content))
		return true
	})
}

// RestoreItem takes an item out of the recycle bin. Children that were
// deleted with it stay in the bin.
func (m *Manager) RestoreItem(id string) bool {
	m.mu.Lock()
	it := m.find(id)
	if it == nil || !it.IsDeleted {
		m.mu.Unlock()
		return false
	}
	it.IsDeleted = false
	it.DeletedAt = nil
	out := it.Clone()
	m.mu.Unlock()

	m.record("restore")
	m.publish(types.EventItemRestored, []string{id}, out)
	return true
}

// update applies fn to the item and bumps ModifiedAt when fn reports a change
func (m *Manager) update(op, id string, fn func(*types.Item) bool) bool {
	m.mu.Lock()
	it := m.find(id)
	if it == nil || !fn(it) {
		m.mu.Unlock()
		return false
	}
	it.ModifiedAt = m.now()
	out := it.Clone()
	m.mu.Unlock()

	m.record(op)
	m.publish(types.EventItemUpdated, []string{id}, out)
	return true
}

// canReparent checks a move target. Caller must hold mu.
func (m *Manager) canReparent(id string, parentID *string) bool {
	if parentID == nil {
		return true
	}
	parent := m.find(*parentID)
	if parent == nil || !parent.IsFolder() {
		return false
	}
	return !m.isWithin(*parentID, id)
}

// Search returns visible items whose name contains query, ignoring case
func (m *Manager) Search(query string) []types.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []types.Item{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(it *types.Item) bool {
		return !it.IsDeleted && strings.Contains(strings.ToLower(it.Name), q)
	})
}

// PathMatch pairs an item with its full path
type PathMatch struct {
	Path string     `json:"path"`
	Item types.Item `json:"item"`
}

// Glob matches the full path of every visible item against a doublestar
// pattern such as "/Local Disk (C:)/Windows/**/*.log". Results are sorted
// by path.
func (m *Manager) Glob(pattern string) ([]PathMatch, error) {
	if !strings.HasPrefix(pattern, Root) {
		pattern = Root + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := []PathMatch{}
	for _, it := range m.items {
		if it.IsDeleted {
			continue
		}
		p := m.pathLocked(it.ID)
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", p, err)
		}
		if ok {
			matches = append(matches, PathMatch{Path: p, Item: *it.Clone()})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Path < matches[j].Path })
	return matches, nil
}

func cloneParent(parentID *string) *string {
	if parentID == nil {
		return nil
	}
	p := *parentID
	return &p
}
