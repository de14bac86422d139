package vfs

import (
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// CopyPrefix is prepended to the name of every pasted copy
const CopyPrefix = "Copy of "

// CopyItems snapshots the named items into the clipboard for copying.
// Unknown ids are skipped; the number of items buffered is returned.
func (m *Manager) CopyItems(ids []string) int {
	return m.stage(ids, types.ClipboardCopy)
}

// CutItems snapshots the named items into the clipboard for moving
func (m *Manager) CutItems(ids []string) int {
	return m.stage(ids, types.ClipboardCut)
}

func (m *Manager) stage(ids []string, op types.ClipboardOp) int {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	m.mu.Lock()
	snap := m.collect(func(it *types.Item) bool {
		_, ok := want[it.ID]
		return ok
	})
	m.clipboard = types.Clipboard{Items: snap, Operation: op}
	m.mu.Unlock()

	staged := make([]string, 0, len(snap))
	for _, it := range snap {
		staged = append(staged, it.ID)
	}
	m.publish(types.EventClipboardSet, staged, nil)
	return len(snap)
}

// Clipboard returns a copy of the clipboard buffer
func (m *Manager) Clipboard() types.Clipboard {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneClipboard(m.clipboard)
}

// PasteItems applies the clipboard to parentID and returns the resulting
// items. A copy buffer creates fresh items named "Copy of <name>" and stays
// in place for further pastes. A cut buffer re-parents the originals, keeping
// their ids, and is cleared. Folders cannot be cut into themselves.
func (m *Manager) PasteItems(parentID *string) []types.Item {
	m.mu.Lock()
	if len(m.clipboard.Items) == 0 {
		m.mu.Unlock()
		return []types.Item{}
	}
	if parentID != nil {
		if parent := m.find(*parentID); parent == nil || !parent.IsFolder() {
			m.mu.Unlock()
			return []types.Item{}
		}
	}

	now := m.now()
	var pasted []types.Item
	var kind types.EventKind
	op := m.clipboard.Operation

	switch op {
	case types.ClipboardCopy:
		kind = types.EventItemCreated
		for _, src := range m.clipboard.Items {
			dup := src.Clone()
			dup.ID = m.newID(string(src.Type))
			dup.ParentID = cloneParent(parentID)
			dup.Name = CopyPrefix + src.Name
			dup.CreatedAt = now
			dup.ModifiedAt = now
			dup.IsDeleted = false
			dup.DeletedAt = nil
			m.items = append(m.items, dup)
			pasted = append(pasted, *dup.Clone())
		}
	case types.ClipboardCut:
		kind = types.EventItemUpdated
		for _, src := range m.clipboard.Items {
			it := m.find(src.ID)
			if it == nil || !m.canReparent(it.ID, parentID) {
				continue
			}
			it.ParentID = cloneParent(parentID)
			it.ModifiedAt = now
			pasted = append(pasted, *it.Clone())
		}
		m.clipboard = types.Clipboard{}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(pasted))
	for _, it := range pasted {
		ids = append(ids, it.ID)
	}
	if op == types.ClipboardCut {
		m.publish(types.EventClipboardSet, nil, nil)
	}
	if len(pasted) == 0 {
		return []types.Item{}
	}
	m.record("paste_" + string(op))
	m.publish(kind, ids, nil)
	return pasted
}

func cloneClipboard(c types.Clipboard) types.Clipboard {
	out := types.Clipboard{Operation: c.Operation, Items: make([]types.Item, 0, len(c.Items))}
	for i := range c.Items {
		out.Items = append(out.Items, *c.Items[i].Clone())
	}
	return out
}
