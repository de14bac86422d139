package vfs

import "strings"

// Root is the path of the top level
const Root = "/"

// PathString joins the names from the top level down to id with "/".
// Unknown ids resolve to the root.
func (m *Manager) PathString(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathLocked(id)
}

// pathLocked walks parent links. Caller must hold mu.
func (m *Manager) pathLocked(id string) string {
	var names []string
	seen := make(map[string]struct{})
	for id != "" {
		if _, loop := seen[id]; loop {
			break
		}
		seen[id] = struct{}{}

		it := m.find(id)
		if it == nil {
			break
		}
		names = append(names, it.Name)
		if it.ParentID == nil {
			break
		}
		id = *it.ParentID
	}
	if len(names) == 0 {
		return Root
	}

	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}

// parentPathLocked returns the path of the folder holding it. Caller must hold mu.
func (m *Manager) parentPathLocked(parentID *string) string {
	if parentID == nil {
		return Root
	}
	return m.pathLocked(*parentID)
}

// isWithin reports whether id equals ancestor or sits below it. Caller must hold mu.
func (m *Manager) isWithin(id, ancestor string) bool {
	seen := make(map[string]struct{})
	for id != "" {
		if id == ancestor {
			return true
		}
		if _, loop := seen[id]; loop {
			return false
		}
		seen[id] = struct{}{}

		it := m.find(id)
		if it == nil || it.ParentID == nil {
			return false
		}
		id = *it.ParentID
	}
	return false
}
