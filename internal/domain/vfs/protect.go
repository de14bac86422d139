package vfs

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Dialog titles and messages shown by the file system
const (
	TitleAccessDenied   = "Access Denied"
	TitleCannotOpen     = "Cannot Open File"
	TitleDeleteItem     = "Delete Item"
	TitlePermanent      = "Permanently Delete"
	TitleEmptyRecycle   = "Empty Recycle Bin"
	msgSystemFolder     = "You can't delete this system folder."
	msgSystemFile       = `Cannot delete "%s". This is a protected system file.`
	msgCannotOpen       = `Cannot open "%s". This is a system file and cannot be opened directly for security reasons.`
	msgConfirmDelete    = `Are you sure you want to delete "%s"? This will move it to the Recycle Bin.`
	msgConfirmPermanent = `Are you sure you want to permanently delete "%s"? This action cannot be undone.`
	msgConfirmEmpty     = "Are you sure you want to permanently delete all %d items in the Recycle Bin? This action cannot be undone."
)

var systemFolders = map[string]struct{}{
	"c-drive":           {},
	"d-drive":           {},
	"program-files":     {},
	"program-files-x86": {},
	"users":             {},
	"windows":           {},
	"system32":          {},
	"drivers-folder":    {},
	"config-folder":     {},
	"fonts-folder":      {},
	"logs-folder":       {},
	"temp-folder":       {},
}

var (
	systemExtensions  = []string{".exe", ".dll", ".sys", ".drv"}
	systemPathMarkers = []string{"windows", "system32", "program-files", "program-files-x86"}
)

// IsSystemFolder reports whether id is one of the fixed system folders
func IsSystemFolder(id string) bool {
	_, ok := systemFolders[id]
	return ok
}

// IsProtected reports whether id may not be deleted
func (m *Manager) IsProtected(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.denial(id) != ""
}

// CanOpen reports whether the item exists and is not a protected system file
func (m *Manager) CanOpen(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it := m.find(id)
	return it != nil && !m.isSystemFile(it)
}

// CheckOpen gates opening an item. Protected system files raise the
// "Cannot Open File" alert and are denied.
func (m *Manager) CheckOpen(ctx context.Context, dlg dialog.Alerter, id string) (types.Outcome, error) {
	m.mu.RLock()
	it := m.find(id)
	var name string
	var blocked bool
	if it != nil {
		name, blocked = it.Name, m.isSystemFile(it)
	}
	m.mu.RUnlock()

	switch {
	case it == nil:
		return types.OutcomeNotFound, nil
	case !blocked:
		return types.OutcomeApplied, nil
	}
	if err := dlg.Alert(ctx, TitleCannotOpen, fmt.Sprintf(msgCannotOpen, name)); err != nil {
		return "", fmt.Errorf("alert: %w", err)
	}
	return m.outcome("open", types.OutcomeDenied), nil
}

// denial returns the message explaining why id is protected, or "".
// Caller must hold mu.
func (m *Manager) denial(id string) string {
	if IsSystemFolder(id) {
		return msgSystemFolder
	}
	if it := m.find(id); it != nil && m.isSystemFile(it) {
		return fmt.Sprintf(msgSystemFile, it.Name)
	}
	return ""
}

// isSystemFile matches executables and libraries whose parent path names a
// system location. The markers are compared against display names, so
// "Program Files" never matches "program-files". Caller must hold mu.
func (m *Manager) isSystemFile(it *types.Item) bool {
	name := strings.ToLower(it.Name)
	hasExt := false
	for _, ext := range systemExtensions {
		if strings.HasSuffix(name, ext) {
			hasExt = true
			break
		}
	}
	if !hasExt {
		return false
	}

	parentPath := strings.ToLower(m.parentPathLocked(it.ParentID))
	for _, marker := range systemPathMarkers {
		if strings.Contains(parentPath, marker) {
			return true
		}
	}
	return false
}
