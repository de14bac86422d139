package vfs

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Install roots for app folders
const (
	ProgramFiles    = "program-files"
	ProgramFilesX86 = "program-files-x86"
)

const configSize = 256

var x86Apps = map[string]struct{}{
	"calculator":     {},
	"checkers":       {},
	"paint":          {},
	"text-editor":    {},
	"voice-recorder": {},
}

// AppFolderID returns the id of the folder created for appID
func AppFolderID(appID string) string {
	return appID + "-app-folder"
}

// IsX86App reports whether appID installs under Program Files (x86)
func IsX86App(appID string) bool {
	_, ok := x86Apps[appID]
	return ok
}

// CreateAppFolder materializes the install folder of an app: an executable,
// a library and a config file under Program Files or Program Files (x86).
// An existing folder for the same app is replaced.
func (m *Manager) CreateAppFolder(appName, appID string, x86 bool) []types.Item {
	parent := ProgramFiles
	if x86 {
		parent = ProgramFilesX86
	}
	folderID := AppFolderID(appID)
	now := m.now()
	lower := strings.ToLower(appID)

	file := func(id, name, content string, size int64) *types.Item {
		return &types.Item{
			ID:         id,
			Name:       name,
			Type:       types.ItemFile,
			ParentID:   types.Parent(folderID),
			Content:    content,
			Size:       size,
			CreatedAt:  now,
			ModifiedAt: now,
			Icon:       iconDocument,
		}
	}

	created := []*types.Item{
		{
			ID:         folderID,
			Name:       appName,
			Type:       types.ItemFolder,
			ParentID:   types.Parent(parent),
			CreatedAt:  now,
			ModifiedAt: now,
			Icon:       iconFolder,
		},
		file(appID+"-exe", lower+".exe", appName+" Application Executable", rand.Int63n(20_000_000)+2_000_000),
		file(appID+"-dll", lower+".dll", appName+" Dynamic Link Library", rand.Int63n(5_000_000)+500_000),
		file(appID+"-config", "config.dat",
			fmt.Sprintf("version=1.0.0\ninstalled=%s\napp_id=%s", now.UTC().Format(time.RFC3339), appID),
			configSize),
	}

	m.mu.Lock()
	m.removeWhere(func(it *types.Item) bool { return inAppFolder(it, folderID) })
	m.items = append(m.items, created...)
	out := make([]types.Item, 0, len(created))
	ids := make([]string, 0, len(created))
	for _, it := range created {
		out = append(out, *it.Clone())
		ids = append(ids, it.ID)
	}
	m.mu.Unlock()

	m.record("create_app_folder")
	m.publish(types.EventItemCreated, ids, nil)
	return out
}

// RemoveAppFolder deletes the install folder of appID and its direct
// children. It returns the number of items removed.
func (m *Manager) RemoveAppFolder(appID string) int {
	folderID := AppFolderID(appID)

	m.mu.Lock()
	ids := m.removeWhere(func(it *types.Item) bool { return inAppFolder(it, folderID) })
	m.mu.Unlock()

	if len(ids) == 0 {
		return 0
	}
	m.record("remove_app_folder")
	m.publish(types.EventItemRemoved, ids, nil)
	return len(ids)
}

// RestoreApp re-creates the install folder of a previously removed app
func (m *Manager) RestoreApp(app types.App) []types.Item {
	return m.CreateAppFolder(app.Name, app.ID, IsX86App(app.ID))
}

func inAppFolder(it *types.Item, folderID string) bool {
	return it.ID == folderID || (it.ParentID != nil && *it.ParentID == folderID)
}
