package vfs

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog/dialogtest"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/events"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// newTestManager returns an empty manager with a controllable clock
func newTestManager() (*Manager, *time.Time) {
	m := NewManager(nil)
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func seeded(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(nil)
	require.NoError(t, m.Seed())
	return m
}

func TestCreateFolderAndFile(t *testing.T) {
	m, _ := newTestManager()

	docs := m.CreateFolder("Docs", nil)
	file := m.CreateFile("a.txt", "hello", &docs.ID)

	assert.True(t, strings.HasPrefix(docs.ID, "folder_"))
	assert.True(t, strings.HasPrefix(file.ID, "file_"))
	assert.Equal(t, iconFolder, docs.Icon)
	assert.Nil(t, docs.ParentID)
	require.NotNil(t, file.ParentID)
	assert.Equal(t, docs.ID, *file.ParentID)
	assert.Equal(t, int64(5), file.Size)
	assert.Equal(t, MimeTextPlain, file.MimeType)
	assert.Equal(t, "/Docs/a.txt", m.PathString(file.ID))
}

func TestCreateFileDataURI(t *testing.T) {
	m, _ := newTestManager()
	payload := "iVBORw0KGgoAAAANSUhEUg=="

	file := m.CreateFile("x.png", "data:image/png;base64,"+payload, nil)

	assert.Equal(t, int64(len(payload)*3/4), file.Size)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, "🖼️", file.Icon)
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSize int64
		wantMime string
	}{
		{"plain", "hello", 5, MimeTextPlain},
		{"empty", "", 0, MimeTextPlain},
		{"image", "data:image/png;base64,AAAA", 3, "image/png"},
		{"audio", "data:audio/mpeg;base64,AAAAAAA", 5, "audio/mpeg"},
		{"no params", "data:text/csv,a,b", 2, "text/csv"},
		{"no payload", "data:image/png;base64", 0, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, mime := Measure(tt.content)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantMime, mime)
		})
	}
}

func TestEncodeDataURIRoundTrip(t *testing.T) {
	uri := EncodeDataURI("audio/wav", []byte("RIFF0000WAVE"))

	assert.True(t, IsDataURI(uri))
	size, mime := Measure(uri)
	assert.Equal(t, "audio/wav", mime)
	assert.Equal(t, int64(12), size)
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "📕", IconFor("report.PDF"))
	assert.Equal(t, "🎵", IconFor("song.mp3"))
	assert.Equal(t, "💻", IconFor("main.ts"))
	assert.Equal(t, "📦", IconFor("backup.zip"))
	assert.Equal(t, "📄", IconFor("Makefile"))
}

func TestPathString(t *testing.T) {
	m, _ := newTestManager()
	a := m.CreateFolder("A", nil)
	b := m.CreateFolder("B", &a.ID)

	assert.Equal(t, Root, m.PathString(""))
	assert.Equal(t, Root, m.PathString("missing"))
	assert.Equal(t, "/A", m.PathString(a.ID))
	assert.Equal(t, "/A/B", m.PathString(b.ID))
}

func TestPathStringStopsOnCycle(t *testing.T) {
	m, _ := newTestManager()
	m.Load([]types.Item{
		{ID: "x", Name: "X", Type: types.ItemFolder, ParentID: types.Parent("y")},
		{ID: "y", Name: "Y", Type: types.ItemFolder, ParentID: types.Parent("x")},
	})

	assert.Equal(t, "/X/Y", m.PathString("y"))
}

func TestGetItemsByParentHidesDeleted(t *testing.T) {
	m, _ := newTestManager()
	docs := m.CreateFolder("Docs", nil)
	keep := m.CreateFile("keep.txt", "", &docs.ID)
	drop := m.CreateFile("drop.txt", "", &docs.ID)

	outcome, err := m.DeleteItem(context.Background(), dialog.Yes(), drop.ID)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeApplied, outcome)

	children := m.GetItemsByParent(&docs.ID)
	require.Len(t, children, 1)
	assert.Equal(t, keep.ID, children[0].ID)

	top := m.GetItemsByParent(nil)
	require.Len(t, top, 1)
	assert.Equal(t, docs.ID, top[0].ID)
}

func TestSoftDeleteIsReversible(t *testing.T) {
	m, _ := newTestManager()
	docs := m.CreateFolder("Docs", nil)
	child := m.CreateFile("a.txt", "hello", &docs.ID)
	sub := m.CreateFolder("Sub", &docs.ID)
	grandchild := m.CreateFile("deep.txt", "", &sub.ID)

	dlg := dialog.Yes()
	outcome, err := m.DeleteItem(context.Background(), dlg, docs.ID)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeApplied, outcome)

	shown := dlg.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, dialog.Message{
		Kind:    dialog.KindConfirm,
		Title:   TitleDeleteItem,
		Message: `Are you sure you want to delete "Docs"? This will move it to the Recycle Bin.`,
	}, shown[0])

	bin := m.GetRecycleBinItems()
	ids := make([]string, 0, len(bin))
	for _, it := range bin {
		ids = append(ids, it.ID)
		assert.NotNil(t, it.DeletedAt)
	}
	assert.ElementsMatch(t, []string{docs.ID, child.ID, sub.ID}, ids)

	// cascade stops one level down
	deep, ok := m.GetItem(grandchild.ID)
	require.True(t, ok)
	assert.False(t, deep.IsDeleted)

	require.True(t, m.RestoreItem(docs.ID))
	restored, ok := m.GetItem(docs.ID)
	require.True(t, ok)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
	assert.Len(t, m.GetItemsByParent(nil), 1)

	stillDeleted, _ := m.GetItem(child.ID)
	assert.True(t, stillDeleted.IsDeleted)

	assert.False(t, m.RestoreItem(docs.ID))
	assert.False(t, m.RestoreItem("missing"))
}

func TestDeleteCancelledLeavesTree(t *testing.T) {
	m, _ := newTestManager()
	file := m.CreateFile("a.txt", "hello", nil)
	before := m.Items()

	outcome, err := m.DeleteItem(context.Background(), dialog.No(), file.ID)

	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCancelled, outcome)
	assert.Equal(t, before, m.Items())
}

func TestDeleteDialogFailure(t *testing.T) {
	m, _ := newTestManager()
	file := m.CreateFile("a.txt", "hello", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.DeleteItem(ctx, dialog.Yes(), file.ID)

	require.ErrorIs(t, err, context.Canceled)
	got, _ := m.GetItem(file.ID)
	assert.False(t, got.IsDeleted)
}

func TestDeleteNotFound(t *testing.T) {
	m, _ := newTestManager()
	dlg := dialog.Yes()

	outcome, err := m.DeleteItem(context.Background(), dlg, "missing")

	require.NoError(t, err)
	assert.Equal(t, types.OutcomeNotFound, outcome)
	assert.Empty(t, dlg.Shown())
}

func TestDeleteProtectedFolders(t *testing.T) {
	for id := range systemFolders {
		t.Run(id, func(t *testing.T) {
			m := seeded(t)
			before := m.Items()

			dlg := new(dialogtest.Mock)
			dlg.On("Alert", mock.Anything, TitleAccessDenied, "You can't delete this system folder.").Return(nil).Once()

			outcome, err := m.DeleteItem(context.Background(), dlg, id)

			require.NoError(t, err)
			assert.Equal(t, types.OutcomeDenied, outcome)
			assert.Equal(t, before, m.Items())
			assert.True(t, m.IsProtected(id))
			dlg.AssertExpectations(t)
			dlg.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeleteProtectedSystemFile(t *testing.T) {
	m := seeded(t)
	before := m.Items()

	dlg := new(dialogtest.Mock)
	dlg.On("Alert", mock.Anything, TitleAccessDenied,
		`Cannot delete "kernel32.dll". This is a protected system file.`).Return(nil).Once()

	outcome, err := m.DeleteItem(context.Background(), dlg, "kernel32-dll")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeDenied, outcome)
	assert.Equal(t, before, m.Items())

	outcome, err = m.PermanentlyDeleteItem(context.Background(), dialog.Yes(), "kernel32-dll")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeDenied, outcome)

	_, ok := m.GetItem("kernel32-dll")
	assert.True(t, ok)
	dlg.AssertExpectations(t)
}

func TestProtectionMatchesDisplayPath(t *testing.T) {
	m := seeded(t)

	// Program Files items are matched by display name, which never
	// contains "program-files"
	assert.False(t, m.IsProtected("snake-exe"))
	assert.True(t, m.IsProtected("explorer-exe"))
	assert.True(t, m.IsProtected("winspool-drv"))
	assert.False(t, m.IsProtected("readme"))
	assert.True(t, m.IsProtected("c-drive"))
}

func TestCheckOpen(t *testing.T) {
	m := seeded(t)
	ctx := context.Background()

	dlg := dialog.Yes()
	outcome, err := m.CheckOpen(ctx, dlg, "kernel32-dll")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeDenied, outcome)
	require.Len(t, dlg.Shown(), 1)
	assert.Equal(t, TitleCannotOpen, dlg.Shown()[0].Title)
	assert.Equal(t, dialog.KindAlert, dlg.Shown()[0].Kind)

	outcome, err = m.CheckOpen(ctx, dlg, "readme")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeApplied, outcome)

	outcome, err = m.CheckOpen(ctx, dlg, "missing")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeNotFound, outcome)

	assert.True(t, m.CanOpen("readme"))
	assert.False(t, m.CanOpen("kernel32-dll"))
	assert.False(t, m.CanOpen("missing"))
}

func TestPermanentDeleteIsTerminal(t *testing.T) {
	m, _ := newTestManager()
	docs := m.CreateFolder("Docs", nil)
	child := m.CreateFile("a.txt", "hello", &docs.ID)

	_, err := m.DeleteItem(context.Background(), dialog.Yes(), docs.ID)
	require.NoError(t, err)

	dlg := dialog.Yes()
	outcome, err := m.PermanentlyDeleteItem(context.Background(), dlg, docs.ID)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeApplied, outcome)
	assert.Equal(t, `Are you sure you want to permanently delete "Docs"? This action cannot be undone.`, dlg.Shown()[0].Message)

	for _, id := range []string{docs.ID, child.ID} {
		_, ok := m.GetItem(id)
		assert.False(t, ok)
	}
	assert.Empty(t, m.GetRecycleBinItems())
	assert.False(t, m.RestoreItem(docs.ID))
}

func TestPermanentDeleteCancelled(t *testing.T) {
	m, _ := newTestManager()
	file := m.CreateFile("a.txt", "hello", nil)

	outcome, err := m.PermanentlyDeleteItem(context.Background(), dialog.No(), file.ID)

	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCancelled, outcome)
	_, ok := m.GetItem(file.ID)
	assert.True(t, ok)
}

func TestEmptyRecycleBin(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	dlg := new(dialogtest.Mock)
	outcome, err := m.EmptyRecycleBin(ctx, dlg)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeNoop, outcome)
	dlg.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)

	a := m.CreateFile("a.txt", "", nil)
	b := m.CreateFile("b.txt", "", nil)
	keep := m.CreateFile("keep.txt", "", nil)
	for _, id := range []string{a.ID, b.ID} {
		_, err := m.DeleteItem(ctx, dialog.Yes(), id)
		require.NoError(t, err)
	}

	dlg.On("Confirm", mock.Anything, TitleEmptyRecycle,
		"Are you sure you want to permanently delete all 2 items in the Recycle Bin? This action cannot be undone.").
		Return(false, nil).Once()
	outcome, err = m.EmptyRecycleBin(ctx, dlg)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCancelled, outcome)
	assert.Len(t, m.GetRecycleBinItems(), 2)

	dlg.On("Confirm", mock.Anything, TitleEmptyRecycle, mock.Anything).Return(true, nil).Once()
	outcome, err = m.EmptyRecycleBin(ctx, dlg)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeApplied, outcome)
	assert.Empty(t, m.GetRecycleBinItems())

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
	dlg.AssertExpectations(t)
}

func TestCopyPasteIsRepeatable(t *testing.T) {
	m, _ := newTestManager()
	src := m.CreateFile("a.txt", "hello", nil)
	dst := m.CreateFolder("Dest", nil)

	require.Equal(t, 1, m.CopyItems([]string{src.ID, "missing"}))

	first := m.PasteItems(&dst.ID)
	require.Len(t, first, 1)
	assert.NotEqual(t, src.ID, first[0].ID)
	assert.Equal(t, "Copy of a.txt", first[0].Name)
	assert.Equal(t, "hello", first[0].Content)
	require.NotNil(t, first[0].ParentID)
	assert.Equal(t, dst.ID, *first[0].ParentID)

	original, ok := m.GetItem(src.ID)
	require.True(t, ok)
	assert.Nil(t, original.ParentID)
	assert.Equal(t, "a.txt", original.Name)

	assert.Equal(t, types.ClipboardCopy, m.Clipboard().Operation)
	second := m.PasteItems(nil)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Len(t, m.Items(), 4)
}

func TestCopyUsesSnapshot(t *testing.T) {
	m, _ := newTestManager()
	src := m.CreateFile("a.txt", "before", nil)
	m.CopyItems([]string{src.ID})

	require.True(t, m.UpdateFileContent(src.ID, "after"))
	pasted := m.PasteItems(nil)

	require.Len(t, pasted, 1)
	assert.Equal(t, "before", pasted[0].Content)
}

func TestCutPasteMovesAndClears(t *testing.T) {
	m, clock := newTestManager()
	src := m.CreateFile("a.txt", "hello", nil)
	dst := m.CreateFolder("Dest", nil)

	require.Equal(t, 1, m.CutItems([]string{src.ID}))
	*clock = clock.Add(time.Minute)
	moved := m.PasteItems(&dst.ID)

	require.Len(t, moved, 1)
	assert.Equal(t, src.ID, moved[0].ID)
	require.NotNil(t, moved[0].ParentID)
	assert.Equal(t, dst.ID, *moved[0].ParentID)
	assert.Equal(t, *clock, moved[0].ModifiedAt)

	cb := m.Clipboard()
	assert.Empty(t, cb.Items)
	assert.Equal(t, types.ClipboardNone, cb.Operation)
	assert.Empty(t, m.PasteItems(nil))
	assert.Len(t, m.Items(), 2)
}

func TestCutIntoOwnSubtreeIsSkipped(t *testing.T) {
	m, _ := newTestManager()
	outer := m.CreateFolder("Outer", nil)
	inner := m.CreateFolder("Inner", &outer.ID)

	m.CutItems([]string{outer.ID})
	moved := m.PasteItems(&inner.ID)

	assert.Empty(t, moved)
	got, _ := m.GetItem(outer.ID)
	assert.Nil(t, got.ParentID)
}

func TestPasteIntoUnknownParentKeepsBuffer(t *testing.T) {
	m, _ := newTestManager()
	src := m.CreateFile("a.txt", "", nil)
	m.CutItems([]string{src.ID})

	assert.Empty(t, m.PasteItems(types.Parent("missing")))
	assert.Len(t, m.Clipboard().Items, 1)
}

func TestRenameMoveUpdate(t *testing.T) {
	m, clock := newTestManager()
	docs := m.CreateFolder("Docs", nil)
	file := m.CreateFile("a.txt", "hello", nil)

	*clock = clock.Add(time.Hour)
	require.True(t, m.RenameItem(file.ID, "b.txt"))
	got, _ := m.GetItem(file.ID)
	assert.Equal(t, "b.txt", got.Name)
	assert.Equal(t, *clock, got.ModifiedAt)
	assert.True(t, got.ModifiedAt.After(got.CreatedAt))

	require.True(t, m.MoveItem(file.ID, &docs.ID))
	assert.Equal(t, "/Docs/b.txt", m.PathString(file.ID))
	require.True(t, m.MoveItem(file.ID, nil))
	assert.Equal(t, "/b.txt", m.PathString(file.ID))

	require.True(t, m.UpdateFileContent(file.ID, "data:image/png;base64,AAAA"))
	got, _ = m.GetItem(file.ID)
	assert.Equal(t, int64(len("data:image/png;base64,AAAA")), got.Size)

	assert.False(t, m.RenameItem("missing", "x"))
	assert.False(t, m.MoveItem("missing", nil))
	assert.False(t, m.UpdateFileContent("missing", ""))
}

func TestMoveRefusesCycles(t *testing.T) {
	m, _ := newTestManager()
	a := m.CreateFolder("A", nil)
	b := m.CreateFolder("B", &a.ID)
	file := m.CreateFile("f.txt", "", nil)

	assert.False(t, m.MoveItem(a.ID, &a.ID))
	assert.False(t, m.MoveItem(a.ID, &b.ID))
	assert.False(t, m.MoveItem(b.ID, &file.ID))
	assert.False(t, m.MoveItem(b.ID, types.Parent("missing")))
	assert.Equal(t, "/A/B", m.PathString(b.ID))
}

func TestCreateAppFolder(t *testing.T) {
	m, _ := newTestManager()

	created := m.CreateAppFolder("Music Player", "Music-Player", false)
	require.Len(t, created, 4)

	folder := created[0]
	assert.Equal(t, "Music-Player-app-folder", folder.ID)
	assert.Equal(t, "Music Player", folder.Name)
	require.NotNil(t, folder.ParentID)
	assert.Equal(t, ProgramFiles, *folder.ParentID)

	byID := map[string]types.Item{}
	for _, it := range created[1:] {
		byID[it.ID] = it
		assert.Equal(t, folder.ID, *it.ParentID)
	}
	exe := byID["Music-Player-exe"]
	assert.Equal(t, "music-player.exe", exe.Name)
	assert.Equal(t, "Music Player Application Executable", exe.Content)
	assert.GreaterOrEqual(t, exe.Size, int64(2_000_000))
	assert.Less(t, exe.Size, int64(22_000_000))

	dll := byID["Music-Player-dll"]
	assert.Equal(t, "music-player.dll", dll.Name)
	assert.GreaterOrEqual(t, dll.Size, int64(500_000))
	assert.Less(t, dll.Size, int64(5_500_000))

	cfg := byID["Music-Player-config"]
	assert.Equal(t, "config.dat", cfg.Name)
	assert.Equal(t, int64(256), cfg.Size)
	assert.Contains(t, cfg.Content, "version=1.0.0\ninstalled=")
	assert.True(t, strings.HasSuffix(cfg.Content, "\napp_id=Music-Player"))

	again := m.CreateAppFolder("Music Player", "Music-Player", true)
	require.Len(t, again, 4)
	assert.Len(t, m.Items(), 4)
	assert.Equal(t, ProgramFilesX86, *again[0].ParentID)

	assert.Equal(t, 4, m.RemoveAppFolder("Music-Player"))
	assert.Empty(t, m.Items())
	assert.Zero(t, m.RemoveAppFolder("Music-Player"))
}

func TestRemoveAppFolderIgnoresSeededFolders(t *testing.T) {
	m := seeded(t)
	before := m.Len()

	assert.Zero(t, m.RemoveAppFolder("snake"))
	assert.Equal(t, before, m.Len())
}

func TestRestoreAppUsesX86Rule(t *testing.T) {
	m, _ := newTestManager()

	calc := m.RestoreApp(types.App{ID: "calculator", Name: "Calculator"})
	cam := m.RestoreApp(types.App{ID: "camera", Name: "Camera"})

	assert.Equal(t, ProgramFilesX86, *calc[0].ParentID)
	assert.Equal(t, ProgramFiles, *cam[0].ParentID)
	assert.True(t, IsX86App("voice-recorder"))
	assert.False(t, IsX86App("snake"))
}

func TestDefaultTree(t *testing.T) {
	now := time.Now()
	items, err := DefaultTree(now)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[it.ID] = struct{}{}
		assert.Equal(t, now, it.CreatedAt)
		assert.NotEmpty(t, it.Icon, it.ID)
	}
	for _, it := range items {
		if it.ParentID != nil {
			_, ok := ids[*it.ParentID]
			assert.True(t, ok, "%s has unknown parent %s", it.ID, *it.ParentID)
		}
	}
	for id := range systemFolders {
		_, ok := ids[id]
		assert.True(t, ok, id)
	}

	m := seeded(t)
	assert.Equal(t, "/Local Disk (C:)/Users/user/Desktop/README.txt", m.PathString("readme"))
	readme, _ := m.GetItem("readme")
	assert.True(t, strings.HasPrefix(readme.Content, "Welcome to WebOS!\n"))
}

func TestParseTreeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", "- name: x\n  type: file\n"},
		{"duplicate id", "- id: a\n  type: file\n- id: a\n  type: folder\n"},
		{"bad type", "- id: a\n  type: link\n"},
		{"not yaml", "- id: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTree([]byte(tt.data), time.Now())
			assert.Error(t, err)
		})
	}
}

func TestSearch(t *testing.T) {
	m := seeded(t)

	found := m.Search("README")
	require.Len(t, found, 1)
	assert.Equal(t, "readme", found[0].ID)

	_, err := m.DeleteItem(context.Background(), dialog.Yes(), "readme")
	require.NoError(t, err)
	assert.Empty(t, m.Search("readme"))
	assert.Empty(t, m.Search("  "))
}

func TestGlob(t *testing.T) {
	m := seeded(t)

	matches, err := m.Glob("/Local Disk (C:)/**/*.sys")
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, match := range matches {
		assert.True(t, strings.HasSuffix(match.Path, ".sys"), match.Path)
		assert.Equal(t, match.Path, m.PathString(match.Item.ID))
	}
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Path, matches[i].Path)
	}

	top, err := m.Glob("*")
	require.NoError(t, err)
	assert.Len(t, top, len(m.GetItemsByParent(nil)))

	_, err = m.Glob("/[")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	m, _ := newTestManager()
	docs := m.CreateFolder("Docs", nil)
	m.CreateFile("a.txt", "hello", &docs.ID)
	b := m.CreateFile("b.txt", "abc", nil)
	_, err := m.DeleteItem(context.Background(), dialog.Yes(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, types.ItemStats{TotalItems: 3, Files: 2, Folders: 1, DeletedItems: 1, TotalBytes: 8}, m.Stats())
}

func TestMutationsPublishEvents(t *testing.T) {
	bus := events.NewBus()
	var kinds []string
	bus.Subscribe(func(ev types.Event) {
		kinds = append(kinds, fmt.Sprintf("%s:%d", ev.Kind, len(ev.IDs)))
	})
	m := NewManager(bus)

	docs := m.CreateFolder("Docs", nil)
	file := m.CreateFile("a.txt", "", &docs.ID)
	m.RenameItem(file.ID, "b.txt")
	_, err := m.DeleteItem(context.Background(), dialog.Yes(), docs.ID)
	require.NoError(t, err)
	m.RestoreItem(docs.ID)
	m.CopyItems([]string{docs.ID})
	m.PasteItems(nil)
	_, err = m.EmptyRecycleBin(context.Background(), dialog.Yes())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"item.created:1",
		"item.created:1",
		"item.updated:1",
		"item.deleted:2",
		"item.restored:1",
		"clipboard.changed:1",
		"item.created:1",
		"item.removed:1",
	}, kinds)
}

func TestLoadReplacesTree(t *testing.T) {
	m, _ := newTestManager()
	m.CreateFile("a.txt", "", nil)
	m.CopyItems([]string{"a"})

	m.Load([]types.Item{{ID: "x", Name: "X", Type: types.ItemFolder}})

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)
	assert.Empty(t, m.Clipboard().Items)
}
