package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/registry"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/window"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/persistence"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
)

type response struct {
	Code int
	Body map[string]any
}

func (r response) dialogs() []map[string]any {
	raw, _ := r.Body["dialogs"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.(map[string]any))
	}
	return out
}

func (r response) item() map[string]any {
	item, _ := r.Body["item"].(map[string]any)
	return item
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := registry.DefaultCatalog()
	require.NoError(t, err)
	codec, err := persistence.NewCodec(false)
	require.NoError(t, err)
	t.Cleanup(codec.Close)

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	sessions := session.NewManager(storage.NewMemory(0), codec, session.Options{
		Desktop: desktop.Options{
			Window:  window.DefaultOptions(),
			Catalog: catalog,
			Metrics: metrics,
		},
		Persistence: persistence.Options{Debounce: 10 * time.Millisecond},
	}, nil)

	router := gin.New()
	RegisterRoutes(router, NewHandlers(sessions, metrics, nil), nil)
	return router
}

func request(t *testing.T, router *gin.Engine, method, path string, body any) response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := response{Code: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body), w.Body.String())
	}
	return resp
}

func openDesktop(t *testing.T, router *gin.Engine) {
	t.Helper()
	resp := request(t, router, http.MethodPost, "/desktops/alice", nil)
	require.Equal(t, http.StatusCreated, resp.Code)
}

func TestHealthAndRoot(t *testing.T) {
	router := setupTestRouter(t)

	resp := request(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, Version, resp.Body["version"])

	resp = request(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "healthy", resp.Body["status"])
}

func TestDesktopLifecycle(t *testing.T) {
	router := setupTestRouter(t)

	resp := request(t, router, http.MethodGet, "/desktops/alice/items", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice", nil)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, true, resp.Body["opened"])

	resp = request(t, router, http.MethodPost, "/desktops/alice", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, false, resp.Body["opened"])

	resp = request(t, router, http.MethodPost, "/desktops/Alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice/flush", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = request(t, router, http.MethodGet, "/desktops", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, resp.Body["open"], 1)
	assert.Contains(t, resp.Body["saved"], "alice")

	resp = request(t, router, http.MethodDelete, "/desktops/alice", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = request(t, router, http.MethodDelete, "/desktops/alice", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestWindows(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/windows", map[string]any{
		"title":    "Notes",
		"appId":    "notepad",
		"position": "center",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	win := resp.Body["window"].(map[string]any)
	id := win["id"].(string)
	assert.Equal(t, true, win["isActive"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/windows/"+id+"/minimize", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["window"].(map[string]any)["isMinimized"])

	resp = request(t, router, http.MethodPut, "/desktops/alice/windows/"+id+"/position", map[string]int{"x": 10, "y": 20})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice/windows/missing/focus", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice/windows", map[string]any{"appId": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/apps/notepad/windows", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, resp.Body["closed"])
}

func TestCreateMoveAndEditItems(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/folders", map[string]any{"name": "Projects"})
	require.Equal(t, http.StatusCreated, resp.Code)
	projects := resp.item()["id"].(string)
	assert.Nil(t, resp.item()["parentId"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/folders", map[string]any{"name": "Sub", "parentId": projects})
	require.Equal(t, http.StatusCreated, resp.Code)
	sub := resp.item()["id"].(string)

	resp = request(t, router, http.MethodPost, "/desktops/alice/files", map[string]any{
		"name": "a.txt", "content": "hello", "parentId": projects,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	file := resp.item()["id"].(string)
	assert.EqualValues(t, 5, resp.item()["size"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/files", map[string]any{"name": "b.txt", "parentId": file})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = request(t, router, http.MethodPost, "/desktops/alice/files", map[string]any{"name": "b.txt", "parentId": "nowhere"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodGet, "/desktops/alice/items?parent="+projects, nil)
	assert.EqualValues(t, 2, resp.Body["count"])

	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+projects, map[string]any{"parentId": sub})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{"name": "notes.txt", "parentId": sub})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "notes.txt", resp.item()["name"])
	assert.Equal(t, sub, resp.item()["parentId"])

	resp = request(t, router, http.MethodGet, "/desktops/alice/items/"+file+"/path", nil)
	assert.Equal(t, "/Projects/Sub/notes.txt", resp.Body["path"])

	resp = request(t, router, http.MethodPut, "/desktops/alice/items/"+file+"/content", map[string]any{"content": "hello world"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 11, resp.item()["size"])

	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{"parentId": nil})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, resp.item()["parentId"])

	resp = request(t, router, http.MethodGet, "/desktops/alice/search?q=notes", nil)
	assert.EqualValues(t, 1, resp.Body["count"])
}

func TestUpdateItemIsAllOrNothing(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/folders", map[string]any{"name": "Target"})
	require.Equal(t, http.StatusCreated, resp.Code)
	target := resp.item()["id"].(string)

	resp = request(t, router, http.MethodPost, "/desktops/alice/files", map[string]any{"name": "a.txt", "content": "hi"})
	require.Equal(t, http.StatusCreated, resp.Code)
	file := resp.item()["id"].(string)

	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{"name": "<b></b>", "parentId": target})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{"name": "b.txt", "parentId": "nowhere"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{"parentId": 7})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = request(t, router, http.MethodGet, "/desktops/alice/items/"+file, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, resp.item()["parentId"])
	assert.Equal(t, "a.txt", resp.item()["name"])

	resp = request(t, router, http.MethodPatch, "/desktops/alice/items/"+file, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPromptedCreate(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/folders?input=Music", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "applied", resp.Body["outcome"])
	assert.Equal(t, "Music", resp.item()["name"])
	require.Len(t, resp.dialogs(), 1)
	assert.Equal(t, "prompt", resp.dialogs()[0]["kind"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/files", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "cancelled", resp.Body["outcome"])
	assert.Nil(t, resp.Body["item"])
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodDelete, "/desktops/alice/items/readme", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "cancelled", resp.Body["outcome"])
	require.Len(t, resp.dialogs(), 1)
	assert.Equal(t, "confirm", resp.dialogs()[0]["kind"])

	resp = request(t, router, http.MethodDelete, "/desktops/alice/items/readme?confirm=true", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["applied"])

	resp = request(t, router, http.MethodGet, "/desktops/alice/recycle-bin", nil)
	assert.EqualValues(t, 1, resp.Body["count"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/recycle-bin/readme/restore", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = request(t, router, http.MethodPost, "/desktops/alice/recycle-bin/readme/restore", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/items/missing?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/items/readme?confirm=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProtectedItemsAreRefused(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	for _, id := range []string{"kernel32-dll", "system32"} {
		resp := request(t, router, http.MethodDelete, "/desktops/alice/items/"+id+"?confirm=true", nil)
		assert.Equal(t, http.StatusForbidden, resp.Code, id)
		assert.Equal(t, "denied", resp.Body["outcome"])
		require.Len(t, resp.dialogs(), 1)
		assert.Equal(t, "alert", resp.dialogs()[0]["kind"])
	}

	resp := request(t, router, http.MethodPost, "/desktops/alice/items/kernel32-dll/open", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice/items/readme/open", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, resp.Body["window"])
}

func TestClipboard(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/folders", map[string]any{"name": "Inbox"})
	inbox := resp.item()["id"].(string)

	resp = request(t, router, http.MethodPost, "/desktops/alice/clipboard/copy", map[string]any{"ids": []string{"readme", "missing"}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, resp.Body["staged"])

	for i := 0; i < 2; i++ {
		resp = request(t, router, http.MethodPost, "/desktops/alice/clipboard/paste", map[string]any{"parentId": inbox})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.EqualValues(t, 1, resp.Body["count"])
	}

	resp = request(t, router, http.MethodGet, "/desktops/alice/items?parent="+inbox, nil)
	assert.EqualValues(t, 2, resp.Body["count"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/clipboard/cut", map[string]any{"ids": []string{"readme"}})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = request(t, router, http.MethodPost, "/desktops/alice/clipboard/paste", map[string]any{"parentId": inbox})
	assert.EqualValues(t, 1, resp.Body["count"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/clipboard/paste", nil)
	assert.EqualValues(t, 0, resp.Body["count"])

	resp = request(t, router, http.MethodGet, "/desktops/alice/items/readme", nil)
	assert.Equal(t, inbox, resp.item()["parentId"])
}

func upload(t *testing.T, router *gin.Engine, name string, data []byte) response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/desktops/alice/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := response{Code: w.Code}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body))
	return resp
}

func TestUpload(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := upload(t, router, "hello.txt", []byte("hello world"))
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "text/plain", resp.Body["detectedMime"])
	assert.Equal(t, "hello world", resp.item()["content"])
	assert.Equal(t, "hello.txt", resp.item()["name"])

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x00")
	resp = upload(t, router, "dot.png", png)
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "image/png", resp.Body["detectedMime"])
	content := resp.item()["content"].(string)
	assert.True(t, strings.HasPrefix(content, "data:image/png;base64,"), content)
	assert.EqualValues(t, len(png), resp.item()["size"])
}

func TestEncodeUploadConvertsLegacyText(t *testing.T) {
	latin1 := []byte("Caf\xe9 cr\xe8me br\xfbl\xe9e, d\xe9j\xe0 vu, na\xefve fa\xe7ade. " +
		"Le gar\xe7on a servi un caf\xe9 tr\xe8s chaud \xe0 la fen\xeatre.")

	content, mime, err := EncodeUpload(latin1)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Contains(t, content, "Café")
}

func TestUninstallFlow(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/apps/paint/launch", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/apps/paint", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "cancelled", resp.Body["outcome"])

	resp = request(t, router, http.MethodDelete, "/desktops/alice/apps/paint?confirm=true", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "applied", resp.Body["outcome"])
	assert.Len(t, resp.dialogs(), 3)

	resp = request(t, router, http.MethodGet, "/desktops/alice/windows", nil)
	assert.Empty(t, resp.Body["windows"])

	resp = request(t, router, http.MethodGet, "/desktops/alice/apps/deleted", nil)
	assert.Len(t, resp.Body["apps"], 1)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/apps/file-explorer?confirm=true", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = request(t, router, http.MethodPost, "/desktops/alice/apps/paint/install", nil)
	assert.Equal(t, http.StatusCreated, resp.Code)
	resp = request(t, router, http.MethodPost, "/desktops/alice/apps/paint/install", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
	resp = request(t, router, http.MethodPost, "/desktops/alice/apps/minesweeper/install", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPins(t *testing.T) {
	router := setupTestRouter(t)
	openDesktop(t, router)

	resp := request(t, router, http.MethodPost, "/desktops/alice/pins/calculator", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, resp.Body["pinned"])

	resp = request(t, router, http.MethodPost, "/desktops/alice/pins/minesweeper", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = request(t, router, http.MethodDelete, "/desktops/alice/pins/calculator", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = request(t, router, http.MethodDelete, "/desktops/alice/pins/calculator", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
