package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/registry"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/window"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/persistence"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

func setup(t *testing.T) (*session.Manager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := registry.DefaultCatalog()
	require.NoError(t, err)
	codec, err := persistence.NewCodec(false)
	require.NoError(t, err)

	sessions := session.NewManager(storage.NewMemory(0), codec, session.Options{
		Desktop: desktop.Options{Window: window.DefaultOptions(), Catalog: catalog},
	}, nil)

	router := gin.New()
	router.GET("/desktops/:profile/stream", NewHandler(sessions, nil, nil, nil).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		sessions.CloseAll(context.Background())
		codec.Close()
	})
	return sessions, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) types.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg types.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStreamUnknownDesktop(t *testing.T) {
	_, srv := setup(t)

	resp, err := http.Get(srv.URL + "/desktops/nobody/stream")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamDeliversFilteredEvents(t *testing.T) {
	sessions, srv := setup(t)
	sess, _, err := sessions.Open(context.Background(), "alice")
	require.NoError(t, err)

	conn := dial(t, srv, "/desktops/alice/stream?topics=item")
	hello := read(t, conn)
	assert.Equal(t, TypeSystem, hello.Type)

	// window events are filtered out; the item event arrives first
	sess.Desktop.Launch("paint", nil)
	folder := sess.Desktop.Files.CreateFolder("Music", nil)

	msg := read(t, conn)
	require.Equal(t, TypeEvent, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, types.EventItemCreated, msg.Event.Kind)
	require.NotNil(t, msg.Event.Item)
	assert.Equal(t, folder.ID, msg.Event.Item.ID)
}

func TestStreamAnswersPing(t *testing.T) {
	sessions, srv := setup(t)
	_, _, err := sessions.Open(context.Background(), "alice")
	require.NoError(t, err)

	conn := dial(t, srv, "/desktops/alice/stream?topics=none")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: TypePing}))
	assert.Equal(t, TypePong, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "bogus"}))
	assert.Equal(t, TypeError, read(t, conn).Type)
}

func TestStreamEndsWhenDesktopCloses(t *testing.T) {
	sessions, srv := setup(t)
	_, _, err := sessions.Open(context.Background(), "alice")
	require.NoError(t, err)

	conn := dial(t, srv, "/desktops/alice/stream")
	read(t, conn)

	require.NoError(t, sessions.Close(context.Background(), "alice"))

	msg := read(t, conn)
	assert.Equal(t, TypeSystem, msg.Type)
	assert.Contains(t, msg.Message, "closed")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestParseTopics(t *testing.T) {
	assert.Nil(t, parseTopics(""))
	assert.Equal(t, map[string]struct{}{"window": {}, "app": {}}, parseTopics("window, app,"))
}

func TestOriginChecker(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")

	assert.True(t, originChecker(nil)(req))
	assert.True(t, originChecker([]string{"*"})(req))
	assert.False(t, originChecker([]string{"http://localhost:3000"})(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, originChecker([]string{"http://localhost:3000"})(req))
}
