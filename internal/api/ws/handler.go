package ws

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// Message types
const (
	TypeSystem = "system"
	TypeEvent  = "event"
	TypePing   = "ping"
	TypePong   = "pong"
	TypeError  = "error"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	bufferSize = 256
)

// Handler streams desktop events over WebSocket
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. allowedOrigins empty or
// containing "*" accepts every origin.
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleConnection upgrades the request and streams the events of the
// :profile desktop. ?topics=window,item limits the stream to those topics.
func (h *Handler) HandleConnection(c *gin.Context) {
	profile := c.Param("profile")
	if err := utils.ValidateProfile(profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.sessions.Get(profile)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrNotOpen) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("profile", profile), zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	out := make(chan types.WSMessage, bufferSize)
	topics := parseTopics(c.Query("topics"))
	logger := h.logger.With(zap.String("profile", profile))

	unsubscribe := sess.Desktop.Events.Subscribe(func(ev types.Event) {
		if topics != nil {
			if _, ok := topics[ev.Kind.Topic()]; !ok {
				return
			}
		}
		select {
		case out <- types.WSMessage{Type: TypeEvent, Event: &ev}:
		default:
			logger.Debug("Dropping event for slow client", zap.String("kind", string(ev.Kind)))
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go h.writePump(conn, out, done, sess.Done(), profile, logger)

	out <- types.WSMessage{Type: TypeSystem, Message: "Connected to desktop " + profile}
	h.readPump(conn, out, logger)
	close(done)
}

// readPump handles client messages until the connection closes
func (h *Handler) readPump(conn *websocket.Conn, out chan<- types.WSMessage, logger *zap.Logger) {
	conn.SetReadLimit(utils.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.record("in", msg.Type)

		var reply types.WSMessage
		switch msg.Type {
		case TypePing:
			reply = types.WSMessage{Type: TypePong}
		default:
			reply = types.WSMessage{Type: TypeError, Message: "unknown message type"}
		}
		select {
		case out <- reply:
		default:
		}
	}
}

// writePump is the only writer of conn. When the desktop closes it says so
// and closes conn, which ends readPump.
func (h *Handler) writePump(conn *websocket.Conn, out <-chan types.WSMessage, done, closed <-chan struct{}, profile string, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-out:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("WebSocket write error", zap.Error(err))
				conn.Close()
				return
			}
			h.record("out", msg.Type)
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-closed:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(types.WSMessage{Type: TypeSystem, Message: "Desktop " + profile + " closed"}); err == nil {
				h.record("out", TypeSystem)
			}
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "desktop closed"))
			logger.Debug("Desktop closed, ending stream")
			conn.Close()
			return
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

// parseTopics returns nil for "all topics"
func parseTopics(raw string) map[string]struct{} {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	topics := make(map[string]struct{})
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics[t] = struct{}{}
		}
	}
	return topics
}
