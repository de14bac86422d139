package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/window"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// ListWindows lists open windows in stacking order
func (h *Handlers) ListWindows(c *gin.Context) {
	d := desk(c)
	c.JSON(http.StatusOK, gin.H{
		"windows":  d.Windows.List(),
		"stats":    d.Windows.Stats(),
		"viewport": d.Windows.Viewport(),
	})
}

// OpenWindow opens a window and makes it active
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req types.OpenWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateTitle(req.Title); err != nil {
		badRequest(c, err)
		return
	}
	if req.AppID != "" {
		if err := utils.ValidateID(req.AppID, "appId", false); err != nil {
			badRequest(c, err)
			return
		}
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		badRequest(c, err)
		return
	}
	if req.Size != nil && (req.Size.Width <= 0 || req.Size.Height <= 0) {
		badRequest(c, errors.New("size must be positive"))
		return
	}

	win := desk(c).Windows.Open(window.OpenConfig{
		Title:    req.Title,
		AppID:    req.AppID,
		Position: pos,
		Size:     req.Size,
		Icon:     req.Icon,
		Props:    req.Props,
	})
	c.JSON(http.StatusCreated, gin.H{"window": win})
}

// parsePosition accepts an {x,y} object or "center"; both null and
// omitted mean center
func parsePosition(raw []byte) (*types.WindowPosition, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" || text == `"center"` {
		return nil, nil
	}
	var pos types.WindowPosition
	if err := sonic.Unmarshal(raw, &pos); err != nil {
		return nil, errors.New(`position must be {"x":..,"y":..} or "center"`)
	}
	return &pos, nil
}

// GetWindow returns one window
func (h *Handlers) GetWindow(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	win, found := desk(c).Windows.Get(id)
	if !found {
		notFound(c, "window", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": win})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.Close(id) })
}

// MinimizeWindow minimizes a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.Minimize(id) })
}

// RestoreWindow restores a minimized window and focuses it
func (h *Handlers) RestoreWindow(c *gin.Context) {
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.Restore(id) })
}

// MaximizeWindow toggles the maximized state
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.Maximize(id) })
}

// FocusWindow makes a window the active one
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.Focus(id) })
}

// MoveWindow sets a window's position
func (h *Handlers) MoveWindow(c *gin.Context) {
	var pos types.WindowPosition
	if err := c.ShouldBindJSON(&pos); err != nil {
		badRequest(c, err)
		return
	}
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.UpdatePosition(id, pos) })
}

// ResizeWindow sets a window's size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var size types.WindowSize
	if err := c.ShouldBindJSON(&size); err != nil {
		badRequest(c, err)
		return
	}
	if size.Width <= 0 || size.Height <= 0 {
		badRequest(c, errors.New("size must be positive"))
		return
	}
	h.windowAction(c, func(m *window.Manager, id string) bool { return m.UpdateSize(id, size) })
}

// SetViewport records the client's screen size used for centering
func (h *Handlers) SetViewport(c *gin.Context) {
	var size types.WindowSize
	if err := c.ShouldBindJSON(&size); err != nil {
		badRequest(c, err)
		return
	}
	if !desk(c).Windows.SetViewport(size) {
		badRequest(c, errors.New("viewport must be positive"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewport": size})
}

// CloseAppWindows closes every window of an app
func (h *Handlers) CloseAppWindows(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	closed := desk(c).Windows.CloseAllFor(appID)
	c.JSON(http.StatusOK, gin.H{"closed": closed, "appId": appID})
}

// windowAction runs fn on the :id window; unknown ids yield 404
func (h *Handlers) windowAction(c *gin.Context, fn func(m *window.Manager, id string) bool) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	d := desk(c)
	if !fn(d.Windows, id) {
		notFound(c, "window", id)
		return
	}
	body := gin.H{"success": true, "id": id}
	if win, found := d.Windows.Get(id); found {
		body["window"] = win
	}
	c.JSON(http.StatusOK, body)
}
