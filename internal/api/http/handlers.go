package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/dialog"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

const (
	// Version is reported by the root endpoint
	Version = "1.0.0"

	desktopKey = "desktop"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger.Named("api"),
	}
}

// Root reports the service identity
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk shell backend",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Len(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// RequireDesktop resolves the :profile parameter to an open desktop. It
// aborts with 404 when the profile has not been opened.
func (h *Handlers) RequireDesktop() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := c.Param("profile")
		if err := utils.ValidateProfile(profile); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sess, err := h.sessions.Get(profile)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, session.ErrNotOpen) {
				status = http.StatusNotFound
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Set(desktopKey, sess.Desktop)
		c.Next()
	}
}

// desk returns the desktop stored by RequireDesktop
func desk(c *gin.Context) *desktop.Desktop {
	return c.MustGet(desktopKey).(*desktop.Desktop)
}

// scripted builds the dialog answers of a request: ?confirm=true answers
// yes to confirmations and ?input=<text> answers prompts.
func scripted(c *gin.Context) (*dialog.Scripted, error) {
	var answers dialog.Answers
	if raw := c.Query("confirm"); raw != "" {
		ok, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("confirm must be a boolean")
		}
		answers.Confirm = ok
	}
	if input, ok := c.GetQuery("input"); ok {
		answers.Input = &input
	}
	return dialog.NewScripted(answers), nil
}

// outcomeStatus maps an outcome onto a status code
func outcomeStatus(outcome types.Outcome) int {
	switch outcome {
	case types.OutcomeNotFound:
		return http.StatusNotFound
	case types.OutcomeDenied:
		return http.StatusForbidden
	default:
		return http.StatusOK
	}
}

// respondGated writes the result of a dialog-gated operation together with
// every dialog the operation showed
func (h *Handlers) respondGated(c *gin.Context, dlg *dialog.Scripted, outcome types.Outcome, err error, extra gin.H) {
	if err != nil {
		h.logger.Warn("Dialog failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "dialogs": dlg.Shown()})
		return
	}
	body := gin.H{
		"outcome": outcome,
		"applied": outcome.Applied(),
		"dialogs": dlg.Shown(),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(outcomeStatus(outcome), body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what, id string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found", "id": id})
}

// validID validates a path parameter, writing 400 on failure
func validID(c *gin.Context, param string) (string, bool) {
	id := c.Param(param)
	if err := utils.ValidateID(id, param, true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return id, true
}
