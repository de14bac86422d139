package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/session"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// OpenDesktop opens (or returns the already open) desktop of a profile
func (h *Handlers) OpenDesktop(c *gin.Context) {
	profile := c.Param("profile")
	if err := utils.ValidateProfile(profile); err != nil {
		badRequest(c, err)
		return
	}

	sess, opened, err := h.sessions.Open(c.Request.Context(), profile)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if opened {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"session": sess.Info(), "opened": opened})
}

// CloseDesktop flushes and closes the desktop of a profile
func (h *Handlers) CloseDesktop(c *gin.Context) {
	profile := c.Param("profile")
	if err := h.sessions.Close(c.Request.Context(), profile); err != nil {
		if errors.Is(err, session.ErrNotOpen) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// ListDesktops lists open desktops and the profiles with saved state
func (h *Handlers) ListDesktops(c *gin.Context) {
	saved, err := h.sessions.Saved(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"open":  h.sessions.List(),
		"saved": saved,
	})
}

// FlushDesktop writes pending changes of a profile immediately
func (h *Handlers) FlushDesktop(c *gin.Context) {
	if err := h.sessions.Flush(c.Param("profile")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
