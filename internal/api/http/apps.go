package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// ListApps lists installed apps; ?all=true adds the full catalog
func (h *Handlers) ListApps(c *gin.Context) {
	apps := desk(c).Apps
	body := gin.H{
		"apps":  apps.List(),
		"stats": apps.Stats(),
	}
	if c.Query("all") == "true" {
		body["catalog"] = apps.Catalog().Apps
	}
	c.JSON(http.StatusOK, body)
}

// ListDeletedApps returns the uninstall log
func (h *Handlers) ListDeletedApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": desk(c).Apps.DeletedApps()})
}

// InstallApp installs a catalog app and creates its Program Files folder
func (h *Handlers) InstallApp(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	d := desk(c)
	if d.Apps.IsInstalled(appID) {
		c.JSON(http.StatusConflict, gin.H{"error": "app already installed", "appId": appID})
		return
	}
	app, installed := d.InstallApp(appID)
	if !installed {
		notFound(c, "app", appID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"app": app})
}

// LaunchApp opens a window for an app. Unknown apps still get a window
// flagged resolved=false.
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	var props types.Props
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&props); err != nil {
			badRequest(c, err)
			return
		}
	}
	win := desk(c).Launch(appID, props)
	c.JSON(http.StatusCreated, gin.H{"window": win})
}

// UninstallApp runs the uninstall flow: confirmations come from ?confirm=
func (h *Handlers) UninstallApp(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := desk(c).UninstallApp(c.Request.Context(), dlg, appID)
	h.respondGated(c, dlg, outcome, err, gin.H{"appId": appID})
}

// ResetApps restores the default app set after confirmation
func (h *Handlers) ResetApps(c *gin.Context) {
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	d := desk(c)
	outcome, err := d.ResetApps(c.Request.Context(), dlg)
	h.respondGated(c, dlg, outcome, err, gin.H{"apps": d.Apps.List()})
}

// ListPins returns the taskbar shortcuts
func (h *Handlers) ListPins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pins": desk(c).Apps.Pinned()})
}

// ReplacePins replaces the taskbar shortcuts; duplicates are dropped
func (h *Handlers) ReplacePins(c *gin.Context) {
	var pins []types.PinnedApp
	if err := c.ShouldBindJSON(&pins); err != nil {
		badRequest(c, err)
		return
	}
	for _, p := range pins {
		if err := utils.ValidateID(p.ID, "id", true); err != nil {
			badRequest(c, err)
			return
		}
	}
	apps := desk(c).Apps
	apps.SetPinned(pins)
	c.JSON(http.StatusOK, gin.H{"pins": apps.Pinned()})
}

// PinApp pins an installed app to the taskbar
func (h *Handlers) PinApp(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	apps := desk(c).Apps
	app, found := apps.Get(appID)
	if !found {
		notFound(c, "app", appID)
		return
	}
	pinned := apps.Pin(types.PinnedApp{ID: app.ID, Name: app.Name, Icon: app.Icon})
	c.JSON(http.StatusOK, gin.H{"pinned": pinned, "pins": apps.Pinned()})
}

// UnpinApp removes a taskbar shortcut
func (h *Handlers) UnpinApp(c *gin.Context) {
	appID, ok := validID(c, "appId")
	if !ok {
		return
	}
	apps := desk(c).Apps
	if !apps.Unpin(appID) {
		notFound(c, "pin", appID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pins": apps.Pinned()})
}
