package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the desktop API on router. stream, when not nil,
// serves the WebSocket event stream of a desktop.
func RegisterRoutes(router gin.IRouter, h *Handlers, stream gin.HandlerFunc) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Sessions
	router.GET("/desktops", h.ListDesktops)
	router.POST("/desktops/:profile", h.OpenDesktop)
	router.DELETE("/desktops/:profile", h.CloseDesktop)
	if stream != nil {
		router.GET("/desktops/:profile/stream", stream)
	}

	d := router.Group("/desktops/:profile", h.RequireDesktop())
	d.POST("/flush", h.FlushDesktop)

	// Windows
	d.GET("/windows", h.ListWindows)
	d.POST("/windows", h.OpenWindow)
	d.GET("/windows/:id", h.GetWindow)
	d.DELETE("/windows/:id", h.CloseWindow)
	d.POST("/windows/:id/minimize", h.MinimizeWindow)
	d.POST("/windows/:id/restore", h.RestoreWindow)
	d.POST("/windows/:id/maximize", h.MaximizeWindow)
	d.POST("/windows/:id/focus", h.FocusWindow)
	d.PUT("/windows/:id/position", h.MoveWindow)
	d.PUT("/windows/:id/size", h.ResizeWindow)
	d.PUT("/viewport", h.SetViewport)

	// Files
	d.GET("/items", h.ListItems)
	d.GET("/items/:id", h.GetItem)
	d.GET("/items/:id/path", h.GetItemPath)
	d.PATCH("/items/:id", h.UpdateItem)
	d.PUT("/items/:id/content", h.UpdateContent)
	d.DELETE("/items/:id", h.DeleteItem)
	d.POST("/items/:id/open", h.OpenItem)
	d.POST("/items/:id/rename", h.RenameItemPrompt)
	d.POST("/folders", h.CreateFolder)
	d.POST("/files", h.CreateFile)
	d.POST("/upload", h.Upload)
	d.GET("/search", h.Search)
	d.GET("/glob", h.Glob)
	d.GET("/stats", h.ItemStats)

	// Recycle bin
	d.GET("/recycle-bin", h.ListRecycleBin)
	d.POST("/recycle-bin/:id/restore", h.RestoreItem)
	d.DELETE("/recycle-bin/:id", h.PermanentlyDeleteItem)
	d.DELETE("/recycle-bin", h.EmptyRecycleBin)

	// Clipboard
	d.GET("/clipboard", h.GetClipboard)
	d.POST("/clipboard/copy", h.CopyItems)
	d.POST("/clipboard/cut", h.CutItems)
	d.POST("/clipboard/paste", h.PasteItems)

	// Apps
	d.GET("/apps", h.ListApps)
	d.GET("/apps/deleted", h.ListDeletedApps)
	d.POST("/apps/reset", h.ResetApps)
	d.POST("/apps/:appId/install", h.InstallApp)
	d.POST("/apps/:appId/launch", h.LaunchApp)
	d.DELETE("/apps/:appId", h.UninstallApp)
	d.DELETE("/apps/:appId/windows", h.CloseAppWindows)
	d.GET("/pins", h.ListPins)
	d.PUT("/pins", h.ReplacePins)
	d.POST("/pins/:appId", h.PinApp)
	d.DELETE("/pins/:appId", h.UnpinApp)
}
