package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// GetClipboard returns the staged items
func (h *Handlers) GetClipboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clipboard": desk(c).Files.Clipboard()})
}

// CopyItems stages snapshots of items for copying
func (h *Handlers) CopyItems(c *gin.Context) {
	h.stage(c, types.ClipboardCopy)
}

// CutItems stages items for moving
func (h *Handlers) CutItems(c *gin.Context) {
	h.stage(c, types.ClipboardCut)
}

func (h *Handlers) stage(c *gin.Context, op types.ClipboardOp) {
	var req types.ClipboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateIDs(req.IDs, "ids"); err != nil {
		badRequest(c, err)
		return
	}

	files := desk(c).Files
	var staged int
	if op == types.ClipboardCut {
		staged = files.CutItems(req.IDs)
	} else {
		staged = files.CopyItems(req.IDs)
	}
	c.JSON(http.StatusOK, gin.H{"staged": staged, "clipboard": files.Clipboard()})
}

// PasteItems pastes the clipboard into parentId (null pastes at the root)
func (h *Handlers) PasteItems(c *gin.Context) {
	var req types.PasteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.ParentID != nil {
		if err := utils.ValidateID(*req.ParentID, "parentId", true); err != nil {
			badRequest(c, err)
			return
		}
	}

	files := desk(c).Files
	pasted := files.PasteItems(req.ParentID)
	c.JSON(http.StatusOK, gin.H{
		"items":     pasted,
		"count":     len(pasted),
		"clipboard": files.Clipboard(),
	})
}
