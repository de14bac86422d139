package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

// ListItems lists the visible children of ?parent= (omitted means root)
func (h *Handlers) ListItems(c *gin.Context) {
	parent := c.Query("parent")
	if err := utils.ValidateID(parent, "parent", false); err != nil {
		badRequest(c, err)
		return
	}
	items := desk(c).Files.GetItemsByParent(types.Parent(parent))
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// GetItem returns an item with its display path
func (h *Handlers) GetItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	files := desk(c).Files
	item, found := files.GetItem(id)
	if !found {
		notFound(c, "item", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "path": files.PathString(id)})
}

// GetItemPath returns the display path of an item
func (h *Handlers) GetItemPath(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	files := desk(c).Files
	if _, found := files.GetItem(id); !found {
		notFound(c, "item", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "path": files.PathString(id)})
}

// CreateFolder creates a folder. Without a name the "New Folder" prompt
// runs, answered by ?input=.
func (h *Handlers) CreateFolder(c *gin.Context) {
	h.create(c, false)
}

// CreateFile creates a file. Without a name the "New File" prompt runs,
// answered by ?input=.
func (h *Handlers) CreateFile(c *gin.Context) {
	h.create(c, true)
}

func (h *Handlers) create(c *gin.Context, file bool) {
	var req types.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	d := desk(c)
	if !h.validParent(c, d, req.ParentID) {
		return
	}
	if file {
		if err := utils.ValidateContent(req.Content); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
	}

	if strings.TrimSpace(req.Name) == "" {
		dlg, err := scripted(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		var (
			item    *types.Item
			outcome types.Outcome
		)
		if file {
			item, outcome, err = d.NewTextFile(c.Request.Context(), dlg, req.ParentID)
			if item != nil && req.Content != "" {
				d.Files.UpdateFileContent(item.ID, req.Content)
				*item, _ = d.Files.GetItem(item.ID)
			}
		} else {
			item, outcome, err = d.NewFolder(c.Request.Context(), dlg, req.ParentID)
		}
		h.respondGated(c, dlg, outcome, err, gin.H{"item": item})
		return
	}

	name := utils.SanitizeName(req.Name)
	if err := utils.ValidateName(name, "name"); err != nil {
		badRequest(c, err)
		return
	}

	var item types.Item
	if file {
		item = d.Files.CreateFile(name, req.Content, req.ParentID)
	} else {
		item = d.Files.CreateFolder(name, req.ParentID)
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// validParent checks that parentID is nil or an existing folder
func (h *Handlers) validParent(c *gin.Context, d *desktop.Desktop, parentID *string) bool {
	if parentID == nil {
		return true
	}
	if err := utils.ValidateID(*parentID, "parentId", true); err != nil {
		badRequest(c, err)
		return false
	}
	parent, found := d.Files.GetItem(*parentID)
	if !found || parent.IsDeleted {
		notFound(c, "parent folder", *parentID)
		return false
	}
	if !parent.IsFolder() {
		badRequest(c, errors.New("parent is not a folder"))
		return false
	}
	return true
}

// UpdateItem renames and/or moves an item
func (h *Handlers) UpdateItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	var req types.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	move := len(req.ParentID) > 0
	if req.Name == nil && !move {
		badRequest(c, errors.New("nothing to update"))
		return
	}

	d := desk(c)
	if _, found := d.Files.GetItem(id); !found {
		notFound(c, "item", id)
		return
	}

	// validate everything before the first mutation
	var name string
	if req.Name != nil {
		name = utils.SanitizeName(*req.Name)
		if err := utils.ValidateName(name, "name"); err != nil {
			badRequest(c, err)
			return
		}
	}
	var parentID *string
	if move {
		var err error
		if parentID, err = parseParent(req.ParentID); err != nil {
			badRequest(c, err)
			return
		}
		if !h.validParent(c, d, parentID) {
			return
		}
		if !d.Files.MoveItem(id, parentID) {
			c.JSON(http.StatusConflict, gin.H{"error": "cannot move an item into itself or its descendants", "id": id})
			return
		}
	}
	if req.Name != nil {
		d.Files.RenameItem(id, name)
	}

	item, _ := d.Files.GetItem(id)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// parseParent decodes a parentId field: null means root
func parseParent(raw []byte) (*string, error) {
	if strings.TrimSpace(string(raw)) == "null" {
		return nil, nil
	}
	var parent string
	if err := sonic.Unmarshal(raw, &parent); err != nil {
		return nil, errors.New("parentId must be a string or null")
	}
	return types.Parent(parent), nil
}

// RenameItemPrompt runs the "Rename Item" prompt, answered by ?input=
func (h *Handlers) RenameItemPrompt(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	d := desk(c)
	outcome, err := d.Rename(c.Request.Context(), dlg, id)
	extra := gin.H{}
	if item, found := d.Files.GetItem(id); found {
		extra["item"] = item
	}
	h.respondGated(c, dlg, outcome, err, extra)
}

// UpdateContent replaces a file's content
func (h *Handlers) UpdateContent(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	var req types.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	d := desk(c)
	if !d.Files.UpdateFileContent(id, req.Content) {
		notFound(c, "item", id)
		return
	}
	item, _ := d.Files.GetItem(id)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem moves an item to the recycle bin after confirmation
// (?confirm=true). Protected items are refused with 403.
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := desk(c).Files.DeleteItem(c.Request.Context(), dlg, id)
	h.respondGated(c, dlg, outcome, err, gin.H{"id": id})
}

// OpenItem opens an item in the app chosen by its type
func (h *Handlers) OpenItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	win, outcome, err := desk(c).OpenItem(c.Request.Context(), dlg, id)
	h.respondGated(c, dlg, outcome, err, gin.H{"window": win})
}

// Search finds visible items whose name contains ?q=
func (h *Handlers) Search(c *gin.Context) {
	query := c.Query("q")
	if err := utils.ValidatePattern(query); err != nil {
		badRequest(c, err)
		return
	}
	items := desk(c).Files.Search(query)
	c.JSON(http.StatusOK, gin.H{"query": query, "items": items, "count": len(items)})
}

// Glob matches display paths against ?pattern= (doublestar syntax)
func (h *Handlers) Glob(c *gin.Context) {
	pattern := c.Query("pattern")
	if err := utils.ValidatePattern(pattern); err != nil {
		badRequest(c, err)
		return
	}
	matches, err := desk(c).Files.Glob(pattern)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pattern": pattern, "matches": matches, "count": len(matches)})
}

// ItemStats returns file system statistics
func (h *Handlers) ItemStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": desk(c).Files.Stats()})
}
