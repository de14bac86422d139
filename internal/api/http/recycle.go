package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListRecycleBin lists deleted items
func (h *Handlers) ListRecycleBin(c *gin.Context) {
	items := desk(c).Files.GetRecycleBinItems()
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// RestoreItem takes an item out of the recycle bin
func (h *Handlers) RestoreItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	d := desk(c)
	if !d.Files.RestoreItem(id) {
		notFound(c, "deleted item", id)
		return
	}
	item, _ := d.Files.GetItem(id)
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// PermanentlyDeleteItem removes an item for good after confirmation
func (h *Handlers) PermanentlyDeleteItem(c *gin.Context) {
	id, ok := validID(c, "id")
	if !ok {
		return
	}
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := desk(c).Files.PermanentlyDeleteItem(c.Request.Context(), dlg, id)
	h.respondGated(c, dlg, outcome, err, gin.H{"id": id})
}

// EmptyRecycleBin removes every deleted item after confirmation
func (h *Handlers) EmptyRecycleBin(c *gin.Context) {
	dlg, err := scripted(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := desk(c).Files.EmptyRecycleBin(c.Request.Context(), dlg)
	h.respondGated(c, dlg, outcome, err, nil)
}
