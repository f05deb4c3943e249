package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UpdateRequest is the POST /inventory body. Change is a pointer so a
// zero change still passes the required binding.
type UpdateRequest struct {
	Item   string `json:"item" binding:"required"`
	Change *int   `json:"change" binding:"required"`
}

// Handler serves the inventory HTTP surface.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/inventory", h.GetInventory)
	router.POST("/inventory", h.UpdateInventory)
}

// GetInventory returns the full current mapping.
func (h *Handler) GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// UpdateInventory applies a signed change to one item and returns the
// updated mapping, or 400 with a detail message when the item is unknown
// or the change would drive the count negative.
func (h *Handler) UpdateInventory(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	state, err := h.store.Apply(req.Item, *req.Change)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}
