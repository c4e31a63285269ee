package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/yarntrade/backend/internal/application/inventory"
)

// AdjustmentHandler serves the stock adjustment endpoints
type AdjustmentHandler struct {
	BaseHandler
	adjustments *inventoryapp.AdjustmentService
}

// NewAdjustmentHandler creates a new adjustment handler
func NewAdjustmentHandler(adjustments *inventoryapp.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments}
}

// RegisterRoutes registers the adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adjustments := rg.Group("/inventory/adjustments")
	{
		adjustments.POST("", h.Create)
		adjustments.GET("", h.List)
		adjustments.GET("/:id", h.Get)
		adjustments.DELETE("/:id", h.Delete)
		adjustments.POST("/:id/items", h.AddItem)
		adjustments.DELETE("/:id/items/:itemID", h.RemoveItem)
		adjustments.POST("/:id/complete", h.Complete)
	}
}

// Create creates a draft adjustment order
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.adjustments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns a single adjustment order with its lines
func (h *AdjustmentHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.adjustments.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns a paginated adjustment order listing
func (h *AdjustmentHandler) List(c *gin.Context) {
	var filter inventoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete removes a draft adjustment order
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adjustments.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem adds a correction line to a draft adjustment order
func (h *AdjustmentHandler) AddItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.AdjustmentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.adjustments.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveItem removes a correction line from a draft adjustment order
func (h *AdjustmentHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemID")
	if !ok {
		return
	}

	order, err := h.adjustments.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Complete applies every correction line to batch stock
func (h *AdjustmentHandler) Complete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.adjustments.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
