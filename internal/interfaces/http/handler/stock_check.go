package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/yarntrade/backend/internal/application/inventory"
)

// StockCheckHandler serves the stock check endpoints
type StockCheckHandler struct {
	BaseHandler
	checks *inventoryapp.StockCheckService
}

// NewStockCheckHandler creates a new stock check handler
func NewStockCheckHandler(checks *inventoryapp.StockCheckService) *StockCheckHandler {
	return &StockCheckHandler{checks: checks}
}

// RegisterRoutes registers the stock check routes
func (h *StockCheckHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checks := rg.Group("/inventory/stock-checks")
	{
		checks.POST("", h.Create)
		checks.GET("", h.List)
		checks.GET("/:id", h.Get)
		checks.POST("/:id/start", h.StartCounting)
		checks.POST("/:id/items/:itemID/count", h.RecordCount)
		checks.POST("/:id/complete", h.Complete)
		checks.POST("/:id/cancel", h.Cancel)
		checks.POST("/:id/adjustment", h.GenerateAdjustment)
	}
}

// Create plans a stock check over a set of batches
func (h *StockCheckHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	check, err := h.checks.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, check)
}

// Get returns a single stock check with its lines
func (h *StockCheckHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.checks.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// List returns a paginated stock check listing
func (h *StockCheckHandler) List(c *gin.Context) {
	var filter inventoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.checks.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// StartCounting moves a planned check into counting
func (h *StockCheckHandler) StartCounting(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.checks.StartCounting(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// RecordCount records the actual quantity counted for one line
func (h *StockCheckHandler) RecordCount(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemID")
	if !ok {
		return
	}

	var req inventoryapp.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	check, err := h.checks.RecordCount(c.Request.Context(), id, itemID, req.ActualQuantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// Complete finishes counting and freezes the recorded differences
func (h *StockCheckHandler) Complete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.checks.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// Cancel abandons a check before completion
func (h *StockCheckHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	check, err := h.checks.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

// GenerateAdjustment derives an adjustment order from a completed check's
// differences
func (h *StockCheckHandler) GenerateAdjustment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	adjustment, err := h.checks.GenerateAdjustment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, adjustment)
}
