package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	tradeapp "github.com/yarntrade/backend/internal/application/trade"
)

// DyeingOrderHandler serves the dyeing order endpoints
type DyeingOrderHandler struct {
	BaseHandler
	orders *tradeapp.DyeingOrderService
}

// NewDyeingOrderHandler creates a new dyeing order handler
func NewDyeingOrderHandler(orders *tradeapp.DyeingOrderService) *DyeingOrderHandler {
	return &DyeingOrderHandler{orders: orders}
}

// RegisterRoutes registers the dyeing order routes
func (h *DyeingOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/trade/dyeing-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/complete", h.Complete)
		orders.POST("/:id/stock-in", h.StockIn)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/processing-price", h.UpdateProcessingPrice)
	}
}

// Create creates a dyeing order, reserving grey yarn for the factory
func (h *DyeingOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateDyeingOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns a single dyeing order with its lines
func (h *DyeingOrderHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns a paginated dyeing order listing
func (h *DyeingOrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Ship marks the grey yarn as sent to the dyeing factory
func (h *DyeingOrderHandler) Ship(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Ship(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CompleteDyeingRequest records when the factory finished dyeing
type CompleteDyeingRequest struct {
	ActualDate time.Time `json:"actual_date" binding:"required"`
}

// Complete marks the dyeing as finished at the factory
func (h *DyeingOrderHandler) Complete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CompleteDyeingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.Complete(c.Request.Context(), id, req.ActualDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DyedStockInRequest places the returned dyed yarn into a stock location
type DyedStockInRequest struct {
	StockLocation string `json:"stock_location" binding:"max=100"`
}

// StockIn books the returned dyed yarn in as new batches
func (h *DyeingOrderHandler) StockIn(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req DyedStockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.StockIn(c.Request.Context(), id, req.StockLocation)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels a dyeing order, returning reserved grey yarn
func (h *DyeingOrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ProcessingPriceRequest updates the per-unit dyeing fee
type ProcessingPriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// UpdateProcessingPrice updates the dyeing fee before completion
func (h *DyeingOrderHandler) UpdateProcessingPrice(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ProcessingPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.UpdateProcessingPrice(c.Request.Context(), id, req.Price)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
