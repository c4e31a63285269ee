package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/yarntrade/backend/internal/application/trade"
)

// SalesOrderHandler serves the sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	orders *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(orders *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orders: orders}
}

// RegisterRoutes registers the sales order routes
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/trade/sales-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/:id/submit", h.SubmitForReview)
		orders.POST("/:id/approve", h.Approve)
		orders.POST("/:id/stock-out", h.StockOut)
		orders.POST("/:id/void", h.Void)
		orders.POST("/:id/receipts", h.RecordReceipt)
		orders.PUT("/:id/items/:itemID", h.UpdateItem)
		orders.DELETE("/:id/items/:itemID", h.RemoveItem)
	}
}

// Create creates a sales order; unless saved as draft it is stocked out
// immediately
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
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

// Get returns a single sales order with its lines
func (h *SalesOrderHandler) Get(c *gin.Context) {
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

// List returns a paginated sales order listing
func (h *SalesOrderHandler) List(c *gin.Context) {
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

// Delete removes a draft sales order
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SubmitForReview moves a draft order to pending review
func (h *SalesOrderHandler) SubmitForReview(c *gin.Context) {
	h.transition(c, h.orders.SubmitForReview)
}

// Approve marks a pending order as reviewed
func (h *SalesOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.orders.Approve)
}

// StockOut deducts the order's lines from batch stock
func (h *SalesOrderHandler) StockOut(c *gin.Context) {
	h.transition(c, h.orders.StockOut)
}

// Void voids an order, returning its stock when already stocked out
func (h *SalesOrderHandler) Void(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.Void(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RecordReceipt records a receipt collected against the order
func (h *SalesOrderHandler) RecordReceipt(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.RecordReceipt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateItem updates one line of a draft order
func (h *SalesOrderHandler) UpdateItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemID")
	if !ok {
		return
	}

	var req tradeapp.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveItem removes one line from a draft order
func (h *SalesOrderHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemID")
	if !ok {
		return
	}

	order, err := h.orders.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

func (h *SalesOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*tradeapp.SalesOrderResponse, error)) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
