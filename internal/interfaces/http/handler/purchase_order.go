package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/yarntrade/backend/internal/application/trade"
)

// PurchaseOrderHandler serves the purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orders *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(orders *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders}
}

// RegisterRoutes registers the purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/trade/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/:id/submit", h.SubmitForReview)
		orders.POST("/:id/approve", h.Approve)
		orders.POST("/:id/stock-in", h.StockIn)
		orders.POST("/:id/void", h.Void)
		orders.POST("/:id/payments", h.RecordPayment)
		orders.PUT("/:id/items/:itemID", h.UpdateItem)
		orders.DELETE("/:id/items/:itemID", h.RemoveItem)
	}
}

// Create creates a purchase order; unless saved as draft it is stocked in
// immediately
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
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

// Get returns a single purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
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

// List returns a paginated purchase order listing
func (h *PurchaseOrderHandler) List(c *gin.Context) {
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

// Delete removes a draft purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
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
func (h *PurchaseOrderHandler) SubmitForReview(c *gin.Context) {
	h.transition(c, h.orders.SubmitForReview)
}

// Approve marks a pending order as reviewed
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transition(c, h.orders.Approve)
}

// StockIn books the order's lines into batch stock
func (h *PurchaseOrderHandler) StockIn(c *gin.Context) {
	h.transition(c, h.orders.StockIn)
}

// Void voids an order, reversing its stock effect when already stocked in
func (h *PurchaseOrderHandler) Void(c *gin.Context) {
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

// RecordPayment records a payment made against the order
func (h *PurchaseOrderHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req tradeapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	order, err := h.orders.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateItem updates one line of a draft order
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
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
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
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

func (h *PurchaseOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)) {
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
