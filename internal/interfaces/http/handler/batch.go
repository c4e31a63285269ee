package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/yarntrade/backend/internal/application/catalog"
	"github.com/yarntrade/backend/internal/domain/catalog"
)

// BatchHandler serves the batch and stock endpoints
type BatchHandler struct {
	BaseHandler
	batches *catalogapp.BatchService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(batches *catalogapp.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// RegisterRoutes registers the batch routes
func (h *BatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	colors := rg.Group("/catalog/colors/:id")
	{
		colors.POST("/batches", h.Create)
		colors.GET("/batches", h.List)
		colors.GET("/batches/in-stock", h.ListWithStock)
		colors.GET("/stock-summary", h.StockSummary)
	}

	batches := rg.Group("/catalog/batches")
	{
		batches.GET("/:id", h.Get)
		batches.PUT("/:id", h.Update)
		batches.DELETE("/:id", h.Delete)
		batches.POST("/:id/increase-stock", h.IncreaseStock)
		batches.POST("/:id/decrease-stock", h.DecreaseStock)
		batches.POST("/:id/set-stock", h.SetStock)
	}
}

// Create registers a new batch under a color
func (h *BatchHandler) Create(c *gin.Context) {
	colorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	batch, err := h.batches.CreateBatch(c.Request.Context(), colorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// Get returns a single batch
func (h *BatchHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	batch, err := h.batches.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// UpdateBatchRequest updates a batch's descriptive attributes
type UpdateBatchRequest struct {
	ProductionDate *time.Time      `json:"production_date"`
	SupplierID     *uuid.UUID      `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name" binding:"max=200"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	StockLocation  string          `json:"stock_location" binding:"max=100"`
	Remark         string          `json:"remark" binding:"max=2000"`
	PieceCount     int             `json:"piece_count"`
	LooseWeight    decimal.Decimal `json:"loose_weight"`
}

// Update updates a batch's descriptive attributes
func (h *BatchHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	batch, err := h.batches.UpdateBatch(c.Request.Context(), id, catalog.BatchAttributes{
		ProductionDate: req.ProductionDate,
		SupplierID:     req.SupplierID,
		SupplierName:   req.SupplierName,
		PurchasePrice:  req.PurchasePrice,
		StockLocation:  req.StockLocation,
		Remark:         req.Remark,
		PieceCount:     req.PieceCount,
		LooseWeight:    req.LooseWeight,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Delete removes a batch
func (h *BatchHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.batches.DeleteBatch(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// IncreaseStock adds to a batch's stock balance
func (h *BatchHandler) IncreaseStock(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.StockMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	batch, err := h.batches.IncreaseStock(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// DecreaseStock subtracts from a batch's stock balance
func (h *BatchHandler) DecreaseStock(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.StockMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	batch, err := h.batches.DecreaseStock(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// SetStock overrides a batch's stock balance
func (h *BatchHandler) SetStock(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.StockOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	batch, err := h.batches.SetStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// List lists the batches under a color
func (h *BatchHandler) List(c *gin.Context) {
	colorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.batches.ListBatches(c.Request.Context(), colorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// ListWithStock lists a color's batches that still hold stock, oldest first
func (h *BatchHandler) ListWithStock(c *gin.Context) {
	colorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	batches, err := h.batches.ListBatchesWithStock(c.Request.Context(), colorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// StockSummary returns the total stock across a color's batches
func (h *BatchHandler) StockSummary(c *gin.Context) {
	colorID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	total, err := h.batches.ColorStockSummary(c.Request.Context(), colorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"color_id": colorID, "total_stock": total})
}
