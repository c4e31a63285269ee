package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/yarntrade/backend/internal/application/catalog"
)

// ProductHandler serves the product and color endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers the product and color routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/white-yarns", h.ListWhiteYarns)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/colors", h.CreateColor)
		products.GET("/:id/colors", h.ListColors)
	}

	colors := rg.Group("/catalog/colors")
	{
		colors.PUT("/:id", h.UpdateColor)
		colors.DELETE("/:id", h.DeleteColor)
		colors.POST("/:id/discontinue", h.DiscontinueColor)
		colors.POST("/:id/reinstate", h.ReinstateColor)
	}
}

// Create creates a new yarn product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product's attributes
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns a paginated product listing
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListWhiteYarns returns the white yarn products usable as dyeing input
func (h *ProductHandler) ListWhiteYarns(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	yarns, err := h.products.ListWhiteYarns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, yarns)
}

// CreateColor adds a color under a product
func (h *ProductHandler) CreateColor(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	color, err := h.products.CreateColor(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, color)
}

// UpdateColorRequest updates a color's display attributes
type UpdateColorRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	ColorValue  string `json:"color_value" binding:"max=50"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateColor updates a color's name, swatch value and description
func (h *ProductHandler) UpdateColor(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	color, err := h.products.UpdateColor(c.Request.Context(), id, req.Name, req.ColorValue, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, color)
}

// DiscontinueColor takes a color off sale
func (h *ProductHandler) DiscontinueColor(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DiscontinueColor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReinstateColor puts a discontinued color back on sale
func (h *ProductHandler) ReinstateColor(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.ReinstateColor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteColor removes a color
func (h *ProductHandler) DeleteColor(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteColor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListColors lists the colors under a product
func (h *ProductHandler) ListColors(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	colors, err := h.products.ListColors(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, colors)
}
