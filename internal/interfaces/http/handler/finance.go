package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/yarntrade/backend/internal/application/finance"
)

// FinanceHandler serves the receivable and payable endpoints
type FinanceHandler struct {
	BaseHandler
	accounts *financeapp.AccountService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(accounts *financeapp.AccountService) *FinanceHandler {
	return &FinanceHandler{accounts: accounts}
}

// RegisterRoutes registers the finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receivables := rg.Group("/finance/receivables")
	{
		receivables.GET("", h.ListReceivables)
		receivables.GET("/:id", h.GetReceivable)
		receivables.POST("/:id/receipts", h.RecordReceipt)
	}

	payables := rg.Group("/finance/payables")
	{
		payables.GET("", h.ListPayables)
		payables.GET("/:id", h.GetPayable)
		payables.POST("/:id/payments", h.RecordPayment)
	}

	rg.GET("/finance/customers/:id/outstanding", h.CustomerOutstanding)
	rg.GET("/finance/suppliers/:id/outstanding", h.SupplierOutstanding)
}

// GetReceivable returns a receivable account with its receipt records
func (h *FinanceHandler) GetReceivable(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.GetReceivable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListReceivables returns a paginated receivable listing
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	var filter financeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accounts.ListReceivables(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RecordReceipt applies a customer receipt to a receivable account
func (h *FinanceHandler) RecordReceipt(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	account, err := h.accounts.RecordReceipt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// CustomerOutstanding returns a customer's total unpaid receivable amount
func (h *FinanceHandler) CustomerOutstanding(c *gin.Context) {
	customerID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	total, err := h.accounts.CustomerOutstanding(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"customer_id": customerID, "outstanding": total})
}

// GetPayable returns a payable account with its payment records
func (h *FinanceHandler) GetPayable(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.GetPayable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// ListPayables returns a paginated payable listing
func (h *FinanceHandler) ListPayables(c *gin.Context) {
	var filter financeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accounts.ListPayables(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RecordPayment applies a supplier payment to a payable account
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c, err)
		return
	}

	account, err := h.accounts.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// SupplierOutstanding returns a supplier's total unpaid payable amount
func (h *FinanceHandler) SupplierOutstanding(c *gin.Context) {
	supplierID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	total, err := h.accounts.SupplierOutstanding(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"supplier_id": supplierID, "outstanding": total})
}
