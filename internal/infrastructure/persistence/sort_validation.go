package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"type":          true,
	"unit":          true,
	"is_white_yarn": true,
}

// ColorSortFields contains allowed sort fields for colors
var ColorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// BatchSortFields contains allowed sort fields for batches
var BatchSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"code":             true,
	"production_date":  true,
	"supplier_name":    true,
	"purchase_price":   true,
	"stock_quantity":   true,
	"initial_quantity": true,
	"stock_location":   true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"supplier_name": true,
	"order_date":    true,
	"status":        true,
	"total_amount":  true,
	"paid_amount":   true,
	"unpaid_amount": true,
	"stocked_in_at": true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"order_number":      true,
	"customer_id":       true,
	"customer_name":     true,
	"order_date":        true,
	"status":            true,
	"total_amount":      true,
	"received_amount":   true,
	"unreceived_amount": true,
	"stocked_out_at":    true,
}

// DyeingOrderSortFields contains allowed sort fields for dyeing orders
var DyeingOrderSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"order_number":     true,
	"product_name":     true,
	"factory_id":       true,
	"factory_name":     true,
	"status":           true,
	"total_quantity":   true,
	"total_amount":     true,
	"processing_price": true,
	"stocked_in_at":    true,
}

// AdjustmentOrderSortFields contains allowed sort fields for adjustment orders
var AdjustmentOrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"type":           true,
	"status":         true,
	"total_quantity": true,
	"completed_at":   true,
}

// StockCheckSortFields contains allowed sort fields for stock checks
var StockCheckSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"name":           true,
	"stock_location": true,
	"status":         true,
	"total_items":    true,
	"counted_items":  true,
	"completed_at":   true,
}

// AccountReceivableSortFields contains allowed sort fields for receivables
var AccountReceivableSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"source_order_no":  true,
	"customer_id":      true,
	"customer_name":    true,
	"principal_amount": true,
	"paid_amount":      true,
	"unpaid_amount":    true,
	"status":           true,
	"settled_at":       true,
}

// AccountPayableSortFields contains allowed sort fields for payables
var AccountPayableSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"source_order_no":  true,
	"supplier_id":      true,
	"supplier_name":    true,
	"principal_amount": true,
	"paid_amount":      true,
	"unpaid_amount":    true,
	"status":           true,
	"settled_at":       true,
}
