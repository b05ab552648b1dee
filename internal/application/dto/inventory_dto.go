package dto

import "github.com/shopspring/decimal"

// DecrementStockRequest body para POST /api/inventory/decrement.
type DecrementStockRequest struct {
	VariantID string          `json:"variant_id" validate:"required,uuid"`
	Branch    string          `json:"branch" validate:"required,max=100"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference" validate:"max=100"`
}

// StockResponse existencias tras el movimiento.
type StockResponse struct {
	VariantID string          `json:"variant_id"`
	Branch    string          `json:"branch"`
	Quantity  decimal.Decimal `json:"quantity"`
}
