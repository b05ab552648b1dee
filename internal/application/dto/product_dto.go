package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateVariantsResponse resultado de regenerar las variantes de un producto.
// Kept son variantes existentes cuya combinación se volvió a generar (conservan ID y precio).
type GenerateVariantsResponse struct {
	ProductID             string `json:"product_id"`
	CombinationsGenerated int    `json:"combinations_generated"`
	Created               int    `json:"created"`
	Kept                  int    `json:"kept"`
	Removed               int    `json:"removed"`
	DryRun                bool   `json:"dry_run,omitempty"`
}

// VariantResponse salida de una variante SKU.
type VariantResponse struct {
	ID            string            `json:"id"`
	ProductID     string            `json:"product_id"`
	SKU           string            `json:"sku"`
	Attributes    map[string]string `json:"attributes"`
	Position      int               `json:"position"`
	Price         decimal.Decimal   `json:"price"`
	PriceOverride bool              `json:"price_override"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// VariantListResponse variantes de un producto en orden de generación.
type VariantListResponse struct {
	Items []VariantResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
