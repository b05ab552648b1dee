package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock existencias de una variante en una sucursal.
type Stock struct {
	VariantID string
	Branch    string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
