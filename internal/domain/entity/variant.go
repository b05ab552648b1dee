package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKUVariant combinación concreta persistida de un producto.
// Key identifica la combinación por contenido; Position es el índice en la generación.
type SKUVariant struct {
	ID            string
	ProductID     string
	SKU           string
	Key           string
	Attributes    map[string]string
	Position      int
	Price         decimal.Decimal
	PriceOverride bool // precio editado manualmente; se conserva al regenerar
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
