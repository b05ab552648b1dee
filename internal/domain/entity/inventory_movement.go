package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// InventoryMovement movimiento de stock de una variante en una sucursal.
type InventoryMovement struct {
	ID           string
	VariantID    string
	Branch       string
	Type         string
	Quantity     decimal.Decimal
	BalanceAfter decimal.Decimal
	Reference    string // p. ej. ID de la cotización u orden de producción
	CreatedAt    time.Time
	CreatedBy    string
}
