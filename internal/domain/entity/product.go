package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product producto o soporte publicitario comercializable.
// BasePrice es el precio heredado por cada variante generada.
type Product struct {
	ID        string
	SKU       string // código base; las variantes lo extienden
	Name      string
	BasePrice decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductResource recurso de la receta de un producto. Variants llega con forma variable
// (texto JSON, objeto o arreglo) y se normaliza con variant.ParseAttributes.
type ProductResource struct {
	ProductID  string
	ResourceID string
	Name       string
	Variants   json.RawMessage
}
