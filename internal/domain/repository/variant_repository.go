package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// VariantRepository persistencia de variantes SKU de un producto.
type VariantRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.SKUVariant, error)
	GetByID(ctx context.Context, id string) (*entity.SKUVariant, error)
	Insert(ctx context.Context, v *entity.SKUVariant) error
	// Update actualiza posición, SKU y precio de una variante conservada.
	Update(ctx context.Context, v *entity.SKUVariant) error
	Delete(ctx context.Context, ids []string) error
}
