package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	// ListResources devuelve la receta del producto (join producto/recurso).
	ListResources(ctx context.Context, productID string) ([]*entity.ProductResource, error)
}
