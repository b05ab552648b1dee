package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por variante+sucursal.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(ctx context.Context, variantID, branch string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, variantID, branch string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
}
