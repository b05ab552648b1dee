package inventory

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		ctx context.Context,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
