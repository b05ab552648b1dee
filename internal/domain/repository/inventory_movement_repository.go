package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// InventoryMovementRepository registro de movimientos de stock.
type InventoryMovementRepository interface {
	Create(ctx context.Context, mov *entity.InventoryMovement) error
}
