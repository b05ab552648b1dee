package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// DecrementStockUseCase descuenta existencias de una variante en una sucursal.
// La fila de stock se bloquea (SELECT FOR UPDATE) para que dos salidas concurrentes
// no dejen saldo negativo.
type DecrementStockUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	stockRepo   repository.StockRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewDecrementStockUseCase construye el caso de uso.
func NewDecrementStockUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	stockRepo repository.StockRepository,
	log zerolog.Logger,
) *DecrementStockUseCase {
	return &DecrementStockUseCase{
		txRunner:    txRunner,
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		log:         log.With().Str("usecase", "decrement_stock").Logger(),
		now:         time.Now,
	}
}

// Decrement registra una salida (OUT) de qty unidades y devuelve el saldo resultante.
func (uc *DecrementStockUseCase) Decrement(ctx context.Context, userID string, in dto.DecrementStockRequest) (*dto.StockResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	branch := strings.TrimSpace(in.Branch)
	if branch == "" {
		return nil, domain.NewValidationError("branch", "es requerido")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}

	v, err := uc.variantRepo.GetByID(ctx, in.VariantID)
	if err != nil {
		return nil, fmt.Errorf("obtener variante: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: variante %s", domain.ErrNotFound, in.VariantID)
	}

	now := uc.now()
	var out *dto.StockResponse
	err = uc.txRunner.RunInventory(ctx, func(ctx context.Context, stockRepo repository.StockRepository, movRepo repository.InventoryMovementRepository) error {
		stock, err := stockRepo.GetForUpdate(ctx, v.ID, branch)
		if err != nil {
			return err
		}
		if stock.Quantity.LessThan(in.Quantity) {
			return fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrInsufficientStock, stock.Quantity, in.Quantity)
		}
		stock.Quantity = stock.Quantity.Sub(in.Quantity)
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:           uuid.New().String(),
			VariantID:    v.ID,
			Branch:       branch,
			Type:         entity.MovementTypeOUT,
			Quantity:     in.Quantity,
			BalanceAfter: stock.Quantity,
			Reference:    in.Reference,
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		out = &dto.StockResponse{VariantID: v.ID, Branch: branch, Quantity: stock.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("variant_id", v.ID).Str("branch", branch).Str("quantity", in.Quantity.String()).
		Str("balance", out.Quantity.String()).Msg("salida de inventario registrada")
	return out, nil
}

// GetStock devuelve las existencias actuales (cero si nunca hubo movimientos).
func (uc *DecrementStockUseCase) GetStock(ctx context.Context, variantID, branch string) (*dto.StockResponse, error) {
	if err := dto.ValidateID("variant_id", variantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(branch) == "" {
		return nil, domain.NewValidationError("branch", "es requerido")
	}
	stock, err := uc.stockRepo.Get(ctx, variantID, branch)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{VariantID: variantID, Branch: branch, Quantity: stock.Quantity}, nil
}
