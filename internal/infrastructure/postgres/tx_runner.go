package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vallas-erp/internal/application/accounting"
	"github.com/jhoicas/vallas-erp/internal/application/inventory"
	"github.com/jhoicas/vallas-erp/internal/application/variants"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var (
	_ accounting.TxRunner = (*TxRunner)(nil)
	_ variants.TxRunner   = (*TxRunner)(nil)
	_ inventory.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccounting transacción con el repositorio de comprobantes (expandir/aprobar).
func (r *TxRunner) RunAccounting(ctx context.Context, fn func(ctx context.Context, vouchers repository.VoucherRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewVoucherRepository(tx))
	})
}

// RunVariants transacción con el repositorio de variantes (regeneración).
func (r *TxRunner) RunVariants(ctx context.Context, fn func(ctx context.Context, variants repository.VariantRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewVariantRepository(tx))
	})
}

// RunInventory transacción con stock y movimientos (salidas de inventario).
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewStockRepository(tx), NewInventoryMovementRepository(tx))
	})
}
