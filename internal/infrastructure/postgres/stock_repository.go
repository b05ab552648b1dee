package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La clave es (variant_id, branch).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de una variante en una sucursal (cero si no hay fila).
func (r *StockRepo) Get(ctx context.Context, variantID, branch string) (*entity.Stock, error) {
	return r.get(ctx, variantID, branch, "")
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila no hay nada que bloquear: la salida fallará por stock insuficiente.
func (r *StockRepo) GetForUpdate(ctx context.Context, variantID, branch string) (*entity.Stock, error) {
	return r.get(ctx, variantID, branch, " FOR UPDATE")
}

func (r *StockRepo) get(ctx context.Context, variantID, branch, lock string) (*entity.Stock, error) {
	query := `
		SELECT variant_id, branch, quantity, updated_at
		FROM stock WHERE variant_id = $1 AND branch = $2` + lock
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, variantID, branch).Scan(&s.VariantID, &s.Branch, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return &entity.Stock{VariantID: variantID, Branch: branch, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por variante y sucursal).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (variant_id, branch, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (variant_id, branch)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.VariantID, stock.Branch, stock.Quantity); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
