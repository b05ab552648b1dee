package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo variantes SKU (product_variants). attributes se guarda como JSONB.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, combination_key, attributes, position, price, price_override, created_at, updated_at`

func scanVariant(row pgx.Row) (*entity.SKUVariant, error) {
	var v entity.SKUVariant
	var attrs []byte
	if err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Key, &attrs, &v.Position, &v.Price,
		&v.PriceOverride, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes de variante %s: %w", v.ID, err)
		}
	}
	return &v, nil
}

// ListByProduct variantes del producto por posición.
func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.SKUVariant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKUVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetByID obtiene una variante. nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.SKUVariant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// Insert persiste una variante nueva.
func (r *VariantRepo) Insert(ctx context.Context, v *entity.SKUVariant) error {
	attrs, err := json.Marshal(v.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	query := `
		INSERT INTO product_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query, v.ID, v.ProductID, v.SKU, v.Key, attrs, v.Position, v.Price,
		v.PriceOverride, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: combinación %q duplicada", domain.ErrValidation, v.Key)
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// Update actualiza posición, SKU y precio de una variante conservada.
func (r *VariantRepo) Update(ctx context.Context, v *entity.SKUVariant) error {
	query := `
		UPDATE product_variants
		SET position = $2, sku = $3, price = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, v.ID, v.Position, v.SKU, v.Price, v.UpdatedAt); err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// Delete borra las variantes indicadas.
func (r *VariantRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}
	return nil
}
