package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, base_price, active, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.BasePrice, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListActiveIDs IDs de productos activos, para la regeneración en lote.
func (r *ProductRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE active = true ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListResources receta del producto. variantes es JSONB o texto con JSON según la
// antigüedad del registro; se entrega crudo y se normaliza en el dominio.
func (r *ProductRepo) ListResources(ctx context.Context, productID string) ([]*entity.ProductResource, error) {
	query := `
		SELECT pr.product_id, pr.resource_id, COALESCE(res.name, ''), pr.variantes::text
		FROM product_resources pr
		LEFT JOIN resources res ON res.id = pr.resource_id
		WHERE pr.product_id = $1
		ORDER BY pr.position, pr.resource_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductResource
	for rows.Next() {
		var res entity.ProductResource
		var raw *string
		if err := rows.Scan(&res.ProductID, &res.ResourceID, &res.Name, &raw); err != nil {
			return nil, fmt.Errorf("scan product resource: %w", err)
		}
		if raw != nil {
			res.Variants = []byte(*raw)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}
