package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo mapa clave→valor de la tabla accounting_config.
type ConfigRepo struct {
	q Querier
}

// NewConfigRepository construye el adaptador.
func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

// GetMany devuelve los valores de las claves pedidas que existan.
func (r *ConfigRepo) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT key, value FROM accounting_config WHERE key = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		var v *string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[k] = deref(v)
	}
	return out, rows.Err()
}
