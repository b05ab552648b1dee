package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo matriz role_permissions(role, module, action).
type PermissionRepo struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepo {
	return &PermissionRepo{pool: pool}
}

// HasPermission consulta directamente role_permissions (índice por la clave compuesta).
func (r *PermissionRepo) HasPermission(ctx context.Context, role, module, action string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM role_permissions
			 WHERE role   = $1
			   AND module = $2
			   AND action = $3
		)`
	var ok bool
	if err := r.pool.QueryRow(ctx, query, role, module, action).Scan(&ok); err != nil {
		return false, fmt.Errorf("check permission %s/%s: %w", module, action, err)
	}
	return ok, nil
}
