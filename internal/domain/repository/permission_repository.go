package repository

import "context"

// PermissionRepository consulta la matriz rol→módulo→acción.
type PermissionRepository interface {
	HasPermission(ctx context.Context, role, module, action string) (bool, error)
}
