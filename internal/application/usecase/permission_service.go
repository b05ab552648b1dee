package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// PermissionService decide si un rol puede ejecutar una acción sobre un módulo.
// Es el único punto de la aplicación que conoce la matriz de permisos.
type PermissionService struct {
	repo repository.PermissionRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(repo repository.PermissionRepository) *PermissionService {
	return &PermissionService{repo: repo}
}

// Can informa si role tiene permiso action sobre module. El rol admin siempre puede.
// Devuelve false (sin error) si el rol no tiene la entrada en la matriz.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *PermissionService) Can(ctx context.Context, role, module, action string) (bool, error) {
	if role == "" || module == "" || action == "" {
		return false, fmt.Errorf("permission: role, module y action son obligatorios")
	}
	if role == entity.RoleAdmin {
		return true, nil
	}
	ok, err := s.repo.HasPermission(ctx, role, module, action)
	if err != nil {
		return false, fmt.Errorf("permission: %w", err)
	}
	if !ok && action == entity.ActionView {
		// quien puede editar también puede ver
		return s.repo.HasPermission(ctx, role, module, entity.ActionEdit)
	}
	return ok, nil
}
