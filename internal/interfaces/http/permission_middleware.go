package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *usecase.PermissionService; el uso de interfaz evita el import circular.
type permissionChecker interface {
	Can(ctx context.Context, role, module, action string) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el rol del token JWT
// puede ejecutar action sobre module. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol.
//   - 403 Forbidden → el rol no tiene el permiso.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequirePermission(module, action string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}

		ok, err := checker.Can(c.UserContext(), role, module, action)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene permiso '" + action + "' en '" + module + "'",
			})
		}

		return c.Next()
	}
}
