package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	"github.com/jhoicas/vallas-erp/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Los errores no clasificados se registran y responden 500 sin detalle interno.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := classify(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("code", body.Code).Msg("error en request")
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ErrorResponse) {
	var pe *domain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrEmptyTemplate):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "EMPTY_TEMPLATE", Message: err.Error()}
	case errors.Is(err, domain.ErrUnbalanced):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "UNBALANCED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"}
	case errors.Is(err, domain.ErrAccountUnresolved):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "ACCOUNT_UNRESOLVED", Message: err.Error()}
	case errors.As(err, &pe):
		if pe.Partial {
			return fiber.StatusInternalServerError, dto.ErrorResponse{
				Code:    "PERSISTENCE_PARTIAL",
				Message: "la escritura falló en la etapa " + pe.Stage + " y dejó el recurso incompleto; reintente la operación",
				Partial: true,
			}
		}
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "PERSISTENCE",
			Message: "la escritura falló en la etapa " + pe.Stage + "; no se aplicaron cambios",
		}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}
