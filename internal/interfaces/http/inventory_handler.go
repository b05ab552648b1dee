package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
)

type stockDecrementer interface {
	Decrement(ctx context.Context, userID string, in dto.DecrementStockRequest) (*dto.StockResponse, error)
	GetStock(ctx context.Context, variantID, branch string) (*dto.StockResponse, error)
}

// InventoryHandler maneja las peticiones HTTP de stock por variante y sucursal (protegido).
type InventoryHandler struct {
	uc  stockDecrementer
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc stockDecrementer, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Decrement godoc
// @Summary      Registrar salida de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecrementStockRequest  true  "variant_id, branch, quantity, reference"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/decrement [post]
func (h *InventoryHandler) Decrement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DecrementStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Decrement(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// GetStock godoc
// @Summary      Existencias de una variante en una sucursal
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        variant_id  query  string  true  "ID de la variante"
// @Param        branch      query  string  true  "Sucursal"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	variantID, branch := c.Query("variant_id"), c.Query("branch")
	if variantID == "" || branch == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variant_id y branch son requeridos"})
	}
	res, err := h.uc.GetStock(c.UserContext(), variantID, branch)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}
