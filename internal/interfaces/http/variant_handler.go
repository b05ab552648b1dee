package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
)

type variantGenerator interface {
	Generate(ctx context.Context, productID string, dryRun bool) (*dto.GenerateVariantsResponse, error)
	GenerateAll(ctx context.Context, dryRun bool) ([]dto.GenerateVariantsResponse, []error)
	List(ctx context.Context, productID string) (*dto.VariantListResponse, error)
}

// VariantHandler variantes SKU de productos (protegido).
type VariantHandler struct {
	uc  variantGenerator
	log zerolog.Logger
}

// NewVariantHandler construye el handler.
func NewVariantHandler(uc variantGenerator, log zerolog.Logger) *VariantHandler {
	return &VariantHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Regenerar variantes del producto
// @Description  Combina los atributos de la receta con las sucursales. Conserva las variantes
//
//	cuya combinación se mantiene (ID y precio manual) y elimina las sobrantes.
//
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        dry_run  query  bool    false  "Solo calcular, sin escribir"
// @Success      200  {object}  dto.GenerateVariantsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants/generate [post]
func (h *VariantHandler) Generate(c *fiber.Ctx) error {
	res, err := h.uc.Generate(c.UserContext(), c.Params("id"), c.QueryBool("dry_run", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// GenerateAll godoc
// @Summary      Regenerar variantes de todos los productos activos (solo admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        dry_run  query  bool  false  "Solo calcular, sin escribir"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/products/variants/generate [post]
func (h *VariantHandler) GenerateAll(c *fiber.Ctx) error {
	results, errs := h.uc.GenerateAll(c.UserContext(), c.QueryBool("dry_run", false))
	failures := make([]string, 0, len(errs))
	for _, err := range errs {
		failures = append(failures, err.Error())
	}
	if len(errs) > 0 {
		h.log.Warn().Int("failed", len(errs)).Msg("regeneración en lote con errores")
	}
	return c.JSON(fiber.Map{"total": len(results), "results": results, "errors": failures})
}

// List godoc
// @Summary      Listar variantes del producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.VariantListResponse
// @Router       /api/products/{id}/variants [get]
func (h *VariantHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}
