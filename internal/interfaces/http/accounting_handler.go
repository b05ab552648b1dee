package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
)

type templateExpander interface {
	Expand(ctx context.Context, voucherID, templateCode string) (*dto.ExpandVoucherResponse, error)
}

type voucherService interface {
	GetByID(ctx context.Context, id string) (*dto.VoucherResponse, error)
	Approve(ctx context.Context, id string) (*dto.VoucherResponse, error)
}

type templateReader interface {
	ListActive(ctx context.Context) ([]dto.TemplateResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.TemplateResponse, error)
}

// AccountingHandler maneja plantillas y comprobantes contables (protegido).
type AccountingHandler struct {
	expander  templateExpander
	vouchers  voucherService
	templates templateReader
	log       zerolog.Logger
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(expander templateExpander, vouchers voucherService, templates templateReader, log zerolog.Logger) *AccountingHandler {
	return &AccountingHandler{expander: expander, vouchers: vouchers, templates: templates, log: log}
}

// ListTemplates godoc
// @Summary      Listar plantillas contables activas
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.TemplateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/accounting/templates [get]
func (h *AccountingHandler) ListTemplates(c *fiber.Ctx) error {
	list, err := h.templates.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// GetTemplate godoc
// @Summary      Obtener plantilla por código
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de plantilla (p. ej. FACTURA-COMPRA)"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounting/templates/{code} [get]
func (h *AccountingHandler) GetTemplate(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	tpl, err := h.templates.GetByCode(c.UserContext(), code)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if tpl == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plantilla no encontrada"})
	}
	return c.JSON(tpl)
}

// GetVoucher godoc
// @Summary      Obtener comprobante con sus líneas
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.VoucherResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounting/vouchers/{id} [get]
func (h *AccountingHandler) GetVoucher(c *fiber.Ctx) error {
	v, err := h.vouchers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if v == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
	}
	return c.JSON(v)
}

// ExpandTemplate godoc
// @Summary      Generar líneas del comprobante desde una plantilla
// @Description  Reemplaza las líneas de un comprobante en BORRADOR por las de la plantilla,
//
//	con montos en cero y cuentas resueltas (fija, configuración, rol o genérica).
//
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del comprobante"
// @Param        body  body  dto.ExpandVoucherRequest   true  "template_code"
// @Success      200   {object}  dto.ExpandVoucherResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "partial=true si el comprobante quedó incompleto"
// @Router       /api/accounting/vouchers/{id}/expand [post]
func (h *AccountingHandler) ExpandTemplate(c *fiber.Ctx) error {
	var in dto.ExpandVoucherRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	res, err := h.expander.Expand(c.UserContext(), c.Params("id"), in.TemplateCode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res)
}

// ApproveVoucher godoc
// @Summary      Aprobar comprobante
// @Description  Pasa de BORRADOR a APROBADO si el debe y el haber cuadran.
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.VoucherResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/accounting/vouchers/{id}/approve [post]
func (h *AccountingHandler) ApproveVoucher(c *fiber.Ctx) error {
	v, err := h.vouchers.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(v)
}
