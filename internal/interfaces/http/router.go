package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Expander    templateExpander
	Vouchers    voucherService
	Templates   templateReader
	Variants    variantGenerator
	Inventory   stockDecrementer
	Permissions permissionChecker
	JWTSecret   string
	JWTIssuer   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	canView := func(module string) fiber.Handler {
		return RequirePermission(module, entity.ActionView, deps.Permissions)
	}
	canEdit := func(module string) fiber.Handler {
		return RequirePermission(module, entity.ActionEdit, deps.Permissions)
	}

	// Contabilidad
	acc := protected.Group("/accounting")
	accHandler := NewAccountingHandler(deps.Expander, deps.Vouchers, deps.Templates, deps.Log)
	acc.Get("/templates", canView(entity.ModuleContabilidad), accHandler.ListTemplates)
	acc.Get("/templates/:code", canView(entity.ModuleContabilidad), accHandler.GetTemplate)
	acc.Get("/vouchers/:id", canView(entity.ModuleContabilidad), accHandler.GetVoucher)
	acc.Post("/vouchers/:id/expand", canEdit(entity.ModuleContabilidad), accHandler.ExpandTemplate)
	acc.Post("/vouchers/:id/approve", canEdit(entity.ModuleContabilidad), accHandler.ApproveVoucher)

	// Productos: variantes SKU
	products := protected.Group("/products")
	variantHandler := NewVariantHandler(deps.Variants, deps.Log)
	products.Post("/variants/generate", RequireRole(entity.RoleAdmin), variantHandler.GenerateAll)
	products.Get("/:id/variants", canView(entity.ModuleInventario), variantHandler.List)
	products.Post("/:id/variants/generate", canEdit(entity.ModuleInventario), variantHandler.Generate)

	// Inventario
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Inventory, deps.Log)
	inv.Get("/stock", canView(entity.ModuleInventario), invHandler.GetStock)
	inv.Post("/decrement", canEdit(entity.ModuleInventario), invHandler.Decrement)
}
