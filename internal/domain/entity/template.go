package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineRole propósito contable de una línea de plantilla.
// Los roles conocidos tienen cuenta por defecto; cualquier otro texto es un rol libre.
type LineRole string

// Roles conocidos de línea de plantilla.
const (
	RoleGasto      LineRole = "GASTO"
	RoleIngreso    LineRole = "INGRESO"
	RoleIVACredito LineRole = "IVA_CREDITO"
	RoleIVADebito  LineRole = "IVA_DEBITO"
	RoleProveedor  LineRole = "PROVEEDOR"
	RoleCliente    LineRole = "CLIENTE"
	RoleCajaBanco  LineRole = "CAJA_BANCO"
)

// ParseLineRole normaliza el texto almacenado (mayúsculas, espacios y guiones a "_").
// Nunca falla: un valor desconocido se conserva como rol libre.
func ParseLineRole(s string) LineRole {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return LineRole(s)
}

// IsTax informa si el rol toma su cuenta de la configuración de impuestos.
func (r LineRole) IsTax() bool {
	return r == RoleIVACredito || r == RoleIVADebito
}

// Side lado de la partida.
type Side string

const (
	SideDebit  Side = "DEBE"
	SideCredit Side = "HABER"
)

// Valid informa si el lado es DEBE o HABER.
func (s Side) Valid() bool { return s == SideDebit || s == SideCredit }

// Template plantilla de comprobante contable (solo lectura durante la expansión).
type Template struct {
	ID           string
	Code         string // p. ej. FACTURA-COMPRA
	Name         string
	Active       bool
	DocumentType string // tipo de comprobante destino
	Lines        []TemplateLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TemplateLine definición de una línea de plantilla. Order es único dentro de la plantilla.
type TemplateLine struct {
	ID                    string
	TemplateID            string
	Order                 int
	Role                  LineRole
	Side                  Side
	FixedAccount          string           // vacío = sin cuenta fija
	Percentage            *decimal.Decimal // opcional
	AllowAccountSelection bool
	AllowSubLedger        bool
}
