package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del comprobante contable.
const (
	VoucherStatusDraft    = "BORRADOR"
	VoucherStatusApproved = "APROBADO"
)

// Voucher comprobante contable (cabecera). Solo en BORRADOR admite regenerar líneas.
type Voucher struct {
	ID              string
	Number          string
	Type            string
	Date            time.Time
	Description     string
	Status          string
	LocalCurrency   string // p. ej. CLP
	ForeignCurrency string // p. ej. USD
	TemplateCode    string // última plantilla aplicada
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsDraft informa si el comprobante es editable.
func (v *Voucher) IsDraft() bool { return v.Status == VoucherStatusDraft }

// VoucherLine línea de detalle generada. Account nunca es vacío.
type VoucherLine struct {
	ID            string
	VoucherID     string
	Order         int
	Account       string
	SubLedger     *string // auxiliar (proveedor/cliente), nulo tras expandir
	Memo          *string
	DebitLocal    decimal.Decimal
	CreditLocal   decimal.Decimal
	DebitForeign  decimal.Decimal
	CreditForeign decimal.Decimal
	CreatedAt     time.Time
}
