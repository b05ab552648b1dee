package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpandVoucherRequest body para POST /api/accounting/vouchers/:id/expand.
type ExpandVoucherRequest struct {
	TemplateCode string `json:"template_code" validate:"required,max=50"`
}

// TemplateInfoDTO datos de la plantilla aplicada.
type TemplateInfoDTO struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	LineCount    int    `json:"line_count"`
}

// VoucherLineDTO línea de comprobante. Los campos de plantilla (role, side, ...) solo
// vienen en la respuesta de expansión.
type VoucherLineDTO struct {
	ID            string          `json:"id"`
	Order         int             `json:"order"`
	Account       string          `json:"account"`
	SubLedger     *string         `json:"sub_ledger"`
	Memo          *string         `json:"memo"`
	DebitLocal    decimal.Decimal `json:"debit_local"`
	CreditLocal   decimal.Decimal `json:"credit_local"`
	DebitForeign  decimal.Decimal `json:"debit_foreign"`
	CreditForeign decimal.Decimal `json:"credit_foreign"`

	Role                  string           `json:"role,omitempty"`
	Side                  string           `json:"side,omitempty"`
	Percentage            *decimal.Decimal `json:"percentage,omitempty"`
	AllowAccountSelection bool             `json:"allow_account_selection,omitempty"`
	AllowSubLedger        bool             `json:"allow_sub_ledger,omitempty"`
	AccountSource         string           `json:"account_source,omitempty"`
}

// ExpandVoucherResponse resultado de expandir una plantilla sobre un comprobante.
type ExpandVoucherResponse struct {
	VoucherID string           `json:"voucher_id"`
	Lines     []VoucherLineDTO `json:"lines"`
	Template  TemplateInfoDTO  `json:"template"`
}

// VoucherResponse comprobante con sus líneas.
type VoucherResponse struct {
	ID              string           `json:"id"`
	Number          string           `json:"number"`
	Type            string           `json:"type"`
	Date            time.Time        `json:"date"`
	Description     string           `json:"description"`
	Status          string           `json:"status"`
	LocalCurrency   string           `json:"local_currency"`
	ForeignCurrency string           `json:"foreign_currency"`
	TemplateCode    string           `json:"template_code,omitempty"`
	Lines           []VoucherLineDTO `json:"lines"`
}

// TemplateLineDTO definición de línea de plantilla.
type TemplateLineDTO struct {
	Order                 int              `json:"order"`
	Role                  string           `json:"role"`
	Side                  string           `json:"side"`
	FixedAccount          string           `json:"fixed_account,omitempty"`
	DefaultAccount        string           `json:"default_account"`
	Percentage            *decimal.Decimal `json:"percentage,omitempty"`
	AllowAccountSelection bool             `json:"allow_account_selection"`
	AllowSubLedger        bool             `json:"allow_sub_ledger"`
}

// TemplateResponse plantilla con sus líneas ordenadas.
type TemplateResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Active       bool              `json:"active"`
	DocumentType string            `json:"document_type"`
	Lines        []TemplateLineDTO `json:"lines,omitempty"`
}
