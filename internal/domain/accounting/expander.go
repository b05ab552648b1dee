package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// LineMeta datos de la línea de plantilla que acompañan a la línea generada.
// No se persisten; los usa la edición posterior de montos.
type LineMeta struct {
	Role                  entity.LineRole
	Side                  entity.Side
	Percentage            *decimal.Decimal
	AllowAccountSelection bool
	AllowSubLedger        bool
	AccountSource         string
}

// ExpandedLine línea de comprobante lista para persistir más sus metadatos.
type ExpandedLine struct {
	Line *entity.VoucherLine
	Meta LineMeta
}

// SortedLines devuelve una copia de las líneas ordenada por Order ascendente.
// Falla si hay órdenes repetidos.
func SortedLines(lines []entity.TemplateLine) ([]entity.TemplateLine, error) {
	out := make([]entity.TemplateLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := 1; i < len(out); i++ {
		if out[i].Order == out[i-1].Order {
			return nil, domain.NewValidationError("order", fmt.Sprintf("repetido en la plantilla (%d)", out[i].Order))
		}
	}
	return out, nil
}

// Expand genera una línea de comprobante por cada línea de plantilla, en orden,
// con Order 1..n, montos en cero y auxiliar/glosa nulos.
func Expand(tpl *entity.Template, voucherID string, r Resolver, now time.Time, newID func() string) ([]ExpandedLine, error) {
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	if len(tpl.Lines) == 0 {
		return nil, domain.ErrEmptyTemplate
	}
	sorted, err := SortedLines(tpl.Lines)
	if err != nil {
		return nil, err
	}
	out := make([]ExpandedLine, 0, len(sorted))
	for i, tl := range sorted {
		account, source, err := r.Resolve(tl)
		if err != nil {
			return nil, fmt.Errorf("línea %d (%s): %w", tl.Order, tl.Role, err)
		}
		out = append(out, ExpandedLine{
			Line: &entity.VoucherLine{
				ID:            newID(),
				VoucherID:     voucherID,
				Order:         i + 1,
				Account:       account,
				DebitLocal:    decimal.Zero,
				CreditLocal:   decimal.Zero,
				DebitForeign:  decimal.Zero,
				CreditForeign: decimal.Zero,
				CreatedAt:     now,
			},
			Meta: LineMeta{
				Role:                  tl.Role,
				Side:                  tl.Side,
				Percentage:            tl.Percentage,
				AllowAccountSelection: tl.AllowAccountSelection,
				AllowSubLedger:        tl.AllowSubLedger,
				AccountSource:         source,
			},
		})
	}
	return out, nil
}

// CheckBalanced verifica que la suma del debe iguale la del haber (moneda local),
// que haya importes (un comprobante recién expandido, todo en cero, no se aprueba)
// y que todas las líneas tengan cuenta.
func CheckBalanced(lines []*entity.VoucherLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("lineas", "el comprobante no tiene líneas")
	}
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Account == "" {
			return domain.ErrAccountUnresolved
		}
		debit = debit.Add(l.DebitLocal)
		credit = credit.Add(l.CreditLocal)
	}
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debe %s, haber %s", domain.ErrUnbalanced, debit.String(), credit.String())
	}
	if debit.IsZero() {
		return domain.NewValidationError("lineas", "el comprobante no tiene importes")
	}
	return nil
}
