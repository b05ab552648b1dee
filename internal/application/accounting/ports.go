package accounting

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con el repositorio de comprobantes
// atado a ella. Commit si fn devuelve nil; Rollback en otro caso.
type TxRunner interface {
	RunAccounting(ctx context.Context, fn func(ctx context.Context, vouchers repository.VoucherRepository) error) error
}
