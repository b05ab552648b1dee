package variants

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de variantes atado a ella.
type TxRunner interface {
	RunVariants(ctx context.Context, fn func(ctx context.Context, variants repository.VariantRepository) error) error
}
