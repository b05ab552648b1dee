package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// TemplateRepository puerto de lectura del almacén de plantillas contables.
type TemplateRepository interface {
	// GetByCode devuelve la plantilla con sus líneas ordenadas por Order ascendente,
	// o nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Template, error)
	ListActive(ctx context.Context) ([]*entity.Template, error)
}
