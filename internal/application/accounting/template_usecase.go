package accounting

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	domainacc "github.com/jhoicas/vallas-erp/internal/domain/accounting"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// TemplateUseCase lectura del almacén de plantillas.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// ListActive lista las plantillas activas (sin líneas).
func (uc *TemplateUseCase) ListActive(ctx context.Context) ([]dto.TemplateResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TemplateResponse{
			ID: t.ID, Code: t.Code, Name: t.Name, Active: t.Active, DocumentType: t.DocumentType,
		})
	}
	return out, nil
}

// GetByCode devuelve la plantilla con sus líneas en orden y la cuenta por defecto de
// cada rol, o nil si no existe.
func (uc *TemplateUseCase) GetByCode(ctx context.Context, code string) (*dto.TemplateResponse, error) {
	t, err := uc.repo.GetByCode(ctx, code)
	if err != nil || t == nil {
		return nil, err
	}
	sorted, err := domainacc.SortedLines(t.Lines)
	if err != nil {
		return nil, err
	}
	out := &dto.TemplateResponse{
		ID: t.ID, Code: t.Code, Name: t.Name, Active: t.Active, DocumentType: t.DocumentType,
		Lines: make([]dto.TemplateLineDTO, 0, len(sorted)),
	}
	for _, l := range sorted {
		out.Lines = append(out.Lines, toTemplateLineDTO(l))
	}
	return out, nil
}

func toTemplateLineDTO(l entity.TemplateLine) dto.TemplateLineDTO {
	def, ok := domainacc.DefaultAccount(l.Role)
	if !ok {
		def = domainacc.GenericAccount
	}
	return dto.TemplateLineDTO{
		Order:                 l.Order,
		Role:                  string(l.Role),
		Side:                  string(l.Side),
		FixedAccount:          l.FixedAccount,
		DefaultAccount:        def,
		Percentage:            l.Percentage,
		AllowAccountSelection: l.AllowAccountSelection,
		AllowSubLedger:        l.AllowSubLedger,
	}
}
