package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo lectura de plantillas contables (accounting_templates + accounting_template_lines).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `id, code, name, active, document_type, created_at, updated_at`

// GetByCode obtiene la plantilla y sus líneas ordenadas. nil si no existe.
func (r *TemplateRepo) GetByCode(ctx context.Context, code string) (*entity.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM accounting_templates WHERE code = $1`
	var t entity.Template
	var docType *string
	err := r.q.QueryRow(ctx, query, code).Scan(
		&t.ID, &t.Code, &t.Name, &t.Active, &docType, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template %s: %w", code, err)
	}
	t.DocumentType = deref(docType)
	lines, err := r.lines(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return &t, nil
}

// ListActive lista las plantillas activas (sin líneas) ordenadas por código.
func (r *TemplateRepo) ListActive(ctx context.Context) ([]*entity.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM accounting_templates WHERE active = true ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Template
	for rows.Next() {
		var t entity.Template
		var docType *string
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Active, &docType, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.DocumentType = deref(docType)
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TemplateRepo) lines(ctx context.Context, templateID string) ([]entity.TemplateLine, error) {
	query := `
		SELECT id, template_id, line_order, role, side, fixed_account, percentage,
		       allow_account_selection, allow_sub_ledger
		FROM accounting_template_lines
		WHERE template_id = $1
		ORDER BY line_order`
	rows, err := r.q.Query(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.TemplateLine
	for rows.Next() {
		var (
			l       entity.TemplateLine
			role    string
			side    string
			account *string
			pct     decimal.NullDecimal
		)
		if err := rows.Scan(&l.ID, &l.TemplateID, &l.Order, &role, &side, &account, &pct,
			&l.AllowAccountSelection, &l.AllowSubLedger); err != nil {
			return nil, fmt.Errorf("scan template line: %w", err)
		}
		l.Role = entity.ParseLineRole(role)
		l.Side = entity.Side(side)
		l.FixedAccount = deref(account)
		if pct.Valid {
			p := pct.Decimal
			l.Percentage = &p
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
