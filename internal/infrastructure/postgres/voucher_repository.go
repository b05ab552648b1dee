package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var _ repository.VoucherRepository = (*VoucherRepo)(nil)

// VoucherRepo comprobantes (vouchers) y sus líneas (voucher_lines) sobre PostgreSQL.
type VoucherRepo struct {
	q Querier
}

// NewVoucherRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVoucherRepository(q Querier) *VoucherRepo {
	return &VoucherRepo{q: q}
}

const voucherColumns = `id, number, type, date, description, status, local_currency, foreign_currency, template_code, created_at, updated_at`

func scanVoucher(row pgx.Row) (*entity.Voucher, error) {
	var (
		v                         entity.Voucher
		number, desc, tplCode     *string
		localCur, foreignCur, typ *string
	)
	if err := row.Scan(&v.ID, &number, &typ, &v.Date, &desc, &v.Status, &localCur, &foreignCur,
		&tplCode, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Number, v.Type, v.Description = deref(number), deref(typ), deref(desc)
	v.LocalCurrency, v.ForeignCurrency, v.TemplateCode = deref(localCur), deref(foreignCur), deref(tplCode)
	return &v, nil
}

// GetByID obtiene la cabecera del comprobante. nil si no existe.
func (r *VoucherRepo) GetByID(ctx context.Context, id string) (*entity.Voucher, error) {
	v, err := scanVoucher(r.q.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
func (r *VoucherRepo) GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error) {
	v, err := scanVoucher(r.q.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher for update: %w", err)
	}
	return v, nil
}

// ListLines líneas del comprobante por orden.
func (r *VoucherRepo) ListLines(ctx context.Context, voucherID string) ([]*entity.VoucherLine, error) {
	query := `
		SELECT id, voucher_id, line_order, account, sub_ledger, memo,
		       debit_local, credit_local, debit_foreign, credit_foreign, created_at
		FROM voucher_lines WHERE voucher_id = $1
		ORDER BY line_order`
	rows, err := r.q.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("list voucher lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.VoucherLine
	for rows.Next() {
		var l entity.VoucherLine
		if err := rows.Scan(&l.ID, &l.VoucherID, &l.Order, &l.Account, &l.SubLedger, &l.Memo,
			&l.DebitLocal, &l.CreditLocal, &l.DebitForeign, &l.CreditForeign, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan voucher line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CountLines cantidad de líneas actuales del comprobante.
func (r *VoucherRepo) CountLines(ctx context.Context, voucherID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM voucher_lines WHERE voucher_id = $1`, voucherID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count voucher lines: %w", err)
	}
	return n, nil
}

// DeleteLines borra todas las líneas del comprobante.
func (r *VoucherRepo) DeleteLines(ctx context.Context, voucherID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_id = $1`, voucherID); err != nil {
		return fmt.Errorf("delete voucher lines: %w", err)
	}
	return nil
}

// InsertLines inserta las líneas en un solo batch.
func (r *VoucherRepo) InsertLines(ctx context.Context, lines []*entity.VoucherLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO voucher_lines (id, voucher_id, line_order, account, sub_ledger, memo,
		                           debit_local, credit_local, debit_foreign, credit_foreign, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	b := &pgx.Batch{}
	for _, l := range lines {
		b.Queue(query, l.ID, l.VoucherID, l.Order, l.Account, l.SubLedger, l.Memo,
			l.DebitLocal, l.CreditLocal, l.DebitForeign, l.CreditForeign, l.CreatedAt)
	}
	br := r.q.SendBatch(ctx, b)
	for i := range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert voucher line %d: %w", lines[i].Order, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert voucher lines: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado y registra la última plantilla aplicada (vacío = sin cambio).
func (r *VoucherRepo) UpdateStatus(ctx context.Context, id, status, templateCode string) error {
	query := `
		UPDATE vouchers
		SET status = $2, template_code = COALESCE($3, template_code), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, nullIfEmpty(templateCode))
	if err != nil {
		return fmt.Errorf("update voucher status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update voucher status: comprobante %s no existe", id)
	}
	return nil
}
