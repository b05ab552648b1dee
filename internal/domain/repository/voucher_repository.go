package repository

import (
	"context"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

// VoucherRepository define el puerto de persistencia para comprobantes y sus líneas.
type VoucherRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Voucher, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error)
	ListLines(ctx context.Context, voucherID string) ([]*entity.VoucherLine, error)
	CountLines(ctx context.Context, voucherID string) (int, error)
	DeleteLines(ctx context.Context, voucherID string) error
	InsertLines(ctx context.Context, lines []*entity.VoucherLine) error
	UpdateStatus(ctx context.Context, id, status, templateCode string) error
}
