package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	"github.com/jhoicas/vallas-erp/internal/domain"
	domainacc "github.com/jhoicas/vallas-erp/internal/domain/accounting"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

// VoucherUseCase consulta y aprobación de comprobantes.
type VoucherUseCase struct {
	vouchers repository.VoucherRepository
	txRunner TxRunner
	log      zerolog.Logger
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(vouchers repository.VoucherRepository, txRunner TxRunner, log zerolog.Logger) *VoucherUseCase {
	return &VoucherUseCase{vouchers: vouchers, txRunner: txRunner, log: log.With().Str("usecase", "voucher").Logger()}
}

// GetByID devuelve el comprobante con sus líneas, o nil si no existe.
func (uc *VoucherUseCase) GetByID(ctx context.Context, id string) (*dto.VoucherResponse, error) {
	if err := dto.ValidateID("id", id); err != nil {
		return nil, err
	}
	v, err := uc.vouchers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	lines, err := uc.vouchers.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVoucherResponse(v, lines), nil
}

// Approve pasa el comprobante de BORRADOR a APROBADO. Exige líneas cuadradas (debe = haber
// en moneda local). Un comprobante aprobado ya no admite expansiones.
func (uc *VoucherUseCase) Approve(ctx context.Context, id string) (*dto.VoucherResponse, error) {
	if err := dto.ValidateID("id", id); err != nil {
		return nil, err
	}
	var out *dto.VoucherResponse
	err := uc.txRunner.RunAccounting(ctx, func(ctx context.Context, vouchers repository.VoucherRepository) error {
		v, err := vouchers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, id)
		}
		if !v.IsDraft() {
			return fmt.Errorf("%w: comprobante %s en estado %s", domain.ErrInvalidState, id, v.Status)
		}
		lines, err := vouchers.ListLines(ctx, id)
		if err != nil {
			return err
		}
		if err := domainacc.CheckBalanced(lines); err != nil {
			return err
		}
		if err := vouchers.UpdateStatus(ctx, id, entity.VoucherStatusApproved, v.TemplateCode); err != nil {
			return &domain.PersistenceError{Op: "aprobar comprobante", Stage: domain.StageUpdate, Err: err}
		}
		v.Status = entity.VoucherStatusApproved
		out = toVoucherResponse(v, lines)
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidState) && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Str("voucher_id", id).Msg("aprobación rechazada")
		}
		return nil, err
	}
	uc.log.Info().Str("voucher_id", id).Msg("comprobante aprobado")
	return out, nil
}

func toVoucherResponse(v *entity.Voucher, lines []*entity.VoucherLine) *dto.VoucherResponse {
	out := &dto.VoucherResponse{
		ID:              v.ID,
		Number:          v.Number,
		Type:            v.Type,
		Date:            v.Date,
		Description:     v.Description,
		Status:          v.Status,
		LocalCurrency:   v.LocalCurrency,
		ForeignCurrency: v.ForeignCurrency,
		TemplateCode:    v.TemplateCode,
		Lines:           make([]dto.VoucherLineDTO, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, toVoucherLineDTO(l))
	}
	return out
}
