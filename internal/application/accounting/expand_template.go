package accounting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	"github.com/jhoicas/vallas-erp/internal/domain"
	domainacc "github.com/jhoicas/vallas-erp/internal/domain/accounting"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

const opExpand = "expandir plantilla"

// ExpandTemplateUseCase genera las líneas de un comprobante en BORRADOR a partir de
// una plantilla. Borrar e insertar ocurre en una sola transacción con la cabecera
// bloqueada (SELECT FOR UPDATE), así dos expansiones simultáneas se serializan.
type ExpandTemplateUseCase struct {
	templates repository.TemplateRepository
	configs   repository.ConfigRepository
	vouchers  repository.VoucherRepository
	txRunner  TxRunner
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewExpandTemplateUseCase construye el caso de uso. templates debe leer la fuente sin
// caché: el estado activo y las líneas se toman en el momento de expandir. vouchers se
// usa fuera de la transacción para la validación previa y para verificar el estado
// real tras un fallo de escritura.
func NewExpandTemplateUseCase(
	templates repository.TemplateRepository,
	configs repository.ConfigRepository,
	vouchers repository.VoucherRepository,
	txRunner TxRunner,
	log zerolog.Logger,
) *ExpandTemplateUseCase {
	return &ExpandTemplateUseCase{
		templates: templates,
		configs:   configs,
		vouchers:  vouchers,
		txRunner:  txRunner,
		log:       log.With().Str("usecase", "expand_template").Logger(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Expand reemplaza las líneas del comprobante voucherID por las de la plantilla templateCode.
//
// Retorna:
//   - domain.ErrValidation    si voucherID no es un UUID o falta templateCode.
//   - domain.ErrNotFound      si el comprobante o la plantilla (activa) no existen.
//   - domain.ErrInvalidState  si el comprobante no está en BORRADOR (sus líneas no se tocan);
//     se informa antes que cualquier problema de la plantilla.
//   - domain.ErrEmptyTemplate si la plantilla no tiene líneas.
//   - *domain.PersistenceError si falla la escritura; Partial indica si el comprobante
//     quedó distinto a como estaba.
func (uc *ExpandTemplateUseCase) Expand(ctx context.Context, voucherID, templateCode string) (*dto.ExpandVoucherResponse, error) {
	voucherID = strings.TrimSpace(voucherID)
	templateCode = strings.TrimSpace(templateCode)
	if err := dto.ValidateID("voucher_id", voucherID); err != nil {
		return nil, err
	}
	if templateCode == "" {
		return nil, domain.NewValidationError("template_code", "es requerido")
	}

	// ── 1. Comprobante, plantilla y configuración (solo lectura) ─────────────
	// El estado del comprobante se valida antes que la plantilla y se vuelve a
	// verificar bajo bloqueo dentro de la transacción.
	current, err := uc.vouchers.GetByID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("%s: obtener comprobante: %w", opExpand, err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, voucherID)
	}
	if !current.IsDraft() {
		return nil, fmt.Errorf("%w: comprobante %s en estado %s", domain.ErrInvalidState, voucherID, current.Status)
	}

	tpl, err := uc.templates.GetByCode(ctx, templateCode)
	if err != nil {
		return nil, fmt.Errorf("%s: obtener plantilla: %w", opExpand, err)
	}
	if tpl == nil || !tpl.Active {
		return nil, fmt.Errorf("%w: plantilla %s inexistente o inactiva", domain.ErrNotFound, templateCode)
	}
	if len(tpl.Lines) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTemplate, templateCode)
	}
	cfg, err := uc.configs.GetMany(ctx, domainacc.ConfigKeys()...)
	if err != nil {
		return nil, fmt.Errorf("%s: leer configuración: %w", opExpand, err)
	}

	// ── 2. Líneas en memoria ─────────────────────────────────────────────────
	expanded, err := domainacc.Expand(tpl, voucherID, domainacc.NewResolver(cfg), uc.now(), uc.newID)
	if err != nil {
		return nil, err
	}
	lines := make([]*entity.VoucherLine, len(expanded))
	for i, e := range expanded {
		lines[i] = e.Line
	}

	// ── 3. Reemplazo atómico ─────────────────────────────────────────────────
	stage := domain.StageLoad
	prevCount := -1
	err = uc.txRunner.RunAccounting(ctx, func(ctx context.Context, vouchers repository.VoucherRepository) error {
		v, err := vouchers.GetForUpdate(ctx, voucherID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, voucherID)
		}
		if !v.IsDraft() {
			return fmt.Errorf("%w: comprobante %s en estado %s", domain.ErrInvalidState, voucherID, v.Status)
		}
		if prevCount, err = vouchers.CountLines(ctx, voucherID); err != nil {
			return err
		}

		stage = domain.StageDelete
		if err := vouchers.DeleteLines(ctx, voucherID); err != nil {
			return err
		}
		stage = domain.StageInsert
		if err := vouchers.InsertLines(ctx, lines); err != nil {
			return err
		}
		stage = domain.StageUpdate
		if err := vouchers.UpdateStatus(ctx, voucherID, v.Status, tpl.Code); err != nil {
			return err
		}
		stage = domain.StageCommit
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		perr := uc.persistenceError(ctx, voucherID, stage, prevCount, err)
		uc.log.Error().Err(err).
			Str("voucher_id", voucherID).
			Str("template", tpl.Code).
			Str("stage", stage).
			Bool("partial", perr.Partial).
			Msg("expansión fallida")
		return nil, perr
	}

	uc.log.Info().
		Str("voucher_id", voucherID).
		Str("template", tpl.Code).
		Int("lines", len(lines)).
		Int("replaced", prevCount).
		Msg("plantilla expandida")

	return toExpandResponse(voucherID, tpl, expanded), nil
}

// persistenceError consulta el estado real del comprobante después del fallo. Si la
// cantidad de líneas difiere de la previa, el comprobante quedó degradado (Partial).
// Si no se puede verificar y el fallo ocurrió después del borrado, se asume parcial.
func (uc *ExpandTemplateUseCase) persistenceError(ctx context.Context, voucherID, stage string, prevCount int, cause error) *domain.PersistenceError {
	perr := &domain.PersistenceError{Op: opExpand, Stage: stage, Err: cause}
	if prevCount < 0 {
		return perr
	}
	count, err := uc.vouchers.CountLines(ctx, voucherID)
	if err != nil {
		uc.log.Warn().Err(err).Str("voucher_id", voucherID).Msg("no se pudo verificar el estado tras el fallo")
		perr.Partial = stage != domain.StageDelete
		return perr
	}
	perr.Partial = count != prevCount
	return perr
}

func toExpandResponse(voucherID string, tpl *entity.Template, expanded []domainacc.ExpandedLine) *dto.ExpandVoucherResponse {
	out := &dto.ExpandVoucherResponse{
		VoucherID: voucherID,
		Lines:     make([]dto.VoucherLineDTO, 0, len(expanded)),
		Template: dto.TemplateInfoDTO{
			ID:           tpl.ID,
			Code:         tpl.Code,
			Name:         tpl.Name,
			DocumentType: tpl.DocumentType,
			LineCount:    len(tpl.Lines),
		},
	}
	for _, e := range expanded {
		l := toVoucherLineDTO(e.Line)
		l.Role = string(e.Meta.Role)
		l.Side = string(e.Meta.Side)
		l.Percentage = e.Meta.Percentage
		l.AllowAccountSelection = e.Meta.AllowAccountSelection
		l.AllowSubLedger = e.Meta.AllowSubLedger
		l.AccountSource = e.Meta.AccountSource
		out.Lines = append(out.Lines, l)
	}
	return out
}

func toVoucherLineDTO(l *entity.VoucherLine) dto.VoucherLineDTO {
	return dto.VoucherLineDTO{
		ID:            l.ID,
		Order:         l.Order,
		Account:       l.Account,
		SubLedger:     l.SubLedger,
		Memo:          l.Memo,
		DebitLocal:    l.DebitLocal,
		CreditLocal:   l.CreditLocal,
		DebitForeign:  l.DebitForeign,
		CreditForeign: l.CreditForeign,
	}
}
