package accounting

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
)

func TestApprove_ComprobanteCuadrado(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusDraft)
	ctx := context.Background()
	_, err := f.uc.Expand(ctx, testVoucherID, "FACTURA-COMPRA")
	require.NoError(t, err)

	lines := f.vouchers.lines[testVoucherID]
	lines[0].DebitLocal = decimal.NewFromInt(1000)
	lines[1].DebitLocal = decimal.NewFromInt(190)
	lines[2].CreditLocal = decimal.NewFromInt(1190)

	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())
	out, err := vuc.Approve(ctx, testVoucherID)
	require.NoError(t, err)
	assert.Equal(t, entity.VoucherStatusApproved, out.Status)
	assert.Equal(t, entity.VoucherStatusApproved, f.vouchers.vouchers[testVoucherID].Status)

	_, err = f.uc.Expand(ctx, testVoucherID, "FACTURA-COMPRA")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un comprobante aprobado no se vuelve a expandir")
	assert.Len(t, f.vouchers.lines[testVoucherID], 3)
}

func TestApprove_DescuadradoSeRechaza(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusDraft)
	ctx := context.Background()
	_, err := f.uc.Expand(ctx, testVoucherID, "FACTURA-COMPRA")
	require.NoError(t, err)
	f.vouchers.lines[testVoucherID][0].DebitLocal = decimal.NewFromInt(10)

	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())
	_, err = vuc.Approve(ctx, testVoucherID)
	assert.ErrorIs(t, err, domain.ErrUnbalanced)
	assert.Equal(t, entity.VoucherStatusDraft, f.vouchers.vouchers[testVoucherID].Status)
}

func TestApprove_YaAprobado(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusApproved)
	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())

	_, err := vuc.Approve(context.Background(), testVoucherID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApprove_RecienExpandidoSinImportes(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusDraft)
	ctx := context.Background()
	_, err := f.uc.Expand(ctx, testVoucherID, "FACTURA-COMPRA")
	require.NoError(t, err)

	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())
	_, err = vuc.Approve(ctx, testVoucherID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, entity.VoucherStatusDraft, f.vouchers.vouchers[testVoucherID].Status)
}

func TestVoucherUseCase_IDMalformado(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusDraft)
	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())

	_, err := vuc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = vuc.Approve(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t, entity.VoucherStatusDraft)
	ctx := context.Background()
	_, err := f.uc.Expand(ctx, testVoucherID, "FACTURA-COMPRA")
	require.NoError(t, err)

	vuc := NewVoucherUseCase(f.vouchers, f.tx, zerolog.Nop())
	out, err := vuc.GetByID(ctx, testVoucherID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "C-0001", out.Number)
	assert.Len(t, out.Lines, 3)

	missing, err := vuc.GetByID(ctx, missingVoucherID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTemplateUseCase_GetByCode(t *testing.T) {
	uc := NewTemplateUseCase(&memoryTemplates{byCode: map[string]*entity.Template{"FACTURA-COMPRA": facturaCompra()}})

	out, err := uc.GetByCode(context.Background(), "FACTURA-COMPRA")
	require.NoError(t, err)
	require.Len(t, out.Lines, 3)
	assert.Equal(t, "600", out.Lines[0].DefaultAccount)
	assert.Equal(t, "IVA_CREDITO", out.Lines[1].Role)

	list, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
