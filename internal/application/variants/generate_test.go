package variants

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
)

// ─── Fixture ────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *GenerateVariantsUseCase
	products *memoryProducts
	store    *memoryVariants
}

const (
	prodA       = "5d7c3a10-1b2e-4c3d-9e8f-0a1b2c3d4e01"
	prodB       = "5d7c3a10-1b2e-4c3d-9e8f-0a1b2c3d4e02"
	prodC       = "5d7c3a10-1b2e-4c3d-9e8f-0a1b2c3d4e03"
	prodMissing = "5d7c3a10-1b2e-4c3d-9e8f-0a1b2c3d4e99"
)

func newFixture(recipe string) *fixture {
	products := &memoryProducts{
		products: map[string]*entity.Product{
			prodA: {ID: prodA, SKU: "VAL", Name: "Valla", BasePrice: decimal.NewFromInt(100), Active: true},
		},
		resources: map[string][]*entity.ProductResource{
			prodA: {{ProductID: prodA, ResourceID: "r1", Name: "Lona", Variants: json.RawMessage(recipe)}},
		},
	}
	store := newMemoryVariants()
	uc := NewGenerateVariantsUseCase(products, store, &memoryTx{store: store},
		Config{Branch: variant.Attribute{Name: "Branch", Values: []string{"Branch A", "Branch B"}}, MaxCombinations: 100},
		zerolog.Nop())
	seq := 0
	uc.newID = func() string { seq++; return fmt.Sprintf("v-%03d", seq) }
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return &fixture{uc: uc, products: products, store: store}
}

const recipe = `[{"name":"Color","values":["Rojo:#FF0000","Azul"]},{"name":"Size","values":["S","M"]}]`

// ─── Generate ───────────────────────────────────────────────────────────────

func TestGenerate_CreaTodasLasCombinaciones(t *testing.T) {
	f := newFixture(recipe)

	res, err := f.uc.Generate(context.Background(), prodA, false)
	require.NoError(t, err)
	assert.Equal(t, 8, res.CombinationsGenerated)
	assert.Equal(t, 8, res.Created)
	assert.Zero(t, res.Kept)
	assert.Zero(t, res.Removed)

	list, err := f.uc.List(context.Background(), prodA)
	require.NoError(t, err)
	require.Len(t, list.Items, 8)
	assert.Equal(t, "VAL-001", list.Items[0].SKU)
	assert.Equal(t, map[string]string{"Color": "Rojo", "Size": "S", "Branch": "Branch A"}, list.Items[0].Attributes)
	assert.Equal(t, map[string]string{"Color": "Azul", "Size": "M", "Branch": "Branch B"}, list.Items[7].Attributes)
	assert.True(t, list.Items[0].Price.Equal(decimal.NewFromInt(100)))
}

func TestGenerate_RegenerarConservaIDsYPrecioManual(t *testing.T) {
	f := newFixture(recipe)
	ctx := context.Background()
	_, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)

	first, err := f.uc.List(ctx, prodA)
	require.NoError(t, err)
	manual := f.store.rows[first.Items[0].ID]
	manual.Price = decimal.NewFromInt(250)
	manual.PriceOverride = true

	res, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Kept)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Removed)

	second, err := f.uc.List(ctx, prodA)
	require.NoError(t, err)
	for i := range first.Items {
		assert.Equal(t, first.Items[i].ID, second.Items[i].ID)
	}
	assert.True(t, second.Items[0].Price.Equal(decimal.NewFromInt(250)), "precio manual conservado")
}

func TestGenerate_CambioDeRecetaEliminaSobrantes(t *testing.T) {
	f := newFixture(recipe)
	ctx := context.Background()
	_, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)

	f.products.resources[prodA][0].Variants = json.RawMessage(`{"Color":["Azul","Verde"],"Size":["M"]}`)
	res, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)
	assert.Equal(t, 4, res.CombinationsGenerated)
	assert.Equal(t, 2, res.Kept, "Azul/M en ambas sucursales")
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 6, res.Removed)
	assert.Len(t, f.store.rows, 4)
}

func TestGenerate_DryRunNoEscribe(t *testing.T) {
	f := newFixture(recipe)

	res, err := f.uc.Generate(context.Background(), prodA, true)
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 8, res.Created)
	assert.Empty(t, f.store.rows)
}

func TestGenerate_SinAtributosBorraVariantes(t *testing.T) {
	f := newFixture(recipe)
	ctx := context.Background()
	_, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)

	f.products.resources[prodA][0].Variants = json.RawMessage(`[]`)
	res, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)
	assert.Zero(t, res.CombinationsGenerated)
	assert.Equal(t, 8, res.Removed)
	assert.Empty(t, f.store.rows)
}

func TestGenerate_ProductoInexistente(t *testing.T) {
	f := newFixture(recipe)

	_, err := f.uc.Generate(context.Background(), prodMissing, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_RecetaInvalida(t *testing.T) {
	f := newFixture(`{"Color": 5}`)

	_, err := f.uc.Generate(context.Background(), prodA, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.store.rows)
}

func TestGenerate_FalloDePersistenciaNoPublicaCambios(t *testing.T) {
	f := newFixture(recipe)
	f.store.failInsert = true

	_, err := f.uc.Generate(context.Background(), prodA, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	var pe *domain.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.StageInsert, pe.Stage)
	assert.Empty(t, f.store.rows)
}

func TestGenerate_RecetaQueSuperaElMaximoNoEscribe(t *testing.T) {
	f := newFixture(recipe)
	ctx := context.Background()
	_, err := f.uc.Generate(ctx, prodA, false)
	require.NoError(t, err)

	// 5 x 5 x 3 x 2 sucursales = 150 > 100
	f.products.resources[prodA][0].Variants = json.RawMessage(
		`{"Color":["a","b","c","d","e"],"Size":["1","2","3","4","5"],"Cara":["x","y","z"]}`)
	_, err = f.uc.Generate(ctx, prodA, false)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "variantes", verr.Field)
	assert.Len(t, f.store.rows, 8, "las variantes previas quedan intactas")

	_, err = f.uc.Generate(ctx, prodA, true)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerate_IDMalformado(t *testing.T) {
	f := newFixture(recipe)

	_, err := f.uc.Generate(context.Background(), "p1", false)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.List(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateAll_ContinuaTrasError(t *testing.T) {
	f := newFixture(recipe)
	f.products.products[prodB] = &entity.Product{ID: prodB, SKU: "BAD", Active: true}
	f.products.resources[prodB] = []*entity.ProductResource{{ProductID: prodB, ResourceID: "r2", Variants: json.RawMessage(`"{roto"`)}}
	f.products.products[prodC] = &entity.Product{ID: prodC, SKU: "OFF", Active: false}

	results, errs := f.uc.GenerateAll(context.Background(), false)
	require.Len(t, results, 1)
	assert.Equal(t, prodA, results[0].ProductID)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrValidation)
}
