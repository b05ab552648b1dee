package variants

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/application/dto"
	"github.com/jhoicas/vallas-erp/internal/domain"
	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
)

const opGenerate = "generar variantes"

// Config parámetros de generación.
type Config struct {
	Branch          variant.Attribute // atributo implícito agregado al final (sucursales)
	MaxCombinations int               // tope de combinaciones por producto; <= 0 sin tope
}

// GenerateVariantsUseCase regenera las variantes SKU de un producto desde los atributos
// de su receta. Las variantes existentes se comparan por contenido (Key): las que se
// vuelven a generar conservan ID y precio manual, las nuevas toman el precio base y las
// que ya no corresponden se eliminan. Todo en una transacción.
type GenerateVariantsUseCase struct {
	products repository.ProductRepository
	variants repository.VariantRepository
	txRunner TxRunner
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewGenerateVariantsUseCase construye el caso de uso.
func NewGenerateVariantsUseCase(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	txRunner TxRunner,
	cfg Config,
	log zerolog.Logger,
) *GenerateVariantsUseCase {
	return &GenerateVariantsUseCase{
		products: products,
		variants: variants,
		txRunner: txRunner,
		cfg:      cfg,
		log:      log.With().Str("usecase", "generate_variants").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Attributes carga la receta del producto y la normaliza a una lista de atributos.
func (uc *GenerateVariantsUseCase) Attributes(ctx context.Context, productID string) (*entity.Product, []variant.Attribute, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: obtener producto: %w", opGenerate, err)
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	resources, err := uc.products.ListResources(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: obtener receta: %w", opGenerate, err)
	}
	var attrs []variant.Attribute
	for _, r := range resources {
		parsed, err := variant.ParseAttributes(r.Variants)
		if err != nil {
			return nil, nil, fmt.Errorf("recurso %s (%s): %w", r.ResourceID, r.Name, err)
		}
		attrs = append(attrs, parsed...)
	}
	return product, variant.Normalize(attrs), nil
}

// Generate regenera las variantes del producto. Con dryRun solo calcula el resultado.
func (uc *GenerateVariantsUseCase) Generate(ctx context.Context, productID string, dryRun bool) (*dto.GenerateVariantsResponse, error) {
	if err := dto.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	product, attrs, err := uc.Attributes(ctx, productID)
	if err != nil {
		return nil, err
	}
	combos, err := variant.Combine(attrs, uc.cfg.Branch, uc.cfg.MaxCombinations)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", productID, err)
	}
	out := &dto.GenerateVariantsResponse{ProductID: productID, CombinationsGenerated: len(combos), DryRun: dryRun}

	if dryRun {
		existing, err := uc.variants.ListByProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("%s: listar variantes: %w", opGenerate, err)
		}
		p := planMerge(product, existing, combos, uc.now(), uc.newID)
		out.Created, out.Kept, out.Removed = len(p.create), len(p.update), len(p.remove)
		return out, nil
	}

	stage := domain.StageLoad
	err = uc.txRunner.RunVariants(ctx, func(ctx context.Context, variants repository.VariantRepository) error {
		existing, err := variants.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		p := planMerge(product, existing, combos, uc.now(), uc.newID)

		stage = domain.StageDelete
		if len(p.remove) > 0 {
			if err := variants.Delete(ctx, p.remove); err != nil {
				return err
			}
		}
		stage = domain.StageUpdate
		for _, v := range p.update {
			if err := variants.Update(ctx, v); err != nil {
				return err
			}
		}
		stage = domain.StageInsert
		for _, v := range p.create {
			if err := variants.Insert(ctx, v); err != nil {
				return err
			}
		}
		stage = domain.StageCommit
		out.Created, out.Kept, out.Removed = len(p.create), len(p.update), len(p.remove)
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Str("stage", stage).Msg("generación de variantes fallida")
		return nil, &domain.PersistenceError{Op: opGenerate, Stage: stage, Err: err}
	}

	uc.log.Info().
		Str("product_id", productID).
		Int("combinations", out.CombinationsGenerated).
		Int("created", out.Created).
		Int("kept", out.Kept).
		Int("removed", out.Removed).
		Msg("variantes regeneradas")
	return out, nil
}

// GenerateAll regenera las variantes de todos los productos activos. Un producto con
// receta inválida no detiene el lote: se registra y se continúa.
func (uc *GenerateVariantsUseCase) GenerateAll(ctx context.Context, dryRun bool) ([]dto.GenerateVariantsResponse, []error) {
	ids, err := uc.products.ListActiveIDs(ctx)
	if err != nil {
		return nil, []error{fmt.Errorf("%s: listar productos: %w", opGenerate, err)}
	}
	var (
		results []dto.GenerateVariantsResponse
		errs    []error
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := uc.Generate(ctx, id, dryRun)
		if err != nil {
			errs = append(errs, fmt.Errorf("producto %s: %w", id, err))
			continue
		}
		results = append(results, *res)
	}
	return results, errs
}

// List devuelve las variantes persistidas del producto en orden de generación.
func (uc *GenerateVariantsUseCase) List(ctx context.Context, productID string) (*dto.VariantListResponse, error) {
	if err := dto.ValidateID("product_id", productID); err != nil {
		return nil, err
	}
	list, err := uc.variants.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, dto.VariantResponse{
			ID:            v.ID,
			ProductID:     v.ProductID,
			SKU:           v.SKU,
			Attributes:    v.Attributes,
			Position:      v.Position,
			Price:         v.Price,
			PriceOverride: v.PriceOverride,
			UpdatedAt:     v.UpdatedAt,
		})
	}
	return &dto.VariantListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Total: len(items)}}, nil
}
