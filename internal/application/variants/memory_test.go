package variants

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var errBoom = errors.New("boom")

type memoryProducts struct {
	products  map[string]*entity.Product
	resources map[string][]*entity.ProductResource
}

func (m *memoryProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *memoryProducts) ListActiveIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id, p := range m.products {
		if p.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryProducts) ListResources(_ context.Context, productID string) ([]*entity.ProductResource, error) {
	return m.resources[productID], nil
}

type memoryVariants struct {
	rows       map[string]*entity.SKUVariant
	failInsert bool
}

func newMemoryVariants() *memoryVariants {
	return &memoryVariants{rows: map[string]*entity.SKUVariant{}}
}

func (m *memoryVariants) ListByProduct(_ context.Context, productID string) ([]*entity.SKUVariant, error) {
	var out []*entity.SKUVariant
	for _, v := range m.rows {
		if v.ProductID == productID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memoryVariants) GetByID(_ context.Context, id string) (*entity.SKUVariant, error) {
	v, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memoryVariants) Insert(_ context.Context, v *entity.SKUVariant) error {
	if m.failInsert {
		return errBoom
	}
	cp := *v
	m.rows[v.ID] = &cp
	return nil
}

func (m *memoryVariants) Update(_ context.Context, v *entity.SKUVariant) error {
	cp := *v
	m.rows[v.ID] = &cp
	return nil
}

func (m *memoryVariants) Delete(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.rows, id)
	}
	return nil
}

func (m *memoryVariants) clone() *memoryVariants {
	c := newMemoryVariants()
	c.failInsert = m.failInsert
	for id, v := range m.rows {
		cp := *v
		c.rows[id] = &cp
	}
	return c
}

// memoryTx trabaja sobre una copia y solo la publica si fn termina sin error.
type memoryTx struct {
	store *memoryVariants
}

func (t *memoryTx) RunVariants(ctx context.Context, fn func(ctx context.Context, variants repository.VariantRepository) error) error {
	work := t.store.clone()
	if err := fn(ctx, work); err != nil {
		return err
	}
	t.store.rows = work.rows
	return nil
}

var _ repository.ProductRepository = (*memoryProducts)(nil)
var _ repository.VariantRepository = (*memoryVariants)(nil)
