package variants

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/variant"
)

type mergePlan struct {
	create []*entity.SKUVariant
	update []*entity.SKUVariant
	remove []string
}

// variantSKU SKU de la variante: SKU base del producto más la posición (1-based).
func variantSKU(base string, position int) string {
	return fmt.Sprintf("%s-%03d", base, position+1)
}

// planMerge compara las variantes existentes con las combinaciones generadas por Key.
// Las conservadas toman la nueva posición/SKU; su precio sigue al precio base salvo que
// tenga PriceOverride.
func planMerge(product *entity.Product, existing []*entity.SKUVariant, combos []variant.Combination, now time.Time, newID func() string) mergePlan {
	byKey := make(map[string]*entity.SKUVariant, len(existing))
	for _, v := range existing {
		if prev, dup := byKey[v.Key]; dup {
			// filas duplicadas por contenido: se conserva la de menor posición
			if prev.Position <= v.Position {
				continue
			}
		}
		byKey[v.Key] = v
	}

	var p mergePlan
	used := make(map[string]bool, len(existing))
	for i, c := range combos {
		key := c.Key()
		sku := variantSKU(product.SKU, i)
		if ex, ok := byKey[key]; ok && !used[ex.ID] {
			used[ex.ID] = true
			upd := *ex
			upd.Position = i
			upd.SKU = sku
			if !upd.PriceOverride {
				upd.Price = product.BasePrice
			}
			upd.UpdatedAt = now
			p.update = append(p.update, &upd)
			continue
		}
		p.create = append(p.create, &entity.SKUVariant{
			ID:         newID(),
			ProductID:  product.ID,
			SKU:        sku,
			Key:        key,
			Attributes: c.Map(),
			Position:   i,
			Price:      product.BasePrice,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	for _, v := range existing {
		if !used[v.ID] {
			p.remove = append(p.remove, v.ID)
		}
	}
	sort.Strings(p.remove)
	return p
}
