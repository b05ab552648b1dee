// Package cache caché de lectura para datos casi estáticos (plantillas contables).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

const (
	keyTemplatePrefix  = "accounting:template:"
	keyActiveTemplates = "accounting:templates:active"
)

// Store almacenamiento clave→bytes con vencimiento.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ repository.TemplateRepository = (*TemplateCache)(nil)

// TemplateCache decora un TemplateRepository con lectura a través de caché (JSON).
// Las plantillas inexistentes no se guardan. Un fallo de la caché se registra y se
// lee directo del repositorio. Las plantillas se administran fuera del servicio, así
// que una copia puede quedar vieja hasta el TTL: solo sirve consultas, nunca la expansión.
type TemplateCache struct {
	next  repository.TemplateRepository
	store Store
	ttl   time.Duration
	log   zerolog.Logger
}

// NewTemplateCache construye el decorador.
func NewTemplateCache(next repository.TemplateRepository, store Store, ttl time.Duration, log zerolog.Logger) *TemplateCache {
	return &TemplateCache{next: next, store: store, ttl: ttl, log: log.With().Str("component", "template_cache").Logger()}
}

// GetByCode lee la plantilla desde la caché o el repositorio.
func (c *TemplateCache) GetByCode(ctx context.Context, code string) (*entity.Template, error) {
	key := keyTemplatePrefix + code
	var tpl entity.Template
	if c.load(ctx, key, &tpl) {
		return &tpl, nil
	}
	fresh, err := c.next.GetByCode(ctx, code)
	if err != nil || fresh == nil {
		return fresh, err
	}
	c.save(ctx, key, fresh)
	return fresh, nil
}

// ListActive lista las plantillas activas desde la caché o el repositorio.
func (c *TemplateCache) ListActive(ctx context.Context) ([]*entity.Template, error) {
	var list []*entity.Template
	if c.load(ctx, keyActiveTemplates, &list) {
		return list, nil
	}
	fresh, err := c.next.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	c.save(ctx, keyActiveTemplates, fresh)
	return fresh, nil
}

func (c *TemplateCache) load(ctx context.Context, key string, dest any) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta")
		_ = c.store.Delete(ctx, key)
		return false
	}
	return true
}

func (c *TemplateCache) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}
