package accounting

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/vallas-erp/internal/domain/entity"
	"github.com/jhoicas/vallas-erp/internal/domain/repository"
)

var errBoom = errors.New("conexión perdida")

type memoryTemplates struct {
	byCode map[string]*entity.Template
}

func (m *memoryTemplates) GetByCode(_ context.Context, code string) (*entity.Template, error) {
	return m.byCode[code], nil
}

func (m *memoryTemplates) ListActive(_ context.Context) ([]*entity.Template, error) {
	var out []*entity.Template
	for _, t := range m.byCode {
		if t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type memoryConfig map[string]string

func (m memoryConfig) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// memoryVouchers almacén en memoria. Las fallas se inyectan por etapa.
type memoryVouchers struct {
	vouchers  map[string]*entity.Voucher
	lines     map[string][]*entity.VoucherLine
	failCount bool
	failDel   bool
	failIns   bool
}

func newMemoryVouchers(vs ...*entity.Voucher) *memoryVouchers {
	m := &memoryVouchers{vouchers: map[string]*entity.Voucher{}, lines: map[string][]*entity.VoucherLine{}}
	for _, v := range vs {
		m.vouchers[v.ID] = v
	}
	return m
}

func (m *memoryVouchers) clone() *memoryVouchers {
	c := &memoryVouchers{
		vouchers: make(map[string]*entity.Voucher, len(m.vouchers)),
		lines:    make(map[string][]*entity.VoucherLine, len(m.lines)),
		failDel:  m.failDel,
		failIns:  m.failIns,
	}
	for k, v := range m.vouchers {
		cp := *v
		c.vouchers[k] = &cp
	}
	for k, ls := range m.lines {
		c.lines[k] = append([]*entity.VoucherLine(nil), ls...)
	}
	return c
}

func (m *memoryVouchers) GetByID(_ context.Context, id string) (*entity.Voucher, error) {
	v, ok := m.vouchers[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memoryVouchers) GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryVouchers) ListLines(_ context.Context, id string) ([]*entity.VoucherLine, error) {
	return append([]*entity.VoucherLine(nil), m.lines[id]...), nil
}

func (m *memoryVouchers) CountLines(_ context.Context, id string) (int, error) {
	if m.failCount {
		return 0, errBoom
	}
	return len(m.lines[id]), nil
}

func (m *memoryVouchers) DeleteLines(_ context.Context, id string) error {
	if m.failDel {
		return errBoom
	}
	delete(m.lines, id)
	return nil
}

func (m *memoryVouchers) InsertLines(_ context.Context, lines []*entity.VoucherLine) error {
	if m.failIns {
		return errBoom
	}
	for _, l := range lines {
		m.lines[l.VoucherID] = append(m.lines[l.VoucherID], l)
	}
	return nil
}

func (m *memoryVouchers) UpdateStatus(_ context.Context, id, status, templateCode string) error {
	v := m.vouchers[id]
	v.Status = status
	v.TemplateCode = templateCode
	return nil
}

// memoryTx transaccional: trabaja sobre una copia y la publica solo si fn no falla.
// Con atomic=false aplica directo sobre el almacén (simula un almacén sin transacciones).
type memoryTx struct {
	store      *memoryVouchers
	atomic     bool
	failCommit bool
}

func (tx *memoryTx) RunAccounting(ctx context.Context, fn func(context.Context, repository.VoucherRepository) error) error {
	if !tx.atomic {
		return fn(ctx, tx.store)
	}
	work := tx.store.clone()
	if err := fn(ctx, work); err != nil {
		return err
	}
	if tx.failCommit {
		return errBoom
	}
	tx.store.vouchers = work.vouchers
	tx.store.lines = work.lines
	return nil
}
