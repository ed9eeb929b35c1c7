package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repositories ───────────────────────────────────────────────────
// DB() returns nil so services run their transactions inline.

const layout = "2006-01-02"

func fecha(s string) time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type stubCajaRepo struct {
	mu     sync.Mutex
	cajas  map[string]*model.Caja
	nextID uint
}

func newStubCajaRepo() *stubCajaRepo { return &stubCajaRepo{cajas: map[string]*model.Caja{}} }

func (r *stubCajaRepo) FindByFecha(_ context.Context, f string) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[f]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCajaRepo) FindByFechaForUpdate(ctx context.Context, _ *gorm.DB, f string) (*model.Caja, error) {
	return r.FindByFecha(ctx, f)
}

func (r *stubCajaRepo) Create(_ context.Context, _ *gorm.DB, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := c.Fecha.Format(layout)
	if _, ok := r.cajas[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.cajas[key] = &cp
	return nil
}

func (r *stubCajaRepo) Update(_ context.Context, _ *gorm.DB, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.cajas[c.Fecha.Format(layout)] = &cp
	return nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

type stubMovimientoRepo struct {
	movs   []model.Movimiento
	medios map[uint]string
	nextID uint
}

func newStubMovimientoRepo(medios map[uint]string) *stubMovimientoRepo {
	return &stubMovimientoRepo{medios: medios}
}

func (r *stubMovimientoRepo) Create(_ context.Context, _ *gorm.DB, m *model.Movimiento) error {
	r.nextID++
	m.ID = r.nextID
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) FindByID(_ context.Context, id uint) (*model.Movimiento, error) {
	for i := range r.movs {
		if r.movs[i].ID == id {
			m := r.movs[i]
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMovimientoRepo) List(_ context.Context, f dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	var out []model.Movimiento
	for _, m := range r.movs {
		if f.Fecha != "" && m.Fecha.Format(layout) != f.Fecha {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimientoRepo) Delete(_ context.Context, id uint) error {
	for i := range r.movs {
		if r.movs[i].ID == id {
			r.movs = append(r.movs[:i], r.movs[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// TotalesPorMedio groups like the SQL query: by tipo and medio, joined to the
// current medio names.
func (r *stubMovimientoRepo) TotalesPorMedio(_ context.Context, f string) ([]repository.TotalMedioRow, error) {
	type key struct {
		tipo  string
		medio uint
	}
	acc := map[key]*repository.TotalMedioRow{}
	var keys []key
	for _, m := range r.movs {
		if m.Fecha.Format(layout) != f {
			continue
		}
		k := key{m.Tipo, m.MedioDePagoID}
		row, ok := acc[k]
		if !ok {
			row = &repository.TotalMedioRow{Tipo: m.Tipo, MedioDePagoID: m.MedioDePagoID, Total: decimal.Zero}
			if n, ok := r.medios[m.MedioDePagoID]; ok {
				nombre := n
				row.MedioDePago = &nombre
			}
			acc[k] = row
			keys = append(keys, k)
		}
		row.Cantidad++
		row.Total = row.Total.Add(m.Monto)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].medio > keys[j].medio })
	out := make([]repository.TotalMedioRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, *acc[k])
	}
	return out, nil
}

func (r *stubMovimientoRepo) CountByConcepto(_ context.Context, conceptoID uint) (int64, error) {
	var n int64
	for _, m := range r.movs {
		if m.ConceptoID == conceptoID {
			n++
		}
	}
	return n, nil
}

func (r *stubMovimientoRepo) CountPorConcepto(_ context.Context) (map[uint]int64, error) {
	out := map[uint]int64{}
	for _, m := range r.movs {
		out[m.ConceptoID]++
	}
	return out, nil
}

type stubConceptoRepo struct {
	conceptos map[uint]*model.Concepto
	nextID    uint
}

func newStubConceptoRepo(cs ...model.Concepto) *stubConceptoRepo {
	r := &stubConceptoRepo{conceptos: map[uint]*model.Concepto{}}
	for i := range cs {
		c := cs[i]
		r.conceptos[c.ID] = &c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *stubConceptoRepo) Crear(_ context.Context, c *model.Concepto) error {
	for _, e := range r.conceptos {
		if e.Nombre == c.Nombre && e.Tipo == c.Tipo {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.conceptos[c.ID] = &cp
	return nil
}

func (r *stubConceptoRepo) Listar(_ context.Context, tipo string) ([]model.Concepto, error) {
	var out []model.Concepto
	for _, c := range r.conceptos {
		if tipo == "" || c.Tipo == tipo {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubConceptoRepo) ObtenerPorID(_ context.Context, id uint) (*model.Concepto, error) {
	c, ok := r.conceptos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubConceptoRepo) Actualizar(_ context.Context, c *model.Concepto) error {
	cp := *c
	r.conceptos[c.ID] = &cp
	return nil
}

func (r *stubConceptoRepo) Eliminar(_ context.Context, id uint) error {
	if _, ok := r.conceptos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.conceptos, id)
	return nil
}

type stubMedioRepo struct {
	medios map[uint]string
}

func (r *stubMedioRepo) Crear(_ context.Context, m *model.MedioDePago) error {
	m.ID = uint(len(r.medios) + 1)
	r.medios[m.ID] = m.Nombre
	return nil
}

func (r *stubMedioRepo) Listar(_ context.Context) ([]model.MedioDePago, error) {
	out := make([]model.MedioDePago, 0, len(r.medios))
	for id, n := range r.medios {
		out = append(out, model.MedioDePago{ID: id, Nombre: n})
	}
	return out, nil
}

func (r *stubMedioRepo) ObtenerPorID(_ context.Context, id uint) (*model.MedioDePago, error) {
	n, ok := r.medios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.MedioDePago{ID: id, Nombre: n}, nil
}

func (r *stubMedioRepo) Actualizar(_ context.Context, m *model.MedioDePago) error {
	r.medios[m.ID] = m.Nombre
	return nil
}

func (r *stubMedioRepo) Eliminar(_ context.Context, id uint) error {
	delete(r.medios, id)
	return nil
}

// stubCache records keys so tests can assert what was cached.
type stubCache struct {
	data    map[string]dto.ResumenDiaResponse
	deleted []string
}

func newStubCache() *stubCache { return &stubCache{data: map[string]dto.ResumenDiaResponse{}} }

func (c *stubCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dst.(*dto.ResumenDiaResponse)) = v
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.data[key] = value.(dto.ResumenDiaResponse)
	return nil
}

func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *stubCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			c.deleted = append(c.deleted, k)
		}
	}
	return nil
}

// stubCorreo captures queued mails.
type stubCorreo struct {
	enviados []string
}

func (c *stubCorreo) EnqueueEmail(_ context.Context, para []string, asunto, _, _ string) error {
	c.enviados = append(c.enviados, asunto)
	return nil
}
