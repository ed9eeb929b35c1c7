package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Order stubs ──────────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes map[uint]*model.OrdenDeTrabajo
	seq     int
	nextID  uint
	updates []model.OrdenDeTrabajo
	// antesDeUpdate runs between the read and the write of Actualizar
	antesDeUpdate func()
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{ordenes: map[uint]*model.OrdenDeTrabajo{}}
}

func (r *stubOrdenRepo) NextNumero(_ context.Context, _ *gorm.DB, f time.Time) (string, error) {
	r.seq++
	return fmt.Sprintf("OT-%04d-%06d", f.Year(), r.seq), nil
}

func (r *stubOrdenRepo) Create(_ context.Context, _ *gorm.DB, o *model.OrdenDeTrabajo) error {
	r.nextID++
	o.ID = r.nextID
	cp := *o
	r.ordenes[o.ID] = &cp
	return nil
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uint) (*model.OrdenDeTrabajo, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrdenRepo) List(_ context.Context, f dto.OrdenFilter) ([]model.OrdenDeTrabajo, int64, error) {
	var out []model.OrdenDeTrabajo
	for _, o := range r.ordenes {
		if f.EstadoID != 0 && uint(o.EstadoID) != f.EstadoID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

// Update keeps estado and numero of the stored row, like the gorm repository.
func (r *stubOrdenRepo) Update(_ context.Context, _ *gorm.DB, o *model.OrdenDeTrabajo) error {
	if r.antesDeUpdate != nil {
		r.antesDeUpdate()
	}
	r.updates = append(r.updates, *o)
	cp := *o
	if prev, ok := r.ordenes[o.ID]; ok {
		cp.EstadoID = prev.EstadoID
		cp.Numero = prev.Numero
	}
	r.ordenes[o.ID] = &cp
	return nil
}

func (r *stubOrdenRepo) ReplaceDetalles(_ context.Context, _ *gorm.DB, id uint, ds []model.DetalleOrdenDeTrabajo) error {
	r.ordenes[id].Detalles = ds
	return nil
}

func (r *stubOrdenRepo) UpdateEstado(_ context.Context, id uint, e model.EstadoOrden) error {
	o, ok := r.ordenes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.EstadoID = e
	return nil
}

func (r *stubOrdenRepo) CreatePrecio(_ context.Context, _ *gorm.DB, p *model.Precio) error {
	o, ok := r.ordenes[p.OrdenID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ID = uint(len(o.Precios) + 1)
	o.Precios = append(o.Precios, *p)
	return nil
}

func (r *stubOrdenRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.ordenes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ordenes, id)
	return nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

type stubEstadoRepo struct{}

func (stubEstadoRepo) Listar(_ context.Context) ([]model.Estado, error) {
	var out []model.Estado
	for _, e := range model.EstadosOrden() {
		out = append(out, model.Estado{ID: e, Nombre: e.String()})
	}
	return out, nil
}

func (stubEstadoRepo) Existe(_ context.Context, id model.EstadoOrden) (bool, error) {
	return id.Valido(), nil
}

func (stubEstadoRepo) Sembrar(_ context.Context) error { return nil }

// stubTitularRepo only knows about links; orders are opened on them.
type stubTitularRepo struct {
	vinculos map[uint]*model.TitularVehiculo
}

func (r *stubTitularRepo) Crear(context.Context, *model.Titular) error { return nil }
func (r *stubTitularRepo) Listar(context.Context, string) ([]model.Titular, error) {
	return nil, nil
}
func (r *stubTitularRepo) ObtenerPorID(context.Context, uint) (*model.Titular, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubTitularRepo) Actualizar(context.Context, *model.Titular) error { return nil }
func (r *stubTitularRepo) Eliminar(context.Context, uint) error             { return nil }
func (r *stubTitularRepo) Vincular(context.Context, *model.TitularVehiculo) error {
	return nil
}
func (r *stubTitularRepo) Desvincular(context.Context, uint, uint) error { return nil }
func (r *stubTitularRepo) VehiculosDe(context.Context, uint) ([]model.TitularVehiculo, error) {
	return nil, nil
}
func (r *stubTitularRepo) ObtenerVinculo(_ context.Context, id uint) (*model.TitularVehiculo, error) {
	tv, ok := r.vinculos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tv, nil
}

type stubCompaniaRepo struct {
	companias map[uint]*model.CompaniaSeguro
}

func (r *stubCompaniaRepo) Crear(context.Context, *model.CompaniaSeguro) error { return nil }
func (r *stubCompaniaRepo) Listar(context.Context, bool) ([]model.CompaniaSeguro, error) {
	return nil, nil
}
func (r *stubCompaniaRepo) ObtenerPorID(_ context.Context, id uint) (*model.CompaniaSeguro, error) {
	c, ok := r.companias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *stubCompaniaRepo) ObtenerPorNombre(context.Context, string) (*model.CompaniaSeguro, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubCompaniaRepo) Actualizar(context.Context, *model.CompaniaSeguro) error { return nil }
func (r *stubCompaniaRepo) Desactivar(context.Context, uint) error                  { return nil }

type stubObserver struct {
	eventos []dto.OrdenEstadoEvento
}

func (o *stubObserver) EstadoCambiado(_ context.Context, ev dto.OrdenEstadoEvento) {
	o.eventos = append(o.eventos, ev)
}

type stubInvalidador struct {
	fechas []string
}

func (i *stubInvalidador) Invalidar(_ context.Context, f string) { i.fechas = append(i.fechas, f) }

// ── Fixture ──────────────────────────────────────────────────────────────────

type ordenFixture struct {
	svc      service.OrdenService
	ordenes  *stubOrdenRepo
	movs     *stubMovimientoRepo
	observer *stubObserver
	resumen  *stubInvalidador
}

func newOrdenFixture() ordenFixture {
	ordenes := newStubOrdenRepo()
	movs := newStubMovimientoRepo(map[uint]string{1: "Efectivo"})
	observer := &stubObserver{}
	resumen := &stubInvalidador{}
	svc := service.NewOrdenService(service.OrdenDeps{
		Ordenes: ordenes,
		Estados: stubEstadoRepo{},
		Titulares: &stubTitularRepo{vinculos: map[uint]*model.TitularVehiculo{
			7: {ID: 7, TitularID: 1, VehiculoID: 1},
		}},
		Companias: &stubCompaniaRepo{companias: map[uint]*model.CompaniaSeguro{
			1: {ID: 1, Nombre: "La Segunda", Activo: true},
			2: {ID: 2, Nombre: "Baja", Activo: false},
		}},
		Medios: &stubMedioRepo{medios: map[uint]string{1: "Efectivo"}},
		Conceptos: newStubConceptoRepo(
			model.Concepto{ID: 1, Nombre: "Cobro de orden", Tipo: model.TipoIngreso},
			model.Concepto{ID: 2, Nombre: "Insumos", Tipo: model.TipoEgreso},
		),
		Movimientos: movs,
		Resumen:     resumen,
		Observer:    observer,
		Reloj:       relojTest(),
		Comercio:    "Cristales",
	})
	return ordenFixture{svc: svc, ordenes: ordenes, movs: movs, observer: observer, resumen: resumen}
}

func (f ordenFixture) crear(t *testing.T) *dto.OrdenResponse {
	t.Helper()
	o, err := f.svc.Crear(context.Background(), dto.CrearOrdenRequest{
		TitularVehiculoID: 7,
		Detalles:          []dto.DetalleOrdenRequest{{Descripcion: "Parabrisas", Cantidad: 1}},
	})
	require.NoError(t, err)
	return o
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestOrden_CrearAsignaNumeroYEstadoInicial(t *testing.T) {
	f := newOrdenFixture()

	o := f.crear(t)
	assert.Equal(t, "OT-2025-000001", o.Numero)
	assert.Equal(t, "2025-01-10", o.Fecha)
	assert.Equal(t, uint(model.EstadoIniciado), o.Estado.ID)
	require.Len(t, o.Detalles, 1)
	assert.Equal(t, "Parabrisas", o.Detalles[0].Descripcion)

	o2 := f.crear(t)
	assert.Equal(t, "OT-2025-000002", o2.Numero)
}

func TestOrden_CrearValidaReferencias(t *testing.T) {
	f := newOrdenFixture()
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, dto.CrearOrdenRequest{TitularVehiculoID: 99})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	inactiva := uint(2)
	_, err = f.svc.Crear(ctx, dto.CrearOrdenRequest{TitularVehiculoID: 7, CompaniaSeguroID: &inactiva})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	_, err = f.svc.Crear(ctx, dto.CrearOrdenRequest{TitularVehiculoID: 7, Fecha: ptr("ayer")})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	assert.Empty(t, f.ordenes.ordenes)
}

func TestOrden_ActualizarNoRevierteEstadoConcurrente(t *testing.T) {
	f := newOrdenFixture()
	ctx := context.Background()
	o := f.crear(t)

	// the workshop moves the order while the counter is editing it
	f.ordenes.antesDeUpdate = func() {
		require.NoError(t, f.ordenes.UpdateEstado(ctx, o.ID, model.EstadoCompletadaPorTaller))
	}
	obs := "Cliente retira el jueves"
	got, err := f.svc.Actualizar(ctx, o.ID, dto.ActualizarOrdenRequest{Observacion: &obs})
	require.NoError(t, err)

	assert.Equal(t, uint(model.EstadoCompletadaPorTaller), got.Estado.ID)
	assert.Equal(t, o.Numero, got.Numero)
	require.NotNil(t, got.Observacion)
	assert.Equal(t, obs, *got.Observacion)
	require.Len(t, f.ordenes.updates, 1)
}

func TestOrden_CambiarEstadoCualquierTransicion(t *testing.T) {
	estados := model.EstadosOrden()
	for _, desde := range estados {
		for _, hasta := range estados {
			t.Run(fmt.Sprintf("%s->%s", desde, hasta), func(t *testing.T) {
				f := newOrdenFixture()
				o := f.crear(t)
				f.ordenes.ordenes[o.ID].EstadoID = desde

				resp, err := f.svc.CambiarEstado(context.Background(), o.ID, uint(hasta), uuid.Nil)
				require.NoError(t, err)
				assert.Equal(t, uint(hasta), resp.Estado.ID)
				assert.Equal(t, hasta, f.ordenes.ordenes[o.ID].EstadoID)
			})
		}
	}
}

func TestOrden_FinalizadaPuedeVolverAIniciado(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)
	ctx := context.Background()

	_, err := f.svc.CambiarEstado(ctx, o.ID, uint(model.EstadoFinalizada), uuid.Nil)
	require.NoError(t, err)
	resp, err := f.svc.CambiarEstado(ctx, o.ID, uint(model.EstadoIniciado), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoIniciado.String(), resp.Estado.Nombre)
}

func TestOrden_CambiarEstadoInexistente(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)

	_, err := f.svc.CambiarEstado(context.Background(), o.ID, 42, uuid.Nil)
	assert.ErrorIs(t, err, apierror.ErrValidacion)
	assert.Equal(t, model.EstadoIniciado, f.ordenes.ordenes[o.ID].EstadoID)
	assert.Empty(t, f.observer.eventos)
}

func TestOrden_CambiarEstadoOrdenInexistente(t *testing.T) {
	f := newOrdenFixture()

	_, err := f.svc.CambiarEstado(context.Background(), 404, uint(model.EstadoEnTaller), uuid.Nil)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestOrden_CambiarEstadoNotificaObservador(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)
	usuario := uuid.New()

	_, err := f.svc.CambiarEstado(context.Background(), o.ID, uint(model.EstadoCompletadaPorTaller), usuario)
	require.NoError(t, err)

	require.Len(t, f.observer.eventos, 1)
	ev := f.observer.eventos[0]
	assert.Equal(t, o.ID, ev.OrdenID)
	assert.Equal(t, o.Numero, ev.Numero)
	assert.Equal(t, uint(model.EstadoIniciado), ev.EstadoAnterior)
	assert.Equal(t, uint(model.EstadoCompletadaPorTaller), ev.EstadoNuevo)
	assert.Equal(t, usuario.String(), ev.UsuarioID)
}

func TestOrden_RegistrarPagoConIngreso(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)
	concepto := uint(1)

	resp, err := f.svc.RegistrarPago(context.Background(), o.ID, uuid.Nil, dto.RegistrarPagoRequest{
		MedioDePagoID: 1,
		Valor:         dec("50000"),
		Pagado:        dec("20000"),
		ConceptoID:    &concepto,
	})
	require.NoError(t, err)
	assertDec(t, "50000", resp.Total)
	assertDec(t, "20000", resp.Pagado)
	assertDec(t, "30000", resp.Saldo)

	require.Len(t, f.movs.movs, 1)
	m := f.movs.movs[0]
	assert.Equal(t, model.TipoIngreso, m.Tipo)
	assertDec(t, "20000", m.Monto)
	assert.Equal(t, "2025-01-10", m.Fecha.Format(layout))
	require.NotNil(t, m.OrdenID)
	assert.Equal(t, o.ID, *m.OrdenID)
	assert.Equal(t, []string{"2025-01-10"}, f.resumen.fechas)
}

func TestOrden_RegistrarPagoSinConceptoNoMueveCaja(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)

	_, err := f.svc.RegistrarPago(context.Background(), o.ID, uuid.Nil, dto.RegistrarPagoRequest{
		MedioDePagoID: 1, Valor: dec("1000"), Pagado: dec("1000"),
	})
	require.NoError(t, err)
	assert.Empty(t, f.movs.movs)
	assert.Empty(t, f.resumen.fechas)
}

func TestOrden_RegistrarPagoConceptoDeEgreso(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)
	egreso := uint(2)

	_, err := f.svc.RegistrarPago(context.Background(), o.ID, uuid.Nil, dto.RegistrarPagoRequest{
		MedioDePagoID: 1, Valor: dec("1000"), Pagado: dec("1000"), ConceptoID: &egreso,
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
	assert.Empty(t, f.ordenes.ordenes[o.ID].Precios)
}

func TestOrden_RegistrarPagoMontosSubCentavo(t *testing.T) {
	concepto := uint(1)
	cases := map[string]dto.RegistrarPagoRequest{
		"ambos redondean a cero": {MedioDePagoID: 1, Valor: dec("0.004"), Pagado: dec("0.004"), ConceptoID: &concepto},
		"valor negativo":         {MedioDePagoID: 1, Valor: dec("-0.006"), Pagado: dec("0")},
		"pagado negativo":        {MedioDePagoID: 1, Valor: dec("10"), Pagado: dec("-0.005")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newOrdenFixture()
			o := f.crear(t)
			_, err := f.svc.RegistrarPago(context.Background(), o.ID, uuid.Nil, req)
			assert.ErrorIs(t, err, apierror.ErrValidacion)
			assert.Empty(t, f.ordenes.ordenes[o.ID].Precios)
			assert.Empty(t, f.movs.movs)
		})
	}
}

func TestOrden_RegistrarPagoPagadoSubCentavoNoMueveCaja(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)
	concepto := uint(1)

	resp, err := f.svc.RegistrarPago(context.Background(), o.ID, uuid.Nil, dto.RegistrarPagoRequest{
		MedioDePagoID: 1, Valor: dec("100"), Pagado: dec("0.004"), ConceptoID: &concepto,
	})
	require.NoError(t, err)
	assertDec(t, "0", resp.Pagado)
	assert.Empty(t, f.movs.movs)
	assert.Empty(t, f.resumen.fechas)
}

func TestOrden_ImprimirDevuelvePDF(t *testing.T) {
	f := newOrdenFixture()
	o := f.crear(t)

	pdf, nombre, err := f.svc.Imprimir(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "orden_"+o.Numero+".pdf", nombre)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
