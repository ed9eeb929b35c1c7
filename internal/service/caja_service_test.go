package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var art = time.FixedZone("ART", -3*3600)

// 2025-01-10 15:30 in Buenos Aires, 18:30 UTC.
func relojTest() service.Reloj {
	return service.RelojFijo(time.Date(2025, 1, 10, 15, 30, 0, 0, art))
}

type cajaFixture struct {
	svc    service.CajaService
	repo   *stubCajaRepo
	movs   *stubMovimientoRepo
	correo *stubCorreo
}

func newCajaFixture(t *testing.T, destinatario string) cajaFixture {
	t.Helper()
	repo := newStubCajaRepo()
	movs := newStubMovimientoRepo(map[uint]string{1: "Efectivo"})
	resumen := service.NewResumenService(repo, movs, nil, 0, relojTest(), "Cristales Test")
	correo := &stubCorreo{}
	svc := service.NewCajaService(repo, resumen, correo, service.CierreConfig{
		Destinatario: destinatario,
		PDFDir:       t.TempDir(),
		Comercio:     "Cristales Test",
	}, relojTest())
	return cajaFixture{svc: svc, repo: repo, movs: movs, correo: correo}
}

func saldo(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func TestCaja_EstadoSinAbrir(t *testing.T) {
	f := newCajaFixture(t, "")

	resp, err := f.svc.Estado(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", resp.Fecha)
	assert.Equal(t, string(model.CajaNoAbierta), resp.Estado)
	assert.True(t, resp.EsHoy)
	assert.True(t, resp.PuedeAbrir)
	assert.False(t, resp.PuedeCerrar)
	assert.Nil(t, resp.SaldoInicial)
}

func TestCaja_EstadoFechaPasadaNoOperable(t *testing.T) {
	f := newCajaFixture(t, "")

	resp, err := f.svc.Estado(context.Background(), "2025-01-09")
	require.NoError(t, err)
	assert.False(t, resp.EsHoy)
	assert.False(t, resp.PuedeAbrir)
	assert.False(t, resp.PuedeCerrar)
}

func TestCaja_EstadoFechaInvalida(t *testing.T) {
	f := newCajaFixture(t, "")

	_, err := f.svc.Estado(context.Background(), "10/01/2025")
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCaja_AbrirYCerrar(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()
	usuario := uuid.New()

	abierta, err := f.svc.Abrir(ctx, usuario, dto.AbrirCajaRequest{
		OpeningBalance: saldo("1500.50"),
		Notes:          ptr("  turno mañana  "),
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaAbierta), abierta.Estado)
	assert.True(t, abierta.PuedeCerrar)
	require.NotNil(t, abierta.SaldoInicial)
	assert.Equal(t, "1500.50", abierta.SaldoInicial.StringFixed(2))
	require.NotNil(t, abierta.NotasApertura)
	assert.Equal(t, "turno mañana", *abierta.NotasApertura)

	guardada := f.repo.cajas["2025-01-10"]
	require.NotNil(t, guardada)
	assert.Equal(t, usuario, *guardada.UsuarioAperturaID)

	cerrada, err := f.svc.Cerrar(ctx, usuario, dto.CerrarCajaRequest{Notes: ptr("sin novedades")})
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaCerrada), cerrada.Estado)
	assert.NotNil(t, cerrada.CerradaEn)
	assert.False(t, cerrada.PuedeAbrir)
	assert.False(t, cerrada.PuedeCerrar)
}

func TestCaja_AbrirDosVecesEsConflicto(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("0")})
	require.NoError(t, err)

	_, err = f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("100")})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}

func TestCaja_NoSeReabreDespuesDelCierre(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10")})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(ctx, uuid.Nil, dto.CerrarCajaRequest{})
	require.NoError(t, err)

	_, err = f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10")})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.Contains(t, err.Error(), "cerrada")

	_, err = f.svc.Cerrar(ctx, uuid.Nil, dto.CerrarCajaRequest{})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}

func TestCaja_CerrarSinAbrir(t *testing.T) {
	f := newCajaFixture(t, "")

	_, err := f.svc.Cerrar(context.Background(), uuid.Nil, dto.CerrarCajaRequest{})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.Contains(t, err.Error(), "no está abierta")
}

func TestCaja_AbrirValidaSaldo(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	_, err = f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("-1")})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	assert.Empty(t, f.repo.cajas)
}

func TestCaja_SoloOperaHoy(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10"), Date: ptr("2025-01-09")})
	assert.ErrorIs(t, err, apierror.ErrValidacion)

	// today's date given explicitly is accepted
	_, err = f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10"), Date: ptr("2025-01-10")})
	require.NoError(t, err)

	_, err = f.svc.Cerrar(ctx, uuid.Nil, dto.CerrarCajaRequest{Date: ptr("2025-01-11")})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestCaja_CierreEncolaResumenPorMail(t *testing.T) {
	f := newCajaFixture(t, "dueño@cristales.test")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10")})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(ctx, uuid.Nil, dto.CerrarCajaRequest{})
	require.NoError(t, err)

	require.Len(t, f.correo.enviados, 1)
	assert.Contains(t, f.correo.enviados[0], "2025-01-10")
}

func TestCaja_CierreSinDestinatarioNoEnviaMail(t *testing.T) {
	f := newCajaFixture(t, "")
	ctx := context.Background()

	_, err := f.svc.Abrir(ctx, uuid.Nil, dto.AbrirCajaRequest{OpeningBalance: saldo("10")})
	require.NoError(t, err)
	_, err = f.svc.Cerrar(ctx, uuid.Nil, dto.CerrarCajaRequest{})
	require.NoError(t, err)

	assert.Empty(t, f.correo.enviados)
}
