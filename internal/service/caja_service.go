package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CajaService guards the daily cash register. Only today's caja can be opened
// or closed; it opens once and closes once.
type CajaService interface {
	Estado(ctx context.Context, fecha string) (*dto.EstadoCajaResponse, error)
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.EstadoCajaResponse, error)
}

// ColaCorreo is satisfied by *worker.Dispatcher.
type ColaCorreo interface {
	EnqueueEmail(ctx context.Context, para []string, asunto, cuerpo, adjunto string) error
}

// CierreConfig controls the summary mail sent after closing. An empty
// Destinatario disables it.
type CierreConfig struct {
	Destinatario string
	PDFDir       string
	Comercio     string
}

type cajaService struct {
	repo    repository.CajaRepository
	resumen ResumenService
	correo  ColaCorreo
	cierre  CierreConfig
	reloj   Reloj
}

func NewCajaService(
	repo repository.CajaRepository,
	resumen ResumenService,
	correo ColaCorreo,
	cierre CierreConfig,
	reloj Reloj,
) CajaService {
	return &cajaService{repo: repo, resumen: resumen, correo: correo, cierre: cierre, reloj: reloj}
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context, fecha string) (*dto.EstadoCajaResponse, error) {
	fecha, err := s.reloj.resolverFecha(fecha)
	if err != nil {
		return nil, err
	}
	caja, err := buscarCaja(ctx, s.repo, fecha)
	if err != nil {
		return nil, err
	}
	resp := mapCaja(caja, fecha, s.reloj)
	return &resp, nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error) {
	hoy := s.reloj.Hoy()
	if err := soloHoy(req.Date, hoy); err != nil {
		return nil, err
	}
	if req.OpeningBalance == nil {
		return nil, fmt.Errorf("%w: el saldo inicial es obligatorio", apierror.ErrValidacion)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: el saldo inicial no puede ser negativo", apierror.ErrValidacion)
	}

	existente, err := buscarCaja(ctx, s.repo, hoy)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, conflictoApertura(existente)
	}

	fecha, _ := parseFecha(hoy)
	caja := &model.Caja{
		Fecha:         fecha,
		SaldoInicial:  *req.OpeningBalance,
		AbiertaEn:     s.reloj.Ahora(),
		NotasApertura: limpiar(req.Notes),
	}
	if usuarioID != uuid.Nil {
		caja.UsuarioAperturaID = &usuarioID
	}

	// the unique index on fecha settles two concurrent openings
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, caja)
	})
	if repository.EsDuplicado(err) {
		return nil, fmt.Errorf("%w: la caja de hoy ya fue abierta", apierror.ErrConflicto)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("fecha", hoy).
		Str("saldo_inicial", caja.SaldoInicial.StringFixed(2)).
		Str("usuario_id", usuarioID.String()).
		Msg("caja abierta")

	s.resumen.Invalidar(ctx, hoy)
	resp := mapCaja(caja, hoy, s.reloj)
	return &resp, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.EstadoCajaResponse, error) {
	hoy := s.reloj.Hoy()
	if err := soloHoy(req.Date, hoy); err != nil {
		return nil, err
	}

	var caja *model.Caja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByFechaForUpdate(ctx, tx, hoy)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: la caja no está abierta", apierror.ErrConflicto)
		}
		if err != nil {
			return err
		}
		if c.CerradaEn != nil {
			return fmt.Errorf("%w: la caja de hoy ya fue cerrada", apierror.ErrConflicto)
		}

		ahora := s.reloj.Ahora()
		c.CerradaEn = &ahora
		c.NotasCierre = limpiar(req.Notes)
		if usuarioID != uuid.Nil {
			c.UsuarioCierreID = &usuarioID
		}
		if err := s.repo.Update(ctx, tx, c); err != nil {
			return err
		}
		caja = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("fecha", hoy).Str("usuario_id", usuarioID.String()).Msg("caja cerrada")

	s.resumen.Invalidar(ctx, hoy)
	s.enviarResumen(ctx, hoy)

	resp := mapCaja(caja, hoy, s.reloj)
	return &resp, nil
}

// enviarResumen queues the closing mail with the printable summary attached.
// Failures are logged, the caja is already closed.
func (s *cajaService) enviarResumen(ctx context.Context, fecha string) {
	if s.correo == nil || s.cierre.Destinatario == "" {
		return
	}
	pdf, err := s.resumen.Imprimir(ctx, fecha)
	if err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("caja: resumen PDF failed")
		return
	}
	path, err := infra.GuardarPDF(s.cierre.PDFDir, "resumen_"+fecha+".pdf", pdf)
	if err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("caja: resumen PDF not stored")
		return
	}
	asunto := fmt.Sprintf("%s: cierre de caja %s", s.cierre.Comercio, fecha)
	cuerpo := fmt.Sprintf("Se cerró la caja del día %s. Se adjunta el resumen del día.", fecha)
	if err := s.correo.EnqueueEmail(ctx, []string{s.cierre.Destinatario}, asunto, cuerpo, path); err != nil {
		log.Error().Err(err).Str("fecha", fecha).Msg("caja: failed to enqueue resumen mail")
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func soloHoy(date *string, hoy string) error {
	if date == nil || *date == "" || *date == hoy {
		return nil
	}
	if _, err := parseFecha(*date); err != nil {
		return err
	}
	return fmt.Errorf("%w: solo se puede operar la caja del día de hoy (%s)", apierror.ErrValidacion, hoy)
}

func conflictoApertura(c *model.Caja) error {
	if model.EstadoDe(c) == model.CajaCerrada {
		return fmt.Errorf("%w: la caja de hoy ya fue cerrada", apierror.ErrConflicto)
	}
	return fmt.Errorf("%w: la caja de hoy ya fue abierta", apierror.ErrConflicto)
}

// buscarCaja returns nil, nil when the date has no caja row.
func buscarCaja(ctx context.Context, repo repository.CajaRepository, fecha string) (*model.Caja, error) {
	c, err := repo.FindByFecha(ctx, fecha)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func mapCaja(c *model.Caja, fecha string, reloj Reloj) dto.EstadoCajaResponse {
	estado := model.EstadoDe(c)
	esHoy := fecha == reloj.Hoy()
	resp := dto.EstadoCajaResponse{
		Fecha:       fecha,
		Estado:      string(estado),
		EsHoy:       esHoy,
		PuedeAbrir:  esHoy && estado == model.CajaNoAbierta,
		PuedeCerrar: esHoy && estado == model.CajaAbierta,
	}
	if c == nil {
		return resp
	}
	saldo := c.SaldoInicial
	resp.SaldoInicial = &saldo
	abierta := c.AbiertaEn.In(reloj.loc).Format(time.RFC3339)
	resp.AbiertaEn = &abierta
	if c.CerradaEn != nil {
		cerrada := c.CerradaEn.In(reloj.loc).Format(time.RFC3339)
		resp.CerradaEn = &cerrada
	}
	resp.NotasApertura = c.NotasApertura
	resp.NotasCierre = c.NotasCierre
	return resp
}
