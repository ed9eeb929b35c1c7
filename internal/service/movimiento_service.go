package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MovimientoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error)
	Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.MovimientoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type movimientoService struct {
	repo      repository.MovimientoRepository
	conceptos repository.ConceptoRepository
	medios    repository.MedioDePagoRepository
	resumen   Invalidador
	reloj     Reloj
}

func NewMovimientoService(
	repo repository.MovimientoRepository,
	conceptos repository.ConceptoRepository,
	medios repository.MedioDePagoRepository,
	resumen Invalidador,
	reloj Reloj,
) MovimientoService {
	return &movimientoService{repo: repo, conceptos: conceptos, medios: medios, resumen: resumen, reloj: reloj}
}

func (s *movimientoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearMovimientoRequest) (*dto.MovimientoResponse, error) {
	fechaStr, err := s.reloj.resolverFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	fecha, _ := parseFecha(fechaStr)

	monto := req.Monto.Round(2)
	if !monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", apierror.ErrValidacion)
	}
	if req.Tipo != model.TipoIngreso && req.Tipo != model.TipoEgreso {
		return nil, fmt.Errorf("%w: tipo debe ser ingreso o egreso", apierror.ErrValidacion)
	}

	concepto, err := s.conceptos.ObtenerPorID(ctx, req.ConceptoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: el concepto %d no existe", apierror.ErrValidacion, req.ConceptoID)
	}
	if err != nil {
		return nil, err
	}
	if concepto.Tipo != req.Tipo {
		return nil, fmt.Errorf("%w: el concepto %q es de tipo %s", apierror.ErrValidacion, concepto.Nombre, concepto.Tipo)
	}

	medio, err := s.medios.ObtenerPorID(ctx, req.MedioDePagoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: el medio de pago %d no existe", apierror.ErrValidacion, req.MedioDePagoID)
	}
	if err != nil {
		return nil, err
	}

	m := &model.Movimiento{
		Fecha:         fecha,
		Monto:         monto,
		ConceptoID:    concepto.ID,
		MedioDePagoID: medio.ID,
		Tipo:          req.Tipo,
		Comprobante:   limpiar(req.Comprobante),
		OrdenID:       req.OrdenID,
	}
	if usuarioID != uuid.Nil {
		m.UsuarioID = &usuarioID
	}
	if err := s.repo.Create(ctx, nil, m); err != nil {
		return nil, err
	}
	m.Concepto = concepto

	log.Info().
		Uint("movimiento_id", m.ID).
		Str("tipo", m.Tipo).
		Str("monto", m.Monto.StringFixed(2)).
		Str("fecha", fechaStr).
		Msg("movimiento registrado")

	s.resumen.Invalidar(ctx, fechaStr)
	resp := mapMovimiento(*m, map[uint]string{medio.ID: medio.Nombre})
	return &resp, nil
}

func (s *movimientoService) Listar(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	for _, f := range []string{filter.Fecha, filter.Desde, filter.Hasta} {
		if f == "" {
			continue
		}
		if _, err := parseFecha(f); err != nil {
			return nil, err
		}
	}
	if filter.Tipo != "" && filter.Tipo != model.TipoIngreso && filter.Tipo != model.TipoEgreso {
		return nil, fmt.Errorf("%w: tipo debe ser ingreso o egreso", apierror.ErrValidacion)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	movs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	nombres, err := s.nombresMedios(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		data = append(data, mapMovimiento(m, nombres))
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *movimientoService) Obtener(ctx context.Context, id uint) (*dto.MovimientoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, "movimiento")
	}
	nombres, err := s.nombresMedios(ctx)
	if err != nil {
		return nil, err
	}
	resp := mapMovimiento(*m, nombres)
	return &resp, nil
}

func (s *movimientoService) Eliminar(ctx context.Context, id uint) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return traducir(err, "movimiento")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return traducir(err, "movimiento")
	}
	fecha := formatFecha(m.Fecha)
	log.Info().Uint("movimiento_id", id).Str("fecha", fecha).Msg("movimiento eliminado")
	s.resumen.Invalidar(ctx, fecha)
	return nil
}

func (s *movimientoService) nombresMedios(ctx context.Context) (map[uint]string, error) {
	medios, err := s.medios.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(medios))
	for _, m := range medios {
		out[m.ID] = m.Nombre
	}
	return out, nil
}

func mapMovimiento(m model.Movimiento, medios map[uint]string) dto.MovimientoResponse {
	resp := dto.MovimientoResponse{
		ID:            m.ID,
		Fecha:         formatFecha(m.Fecha),
		Monto:         m.Monto,
		Tipo:          m.Tipo,
		ConceptoID:    m.ConceptoID,
		MedioDePagoID: m.MedioDePagoID,
		MedioDePago:   MedioSinNombre,
		Comprobante:   m.Comprobante,
		OrdenID:       m.OrdenID,
	}
	if m.Concepto != nil {
		resp.Concepto = m.Concepto.Nombre
	}
	if nombre, ok := medios[m.MedioDePagoID]; ok {
		resp.MedioDePago = nombre
	}
	return resp
}
