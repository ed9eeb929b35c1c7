package service

import (
	"context"
	"strings"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/rs/zerolog/log"
)

type MedioDePagoService interface {
	Crear(ctx context.Context, req dto.MedioDePagoRequest) (dto.MedioDePagoResponse, error)
	Listar(ctx context.Context) ([]dto.MedioDePagoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.MedioDePagoRequest) (dto.MedioDePagoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type medioDePagoService struct {
	repo    repository.MedioDePagoRepository
	resumen InvalidadorGlobal
}

// NewMedioDePagoService builds the service. Renames and deletions change how
// every cached summary shows the medio, so they drop the resumen cache.
func NewMedioDePagoService(repo repository.MedioDePagoRepository, resumen InvalidadorGlobal) MedioDePagoService {
	return &medioDePagoService{repo: repo, resumen: resumen}
}

func mapMedio(m model.MedioDePago) dto.MedioDePagoResponse {
	return dto.MedioDePagoResponse{ID: m.ID, Nombre: m.Nombre}
}

func (s *medioDePagoService) Crear(ctx context.Context, req dto.MedioDePagoRequest) (dto.MedioDePagoResponse, error) {
	m := &model.MedioDePago{Nombre: strings.TrimSpace(req.Nombre)}
	if err := s.repo.Crear(ctx, m); err != nil {
		return dto.MedioDePagoResponse{}, traducir(err, "medio de pago")
	}
	return mapMedio(*m), nil
}

func (s *medioDePagoService) Listar(ctx context.Context) ([]dto.MedioDePagoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MedioDePagoResponse, 0, len(list))
	for _, m := range list {
		result = append(result, mapMedio(m))
	}
	return result, nil
}

func (s *medioDePagoService) Actualizar(ctx context.Context, id uint, req dto.MedioDePagoRequest) (dto.MedioDePagoResponse, error) {
	m, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.MedioDePagoResponse{}, traducir(err, "medio de pago")
	}
	m.Nombre = strings.TrimSpace(req.Nombre)
	if err := s.repo.Actualizar(ctx, m); err != nil {
		return dto.MedioDePagoResponse{}, traducir(err, "medio de pago")
	}
	s.resumen.InvalidarTodo(ctx)
	return mapMedio(*m), nil
}

// Eliminar is not guarded: precios and movimientos keep the id and are shown
// with MedioSinNombre from then on.
func (s *medioDePagoService) Eliminar(ctx context.Context, id uint) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		return traducir(err, "medio de pago")
	}
	log.Warn().Uint("medio_de_pago_id", id).Msg("medio de pago eliminado, referencias historicas quedan sin nombre")
	s.resumen.InvalidarTodo(ctx)
	return nil
}
