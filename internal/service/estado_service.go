package service

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"
)

// EstadoService exposes the read-only estados lookup.
type EstadoService interface {
	Listar(ctx context.Context) ([]dto.EstadoResponse, error)
}

type estadoService struct {
	repo repository.EstadoRepository
}

func NewEstadoService(repo repository.EstadoRepository) EstadoService {
	return &estadoService{repo: repo}
}

func (s *estadoService) Listar(ctx context.Context) ([]dto.EstadoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EstadoResponse, 0, len(list))
	for _, e := range list {
		result = append(result, dto.EstadoResponse{ID: uint(e.ID), Nombre: e.Nombre})
	}
	return result, nil
}
