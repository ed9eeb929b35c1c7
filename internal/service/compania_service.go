package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"gorm.io/gorm"
)

// CompaniaService manages insurance companies. They are deactivated, never
// deleted, since orders keep pointing at them.
type CompaniaService interface {
	Crear(ctx context.Context, req dto.CrearCompaniaRequest) (dto.CompaniaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CompaniaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarCompaniaRequest) (dto.CompaniaResponse, error)
	Desactivar(ctx context.Context, id uint) error
}

type companiaService struct {
	repo repository.CompaniaRepository
}

func NewCompaniaService(repo repository.CompaniaRepository) CompaniaService {
	return &companiaService{repo: repo}
}

func mapCompania(c model.CompaniaSeguro) dto.CompaniaResponse {
	return dto.CompaniaResponse{
		ID:       c.ID,
		Nombre:   c.Nombre,
		CUIT:     c.CUIT,
		Telefono: c.Telefono,
		Activo:   c.Activo,
	}
}

func (s *companiaService) Crear(ctx context.Context, req dto.CrearCompaniaRequest) (dto.CompaniaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	existing, err := s.repo.ObtenerPorNombre(ctx, nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CompaniaResponse{}, err
	}
	if existing != nil {
		return dto.CompaniaResponse{}, fmt.Errorf("%w: ya existe una compañía con ese nombre", apierror.ErrConflicto)
	}

	c := &model.CompaniaSeguro{
		Nombre:   nombre,
		CUIT:     limpiar(req.CUIT),
		Telefono: limpiar(req.Telefono),
		Activo:   true,
	}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.CompaniaResponse{}, traducir(err, "compañía de seguro")
	}
	return mapCompania(*c), nil
}

func (s *companiaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CompaniaResponse, error) {
	list, err := s.repo.Listar(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CompaniaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCompania(c))
	}
	return result, nil
}

func (s *companiaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarCompaniaRequest) (dto.CompaniaResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.CompaniaResponse{}, traducir(err, "compañía de seguro")
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if !strings.EqualFold(nombre, c.Nombre) {
			existing, err := s.repo.ObtenerPorNombre(ctx, nombre)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CompaniaResponse{}, err
			}
			if existing != nil && existing.ID != id {
				return dto.CompaniaResponse{}, fmt.Errorf("%w: ya existe una compañía con ese nombre", apierror.ErrConflicto)
			}
		}
		c.Nombre = nombre
	}
	if req.CUIT != nil {
		c.CUIT = limpiar(req.CUIT)
	}
	if req.Telefono != nil {
		c.Telefono = limpiar(req.Telefono)
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}

	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.CompaniaResponse{}, traducir(err, "compañía de seguro")
	}
	return mapCompania(*c), nil
}

func (s *companiaService) Desactivar(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return traducir(err, "compañía de seguro")
	}
	return s.repo.Desactivar(ctx, id)
}
