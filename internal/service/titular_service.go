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

type TitularService interface {
	Crear(ctx context.Context, req dto.TitularRequest) (dto.TitularResponse, error)
	Listar(ctx context.Context, buscar string) ([]dto.TitularResponse, error)
	Obtener(ctx context.Context, id uint) (dto.TitularResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.TitularRequest) (dto.TitularResponse, error)
	Eliminar(ctx context.Context, id uint) error

	// Vincular links an existing vehiculo to the titular; orders are opened on the link.
	Vincular(ctx context.Context, titularID uint, req dto.VincularVehiculoRequest) (dto.TitularVehiculoResponse, error)
	Desvincular(ctx context.Context, titularID, vehiculoID uint) error
}

type titularService struct {
	repo      repository.TitularRepository
	vehiculos repository.VehiculoRepository
}

func NewTitularService(repo repository.TitularRepository, vehiculos repository.VehiculoRepository) TitularService {
	return &titularService{repo: repo, vehiculos: vehiculos}
}

func mapTitular(t model.Titular) dto.TitularResponse {
	return dto.TitularResponse{
		ID:        t.ID,
		Nombre:    t.Nombre,
		Apellido:  t.Apellido,
		Documento: t.Documento,
		Telefono:  t.Telefono,
		Email:     t.Email,
		Direccion: t.Direccion,
	}
}

func aplicarTitular(t *model.Titular, req dto.TitularRequest) {
	t.Nombre = strings.TrimSpace(req.Nombre)
	t.Apellido = strings.TrimSpace(req.Apellido)
	t.Documento = limpiar(req.Documento)
	t.Telefono = limpiar(req.Telefono)
	t.Email = limpiar(req.Email)
	t.Direccion = limpiar(req.Direccion)
}

func (s *titularService) Crear(ctx context.Context, req dto.TitularRequest) (dto.TitularResponse, error) {
	t := &model.Titular{}
	aplicarTitular(t, req)
	if err := s.repo.Crear(ctx, t); err != nil {
		return dto.TitularResponse{}, traducir(err, "titular")
	}
	return mapTitular(*t), nil
}

func (s *titularService) Listar(ctx context.Context, buscar string) ([]dto.TitularResponse, error) {
	list, err := s.repo.Listar(ctx, strings.TrimSpace(buscar))
	if err != nil {
		return nil, err
	}
	result := make([]dto.TitularResponse, 0, len(list))
	for _, t := range list {
		result = append(result, mapTitular(t))
	}
	return result, nil
}

// Obtener includes the titular's vehicles.
func (s *titularService) Obtener(ctx context.Context, id uint) (dto.TitularResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.TitularResponse{}, traducir(err, "titular")
	}
	vinculos, err := s.repo.VehiculosDe(ctx, id)
	if err != nil {
		return dto.TitularResponse{}, err
	}
	resp := mapTitular(*t)
	resp.Vehiculos = make([]dto.VehiculoResponse, 0, len(vinculos))
	for _, tv := range vinculos {
		if tv.Vehiculo == nil {
			continue
		}
		vinculoID := tv.ID
		resp.Vehiculos = append(resp.Vehiculos, mapVehiculo(*tv.Vehiculo, &vinculoID))
	}
	return resp, nil
}

func (s *titularService) Actualizar(ctx context.Context, id uint, req dto.TitularRequest) (dto.TitularResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.TitularResponse{}, traducir(err, "titular")
	}
	aplicarTitular(t, req)
	if err := s.repo.Actualizar(ctx, t); err != nil {
		return dto.TitularResponse{}, traducir(err, "titular")
	}
	return mapTitular(*t), nil
}

func (s *titularService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return traducir(err, "titular")
	}
	vinculos, err := s.repo.VehiculosDe(ctx, id)
	if err != nil {
		return err
	}
	if len(vinculos) > 0 {
		return fmt.Errorf("%w: el titular tiene %d vehículos vinculados", apierror.ErrReferencia, len(vinculos))
	}
	return traducir(s.repo.Eliminar(ctx, id), "titular")
}

func (s *titularService) Vincular(ctx context.Context, titularID uint, req dto.VincularVehiculoRequest) (dto.TitularVehiculoResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, titularID)
	if err != nil {
		return dto.TitularVehiculoResponse{}, traducir(err, "titular")
	}
	v, err := s.vehiculos.ObtenerVehiculo(ctx, req.VehiculoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TitularVehiculoResponse{}, fmt.Errorf("%w: el vehículo %d no existe", apierror.ErrValidacion, req.VehiculoID)
	}
	if err != nil {
		return dto.TitularVehiculoResponse{}, err
	}

	tv := &model.TitularVehiculo{TitularID: t.ID, VehiculoID: v.ID}
	if err := s.repo.Vincular(ctx, tv); err != nil {
		if repository.EsDuplicado(err) {
			return dto.TitularVehiculoResponse{}, fmt.Errorf("%w: el vehículo ya está vinculado al titular", apierror.ErrConflicto)
		}
		return dto.TitularVehiculoResponse{}, err
	}
	return dto.TitularVehiculoResponse{
		ID:         tv.ID,
		TitularID:  t.ID,
		VehiculoID: v.ID,
		Titular:    t.NombreCompleto(),
		Patente:    v.Patente,
	}, nil
}

func (s *titularService) Desvincular(ctx context.Context, titularID, vehiculoID uint) error {
	return traducir(s.repo.Desvincular(ctx, titularID, vehiculoID), "vínculo titular/vehículo")
}
