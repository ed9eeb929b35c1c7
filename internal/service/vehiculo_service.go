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

// VehiculoService covers the vehicle catalog: marcas, modelos and vehiculos.
type VehiculoService interface {
	CrearMarca(ctx context.Context, req dto.MarcaRequest) (dto.MarcaResponse, error)
	ListarMarcas(ctx context.Context) ([]dto.MarcaResponse, error)
	ActualizarMarca(ctx context.Context, id uint, req dto.MarcaRequest) (dto.MarcaResponse, error)
	EliminarMarca(ctx context.Context, id uint) error

	CrearModelo(ctx context.Context, req dto.ModeloRequest) (dto.ModeloResponse, error)
	ListarModelos(ctx context.Context, marcaID uint) ([]dto.ModeloResponse, error)
	ActualizarModelo(ctx context.Context, id uint, req dto.ModeloRequest) (dto.ModeloResponse, error)
	EliminarModelo(ctx context.Context, id uint) error

	CrearVehiculo(ctx context.Context, req dto.VehiculoRequest) (dto.VehiculoResponse, error)
	ListarVehiculos(ctx context.Context, patente string) ([]dto.VehiculoResponse, error)
	ObtenerVehiculo(ctx context.Context, id uint) (dto.VehiculoResponse, error)
	ActualizarVehiculo(ctx context.Context, id uint, req dto.VehiculoRequest) (dto.VehiculoResponse, error)
	EliminarVehiculo(ctx context.Context, id uint) error
}

type vehiculoService struct {
	repo repository.VehiculoRepository
}

func NewVehiculoService(repo repository.VehiculoRepository) VehiculoService {
	return &vehiculoService{repo: repo}
}

// ── Marcas ───────────────────────────────────────────────────────────────────

func (s *vehiculoService) CrearMarca(ctx context.Context, req dto.MarcaRequest) (dto.MarcaResponse, error) {
	m := &model.Marca{Nombre: strings.TrimSpace(req.Nombre)}
	if err := s.repo.CrearMarca(ctx, m); err != nil {
		return dto.MarcaResponse{}, traducir(err, "marca")
	}
	return dto.MarcaResponse{ID: m.ID, Nombre: m.Nombre}, nil
}

func (s *vehiculoService) ListarMarcas(ctx context.Context) ([]dto.MarcaResponse, error) {
	list, err := s.repo.ListarMarcas(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MarcaResponse, 0, len(list))
	for _, m := range list {
		result = append(result, dto.MarcaResponse{ID: m.ID, Nombre: m.Nombre})
	}
	return result, nil
}

func (s *vehiculoService) ActualizarMarca(ctx context.Context, id uint, req dto.MarcaRequest) (dto.MarcaResponse, error) {
	m, err := s.repo.ObtenerMarca(ctx, id)
	if err != nil {
		return dto.MarcaResponse{}, traducir(err, "marca")
	}
	m.Nombre = strings.TrimSpace(req.Nombre)
	if err := s.repo.ActualizarMarca(ctx, m); err != nil {
		return dto.MarcaResponse{}, traducir(err, "marca")
	}
	return dto.MarcaResponse{ID: m.ID, Nombre: m.Nombre}, nil
}

func (s *vehiculoService) EliminarMarca(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerMarca(ctx, id); err != nil {
		return traducir(err, "marca")
	}
	n, err := s.repo.ContarModelos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la marca tiene %d modelos", apierror.ErrReferencia, n)
	}
	return traducir(s.repo.EliminarMarca(ctx, id), "marca")
}

// ── Modelos ──────────────────────────────────────────────────────────────────

func (s *vehiculoService) CrearModelo(ctx context.Context, req dto.ModeloRequest) (dto.ModeloResponse, error) {
	marca, err := s.marcaExistente(ctx, req.MarcaID)
	if err != nil {
		return dto.ModeloResponse{}, err
	}
	m := &model.Modelo{MarcaID: marca.ID, Nombre: strings.TrimSpace(req.Nombre)}
	if err := s.repo.CrearModelo(ctx, m); err != nil {
		return dto.ModeloResponse{}, traducir(err, "modelo")
	}
	m.Marca = marca
	return mapModelo(*m), nil
}

func (s *vehiculoService) ListarModelos(ctx context.Context, marcaID uint) ([]dto.ModeloResponse, error) {
	list, err := s.repo.ListarModelos(ctx, marcaID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ModeloResponse, 0, len(list))
	for _, m := range list {
		result = append(result, mapModelo(m))
	}
	return result, nil
}

func (s *vehiculoService) ActualizarModelo(ctx context.Context, id uint, req dto.ModeloRequest) (dto.ModeloResponse, error) {
	m, err := s.repo.ObtenerModelo(ctx, id)
	if err != nil {
		return dto.ModeloResponse{}, traducir(err, "modelo")
	}
	if req.MarcaID != m.MarcaID {
		marca, err := s.marcaExistente(ctx, req.MarcaID)
		if err != nil {
			return dto.ModeloResponse{}, err
		}
		m.MarcaID = marca.ID
		m.Marca = marca
	}
	m.Nombre = strings.TrimSpace(req.Nombre)
	if err := s.repo.ActualizarModelo(ctx, m); err != nil {
		return dto.ModeloResponse{}, traducir(err, "modelo")
	}
	return mapModelo(*m), nil
}

func (s *vehiculoService) EliminarModelo(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerModelo(ctx, id); err != nil {
		return traducir(err, "modelo")
	}
	n, err := s.repo.ContarVehiculos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el modelo tiene %d vehículos", apierror.ErrReferencia, n)
	}
	return traducir(s.repo.EliminarModelo(ctx, id), "modelo")
}

func (s *vehiculoService) marcaExistente(ctx context.Context, id uint) (*model.Marca, error) {
	marca, err := s.repo.ObtenerMarca(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: la marca %d no existe", apierror.ErrValidacion, id)
	}
	return marca, err
}

func mapModelo(m model.Modelo) dto.ModeloResponse {
	resp := dto.ModeloResponse{ID: m.ID, MarcaID: m.MarcaID, Nombre: m.Nombre}
	if m.Marca != nil {
		resp.Marca = m.Marca.Nombre
	}
	return resp
}

// ── Vehiculos ────────────────────────────────────────────────────────────────

// NormalizarPatente uppercases and strips spaces and dashes ("ab 123-cd" → "AB123CD").
func NormalizarPatente(p string) string {
	p = strings.ToUpper(strings.TrimSpace(p))
	return strings.NewReplacer(" ", "", "-", "").Replace(p)
}

func (s *vehiculoService) CrearVehiculo(ctx context.Context, req dto.VehiculoRequest) (dto.VehiculoResponse, error) {
	modelo, err := s.modeloExistente(ctx, req.ModeloID)
	if err != nil {
		return dto.VehiculoResponse{}, err
	}
	v := &model.Vehiculo{
		ModeloID: modelo.ID,
		Patente:  NormalizarPatente(req.Patente),
		Anio:     req.Anio,
		Color:    limpiar(req.Color),
	}
	if err := s.repo.CrearVehiculo(ctx, v); err != nil {
		return dto.VehiculoResponse{}, traducir(err, "vehículo")
	}
	v.Modelo = modelo
	return mapVehiculo(*v, nil), nil
}

func (s *vehiculoService) ListarVehiculos(ctx context.Context, patente string) ([]dto.VehiculoResponse, error) {
	list, err := s.repo.ListarVehiculos(ctx, NormalizarPatente(patente))
	if err != nil {
		return nil, err
	}
	result := make([]dto.VehiculoResponse, 0, len(list))
	for _, v := range list {
		result = append(result, mapVehiculo(v, nil))
	}
	return result, nil
}

func (s *vehiculoService) ObtenerVehiculo(ctx context.Context, id uint) (dto.VehiculoResponse, error) {
	v, err := s.repo.ObtenerVehiculo(ctx, id)
	if err != nil {
		return dto.VehiculoResponse{}, traducir(err, "vehículo")
	}
	return mapVehiculo(*v, nil), nil
}

func (s *vehiculoService) ActualizarVehiculo(ctx context.Context, id uint, req dto.VehiculoRequest) (dto.VehiculoResponse, error) {
	v, err := s.repo.ObtenerVehiculo(ctx, id)
	if err != nil {
		return dto.VehiculoResponse{}, traducir(err, "vehículo")
	}
	if req.ModeloID != v.ModeloID {
		modelo, err := s.modeloExistente(ctx, req.ModeloID)
		if err != nil {
			return dto.VehiculoResponse{}, err
		}
		v.ModeloID = modelo.ID
		v.Modelo = modelo
	}
	v.Patente = NormalizarPatente(req.Patente)
	v.Anio = req.Anio
	v.Color = limpiar(req.Color)
	if err := s.repo.ActualizarVehiculo(ctx, v); err != nil {
		return dto.VehiculoResponse{}, traducir(err, "vehículo")
	}
	return mapVehiculo(*v, nil), nil
}

func (s *vehiculoService) EliminarVehiculo(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerVehiculo(ctx, id); err != nil {
		return traducir(err, "vehículo")
	}
	return traducir(s.repo.EliminarVehiculo(ctx, id), "vehículo")
}

func (s *vehiculoService) modeloExistente(ctx context.Context, id uint) (*model.Modelo, error) {
	modelo, err := s.repo.ObtenerModelo(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: el modelo %d no existe", apierror.ErrValidacion, id)
	}
	return modelo, err
}

func mapVehiculo(v model.Vehiculo, vinculoID *uint) dto.VehiculoResponse {
	resp := dto.VehiculoResponse{
		ID:                v.ID,
		TitularVehiculoID: vinculoID,
		ModeloID:          v.ModeloID,
		Patente:           v.Patente,
		Anio:              v.Anio,
		Color:             v.Color,
	}
	if v.Modelo != nil {
		resp.Modelo = v.Modelo.Nombre
		if v.Modelo.Marca != nil {
			resp.Marca = v.Modelo.Marca.Nombre
		}
	}
	return resp
}
