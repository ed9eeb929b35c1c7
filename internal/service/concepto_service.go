package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"
)

// ConceptoService manages the labels used to classify movimientos.
// A concepto in use can neither be deleted nor change its tipo.
type ConceptoService interface {
	Crear(ctx context.Context, req dto.ConceptoRequest) (dto.ConceptoResponse, error)
	Listar(ctx context.Context, tipo string) ([]dto.ConceptoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ConceptoRequest) (dto.ConceptoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type conceptoService struct {
	repo repository.ConceptoRepository
	movs repository.MovimientoRepository
}

func NewConceptoService(repo repository.ConceptoRepository, movs repository.MovimientoRepository) ConceptoService {
	return &conceptoService{repo: repo, movs: movs}
}

func mapConcepto(c model.Concepto, usados int64) dto.ConceptoResponse {
	return dto.ConceptoResponse{
		ID:               c.ID,
		Nombre:           c.Nombre,
		Tipo:             c.Tipo,
		MovimientosCount: usados,
		PuedeEliminar:    usados == 0,
	}
}

func (s *conceptoService) Crear(ctx context.Context, req dto.ConceptoRequest) (dto.ConceptoResponse, error) {
	c := &model.Concepto{Nombre: strings.TrimSpace(req.Nombre), Tipo: req.Tipo}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.ConceptoResponse{}, traducir(err, "concepto")
	}
	return mapConcepto(*c, 0), nil
}

func (s *conceptoService) Listar(ctx context.Context, tipo string) ([]dto.ConceptoResponse, error) {
	if tipo != "" && tipo != model.TipoIngreso && tipo != model.TipoEgreso {
		return nil, fmt.Errorf("%w: tipo debe ser ingreso o egreso", apierror.ErrValidacion)
	}
	list, err := s.repo.Listar(ctx, tipo)
	if err != nil {
		return nil, err
	}
	usos, err := s.movs.CountPorConcepto(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ConceptoResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapConcepto(c, usos[c.ID]))
	}
	return result, nil
}

func (s *conceptoService) Actualizar(ctx context.Context, id uint, req dto.ConceptoRequest) (dto.ConceptoResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.ConceptoResponse{}, traducir(err, "concepto")
	}
	usados, err := s.movs.CountByConcepto(ctx, id)
	if err != nil {
		return dto.ConceptoResponse{}, err
	}
	if req.Tipo != c.Tipo && usados > 0 {
		return dto.ConceptoResponse{}, fmt.Errorf("%w: el concepto tiene %d movimientos, no puede cambiar de tipo",
			apierror.ErrReferencia, usados)
	}

	c.Nombre = strings.TrimSpace(req.Nombre)
	c.Tipo = req.Tipo
	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.ConceptoResponse{}, traducir(err, "concepto")
	}
	return mapConcepto(*c, usados), nil
}

func (s *conceptoService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return traducir(err, "concepto")
	}
	usados, err := s.movs.CountByConcepto(ctx, id)
	if err != nil {
		return err
	}
	if usados > 0 {
		return fmt.Errorf("%w: el concepto tiene %d movimientos asociados", apierror.ErrReferencia, usados)
	}
	return traducir(s.repo.Eliminar(ctx, id), "concepto")
}
