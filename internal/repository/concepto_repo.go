package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
)

type ConceptoRepository interface {
	Crear(ctx context.Context, c *model.Concepto) error
	Listar(ctx context.Context, tipo string) ([]model.Concepto, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Concepto, error)
	Actualizar(ctx context.Context, c *model.Concepto) error
	Eliminar(ctx context.Context, id uint) error
}

type conceptoRepository struct{ db *gorm.DB }

func NewConceptoRepository(db *gorm.DB) ConceptoRepository {
	return &conceptoRepository{db: db}
}

func (r *conceptoRepository) Crear(ctx context.Context, c *model.Concepto) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *conceptoRepository) Listar(ctx context.Context, tipo string) ([]model.Concepto, error) {
	var list []model.Concepto
	q := r.db.WithContext(ctx).Order("tipo asc, nombre asc")
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *conceptoRepository) ObtenerPorID(ctx context.Context, id uint) (*model.Concepto, error) {
	var c model.Concepto
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *conceptoRepository) Actualizar(ctx context.Context, c *model.Concepto) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *conceptoRepository) Eliminar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Concepto{}, id).Error
}
