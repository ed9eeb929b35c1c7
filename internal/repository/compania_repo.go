package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
)

type CompaniaRepository interface {
	Crear(ctx context.Context, c *model.CompaniaSeguro) error
	Listar(ctx context.Context, incluirInactivas bool) ([]model.CompaniaSeguro, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.CompaniaSeguro, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.CompaniaSeguro, error)
	Actualizar(ctx context.Context, c *model.CompaniaSeguro) error
	Desactivar(ctx context.Context, id uint) error
}

type companiaRepository struct{ db *gorm.DB }

func NewCompaniaRepository(db *gorm.DB) CompaniaRepository {
	return &companiaRepository{db: db}
}

func (r *companiaRepository) Crear(ctx context.Context, c *model.CompaniaSeguro) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companiaRepository) Listar(ctx context.Context, incluirInactivas bool) ([]model.CompaniaSeguro, error) {
	var list []model.CompaniaSeguro
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *companiaRepository) ObtenerPorID(ctx context.Context, id uint) (*model.CompaniaSeguro, error) {
	var c model.CompaniaSeguro
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companiaRepository) ObtenerPorNombre(ctx context.Context, nombre string) (*model.CompaniaSeguro, error) {
	var c model.CompaniaSeguro
	err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companiaRepository) Actualizar(ctx context.Context, c *model.CompaniaSeguro) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *companiaRepository) Desactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.CompaniaSeguro{}).Where("id = ?", id).Update("activo", false).Error
}
