package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
)

type MedioDePagoRepository interface {
	Crear(ctx context.Context, m *model.MedioDePago) error
	Listar(ctx context.Context) ([]model.MedioDePago, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.MedioDePago, error)
	Actualizar(ctx context.Context, m *model.MedioDePago) error
	// Eliminar hard-deletes the row. Precios and movimientos keep the dangling id.
	Eliminar(ctx context.Context, id uint) error
}

type medioDePagoRepository struct{ db *gorm.DB }

func NewMedioDePagoRepository(db *gorm.DB) MedioDePagoRepository {
	return &medioDePagoRepository{db: db}
}

func (r *medioDePagoRepository) Crear(ctx context.Context, m *model.MedioDePago) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medioDePagoRepository) Listar(ctx context.Context) ([]model.MedioDePago, error) {
	var list []model.MedioDePago
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *medioDePagoRepository) ObtenerPorID(ctx context.Context, id uint) (*model.MedioDePago, error) {
	var m model.MedioDePago
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medioDePagoRepository) Actualizar(ctx context.Context, m *model.MedioDePago) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medioDePagoRepository) Eliminar(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.MedioDePago{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
