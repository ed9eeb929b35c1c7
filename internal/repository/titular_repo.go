package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
)

type TitularRepository interface {
	Crear(ctx context.Context, t *model.Titular) error
	Listar(ctx context.Context, buscar string) ([]model.Titular, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Titular, error)
	Actualizar(ctx context.Context, t *model.Titular) error
	Eliminar(ctx context.Context, id uint) error

	Vincular(ctx context.Context, tv *model.TitularVehiculo) error
	Desvincular(ctx context.Context, titularID, vehiculoID uint) error
	VehiculosDe(ctx context.Context, titularID uint) ([]model.TitularVehiculo, error)
	ObtenerVinculo(ctx context.Context, id uint) (*model.TitularVehiculo, error)
}

type titularRepo struct{ db *gorm.DB }

func NewTitularRepository(db *gorm.DB) TitularRepository { return &titularRepo{db: db} }

func (r *titularRepo) Crear(ctx context.Context, t *model.Titular) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *titularRepo) Listar(ctx context.Context, buscar string) ([]model.Titular, error) {
	var list []model.Titular
	q := r.db.WithContext(ctx).Order("apellido asc, nombre asc")
	if buscar != "" {
		like := "%" + buscar + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ? OR documento ILIKE ?", like, like, like)
	}
	err := q.Limit(200).Find(&list).Error
	return list, err
}

func (r *titularRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Titular, error) {
	var t model.Titular
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titularRepo) Actualizar(ctx context.Context, t *model.Titular) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *titularRepo) Eliminar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Titular{}, id).Error
}

func (r *titularRepo) Vincular(ctx context.Context, tv *model.TitularVehiculo) error {
	return r.db.WithContext(ctx).Omit("Titular", "Vehiculo").Create(tv).Error
}

func (r *titularRepo) Desvincular(ctx context.Context, titularID, vehiculoID uint) error {
	res := r.db.WithContext(ctx).
		Where("titular_id = ? AND vehiculo_id = ?", titularID, vehiculoID).
		Delete(&model.TitularVehiculo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titularRepo) VehiculosDe(ctx context.Context, titularID uint) ([]model.TitularVehiculo, error) {
	var list []model.TitularVehiculo
	err := r.db.WithContext(ctx).
		Preload("Vehiculo.Modelo.Marca").
		Where("titular_id = ?", titularID).
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *titularRepo) ObtenerVinculo(ctx context.Context, id uint) (*model.TitularVehiculo, error) {
	var tv model.TitularVehiculo
	err := r.db.WithContext(ctx).Preload("Titular").Preload("Vehiculo.Modelo.Marca").First(&tv, id).Error
	if err != nil {
		return nil, err
	}
	return &tv, nil
}
