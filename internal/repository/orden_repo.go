package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrdenRepository interface {
	NextNumero(ctx context.Context, tx *gorm.DB, fecha time.Time) (string, error)
	Create(ctx context.Context, tx *gorm.DB, o *model.OrdenDeTrabajo) error
	FindByID(ctx context.Context, id uint) (*model.OrdenDeTrabajo, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenDeTrabajo, int64, error)
	Update(ctx context.Context, tx *gorm.DB, o *model.OrdenDeTrabajo) error
	ReplaceDetalles(ctx context.Context, tx *gorm.DB, ordenID uint, detalles []model.DetalleOrdenDeTrabajo) error
	UpdateEstado(ctx context.Context, id uint, estado model.EstadoOrden) error
	CreatePrecio(ctx context.Context, tx *gorm.DB, p *model.Precio) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

// NextNumero formats the next value of ordenes_de_trabajo_numero_seq as OT-YYYY-NNNNNN.
func (r *ordenRepo) NextNumero(ctx context.Context, tx *gorm.DB, fecha time.Time) (string, error) {
	var n int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('ordenes_de_trabajo_numero_seq')").Scan(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OT-%04d-%06d", fecha.Year(), n), nil
}

func (r *ordenRepo) Create(ctx context.Context, tx *gorm.DB, o *model.OrdenDeTrabajo) error {
	return tx.WithContext(ctx).
		Omit("TitularVehiculo", "Estado", "CompaniaSeguro").
		Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uint) (*model.OrdenDeTrabajo, error) {
	var o model.OrdenDeTrabajo
	err := r.db.WithContext(ctx).
		Preload("TitularVehiculo.Titular").
		Preload("TitularVehiculo.Vehiculo.Modelo.Marca").
		Preload("Estado").
		Preload("CompaniaSeguro").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Precios", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenDeTrabajo, int64, error) {
	var ordenes []model.OrdenDeTrabajo
	var total int64
	page, limit := paginar(filter.Page, filter.Limit)

	q := r.db.WithContext(ctx).Model(&model.OrdenDeTrabajo{})
	if filter.EstadoID != 0 {
		q = q.Where("ordenes_de_trabajo.estado_id = ?", filter.EstadoID)
	}
	if filter.Desde != "" {
		q = q.Where("ordenes_de_trabajo.fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("ordenes_de_trabajo.fecha <= ?", filter.Hasta)
	}
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Joins("JOIN titular_vehiculo tv ON tv.id = ordenes_de_trabajo.titular_vehiculo_id").
			Joins("JOIN titulares t ON t.id = tv.titular_id").
			Joins("JOIN vehiculos v ON v.id = tv.vehiculo_id").
			Where("ordenes_de_trabajo.numero ILIKE ? OR v.patente ILIKE ? OR t.apellido ILIKE ? OR t.nombre ILIKE ?",
				like, like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("TitularVehiculo.Titular").
		Preload("TitularVehiculo.Vehiculo.Modelo.Marca").
		Preload("Estado").
		Preload("CompaniaSeguro").
		Preload("Precios").
		Order("ordenes_de_trabajo.fecha DESC, ordenes_de_trabajo.id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ordenes).Error
	return ordenes, total, err
}

// ordenColumnasFijas are never written by Update: estado only moves through
// UpdateEstado and numero is assigned once at creation.
var ordenColumnasFijas = []string{"estado_id", "numero", "created_at"}

// Update writes the editable columns of o. A concurrent UpdateEstado is never reverted.
func (r *ordenRepo) Update(ctx context.Context, tx *gorm.DB, o *model.OrdenDeTrabajo) error {
	omit := append([]string{clause.Associations}, ordenColumnasFijas...)
	return tx.WithContext(ctx).Omit(omit...).Save(o).Error
}

func (r *ordenRepo) ReplaceDetalles(ctx context.Context, tx *gorm.DB, ordenID uint, detalles []model.DetalleOrdenDeTrabajo) error {
	if err := tx.WithContext(ctx).Where("orden_id = ?", ordenID).Delete(&model.DetalleOrdenDeTrabajo{}).Error; err != nil {
		return err
	}
	if len(detalles) == 0 {
		return nil
	}
	for i := range detalles {
		detalles[i].OrdenID = ordenID
	}
	return tx.WithContext(ctx).Create(&detalles).Error
}

func (r *ordenRepo) UpdateEstado(ctx context.Context, id uint, estado model.EstadoOrden) error {
	res := r.db.WithContext(ctx).Model(&model.OrdenDeTrabajo{}).Where("id = ?", id).Update("estado_id", uint(estado))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ordenRepo) CreatePrecio(ctx context.Context, tx *gorm.DB, p *model.Precio) error {
	return tx.WithContext(ctx).Create(p).Error
}

// Delete soft-deletes the order (deleted_at).
func (r *ordenRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.OrdenDeTrabajo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
