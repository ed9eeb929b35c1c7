package repository

import (
	"context"
	"strings"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
)

// VehiculoRepository covers the vehicle catalog: marcas, modelos and vehiculos.
type VehiculoRepository interface {
	CrearMarca(ctx context.Context, m *model.Marca) error
	ListarMarcas(ctx context.Context) ([]model.Marca, error)
	ObtenerMarca(ctx context.Context, id uint) (*model.Marca, error)
	ActualizarMarca(ctx context.Context, m *model.Marca) error
	EliminarMarca(ctx context.Context, id uint) error
	ContarModelos(ctx context.Context, marcaID uint) (int64, error)

	CrearModelo(ctx context.Context, m *model.Modelo) error
	ListarModelos(ctx context.Context, marcaID uint) ([]model.Modelo, error)
	ObtenerModelo(ctx context.Context, id uint) (*model.Modelo, error)
	ActualizarModelo(ctx context.Context, m *model.Modelo) error
	EliminarModelo(ctx context.Context, id uint) error
	ContarVehiculos(ctx context.Context, modeloID uint) (int64, error)

	CrearVehiculo(ctx context.Context, v *model.Vehiculo) error
	ListarVehiculos(ctx context.Context, patente string) ([]model.Vehiculo, error)
	ObtenerVehiculo(ctx context.Context, id uint) (*model.Vehiculo, error)
	ActualizarVehiculo(ctx context.Context, v *model.Vehiculo) error
	EliminarVehiculo(ctx context.Context, id uint) error
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

// ── Marcas ───────────────────────────────────────────────────────────────────

func (r *vehiculoRepo) CrearMarca(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Omit("Modelos").Create(m).Error
}

func (r *vehiculoRepo) ListarMarcas(ctx context.Context) ([]model.Marca, error) {
	var list []model.Marca
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *vehiculoRepo) ObtenerMarca(ctx context.Context, id uint) (*model.Marca, error) {
	var m model.Marca
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *vehiculoRepo) ActualizarMarca(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Omit("Modelos").Save(m).Error
}

func (r *vehiculoRepo) EliminarMarca(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Marca{}, id).Error
}

func (r *vehiculoRepo) ContarModelos(ctx context.Context, marcaID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Modelo{}).Where("marca_id = ?", marcaID).Count(&n).Error
	return n, err
}

// ── Modelos ──────────────────────────────────────────────────────────────────

func (r *vehiculoRepo) CrearModelo(ctx context.Context, m *model.Modelo) error {
	return r.db.WithContext(ctx).Omit("Marca").Create(m).Error
}

func (r *vehiculoRepo) ListarModelos(ctx context.Context, marcaID uint) ([]model.Modelo, error) {
	var list []model.Modelo
	q := r.db.WithContext(ctx).Preload("Marca").Order("nombre asc")
	if marcaID != 0 {
		q = q.Where("marca_id = ?", marcaID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *vehiculoRepo) ObtenerModelo(ctx context.Context, id uint) (*model.Modelo, error) {
	var m model.Modelo
	if err := r.db.WithContext(ctx).Preload("Marca").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *vehiculoRepo) ActualizarModelo(ctx context.Context, m *model.Modelo) error {
	return r.db.WithContext(ctx).Omit("Marca").Save(m).Error
}

func (r *vehiculoRepo) EliminarModelo(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Modelo{}, id).Error
}

func (r *vehiculoRepo) ContarVehiculos(ctx context.Context, modeloID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vehiculo{}).Where("modelo_id = ?", modeloID).Count(&n).Error
	return n, err
}

// ── Vehiculos ────────────────────────────────────────────────────────────────

func (r *vehiculoRepo) CrearVehiculo(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Omit("Modelo").Create(v).Error
}

func (r *vehiculoRepo) ListarVehiculos(ctx context.Context, patente string) ([]model.Vehiculo, error) {
	var list []model.Vehiculo
	q := r.db.WithContext(ctx).Preload("Modelo.Marca").Order("patente asc")
	if patente != "" {
		q = q.Where("patente ILIKE ?", "%"+strings.ToUpper(patente)+"%")
	}
	err := q.Limit(200).Find(&list).Error
	return list, err
}

func (r *vehiculoRepo) ObtenerVehiculo(ctx context.Context, id uint) (*model.Vehiculo, error) {
	var v model.Vehiculo
	if err := r.db.WithContext(ctx).Preload("Modelo.Marca").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehiculoRepo) ActualizarVehiculo(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Omit("Modelo").Save(v).Error
}

func (r *vehiculoRepo) EliminarVehiculo(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Vehiculo{}, id).Error
}
