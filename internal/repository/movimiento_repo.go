package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalMedioRow is one (tipo, medio de pago) group of a day's movimientos.
// MedioDePago is nil when the medio was deleted after the movimiento was booked.
type TotalMedioRow struct {
	Tipo          string
	MedioDePagoID uint
	MedioDePago   *string
	Cantidad      int64
	Total         decimal.Decimal
}

type MovimientoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.Movimiento) error
	FindByID(ctx context.Context, id uint) (*model.Movimiento, error)
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error)
	Delete(ctx context.Context, id uint) error
	TotalesPorMedio(ctx context.Context, fecha string) ([]TotalMedioRow, error)
	CountByConcepto(ctx context.Context, conceptoID uint) (int64, error)
	CountPorConcepto(ctx context.Context) (map[uint]int64, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository { return &movimientoRepo{db: db} }

func (r *movimientoRepo) Create(ctx context.Context, tx *gorm.DB, m *model.Movimiento) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Omit("Concepto").Create(m).Error
}

func (r *movimientoRepo) FindByID(ctx context.Context, id uint) (*model.Movimiento, error) {
	var m model.Movimiento
	err := r.db.WithContext(ctx).Preload("Concepto").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	var movs []model.Movimiento
	var total int64
	page, limit := paginar(filter.Page, filter.Limit)

	q := r.db.WithContext(ctx).Model(&model.Movimiento{})
	switch {
	case filter.Fecha != "":
		q = q.Where("fecha = ?", filter.Fecha)
	case filter.Desde != "" || filter.Hasta != "":
		if filter.Desde != "" {
			q = q.Where("fecha >= ?", filter.Desde)
		}
		if filter.Hasta != "" {
			q = q.Where("fecha <= ?", filter.Hasta)
		}
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Concepto").
		Order("fecha DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&movs).Error
	return movs, total, err
}

func (r *movimientoRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Movimiento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *movimientoRepo) TotalesPorMedio(ctx context.Context, fecha string) ([]TotalMedioRow, error) {
	var rows []TotalMedioRow
	err := r.db.WithContext(ctx).
		Table("movimientos m").
		Select("m.tipo, m.medio_de_pago_id, mp.nombre AS medio_de_pago, COUNT(*) AS cantidad, COALESCE(SUM(m.monto), 0) AS total").
		Joins("LEFT JOIN medios_de_pago mp ON mp.id = m.medio_de_pago_id").
		Where("m.fecha = ?", fecha).
		Group("m.tipo, m.medio_de_pago_id, mp.nombre").
		Order("mp.nombre ASC NULLS LAST, m.medio_de_pago_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *movimientoRepo) CountByConcepto(ctx context.Context, conceptoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Movimiento{}).Where("concepto_id = ?", conceptoID).Count(&n).Error
	return n, err
}

func (r *movimientoRepo) CountPorConcepto(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		ConceptoID uint
		N          int64
	}
	err := r.db.WithContext(ctx).Model(&model.Movimiento{}).
		Select("concepto_id, COUNT(*) AS n").
		Group("concepto_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.ConceptoID] = row.N
	}
	return out, nil
}
