package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CajaRepository persists the one-per-day caja row. Methods taking tx run
// inside the caller's transaction.
type CajaRepository interface {
	FindByFecha(ctx context.Context, fecha string) (*model.Caja, error)
	FindByFechaForUpdate(ctx context.Context, tx *gorm.DB, fecha string) (*model.Caja, error)
	Create(ctx context.Context, tx *gorm.DB, c *model.Caja) error
	Update(ctx context.Context, tx *gorm.DB, c *model.Caja) error
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) FindByFecha(ctx context.Context, fecha string) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("fecha = ?", fecha).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindByFechaForUpdate(ctx context.Context, tx *gorm.DB, fecha string) (*model.Caja, error) {
	var c model.Caja
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fecha = ?", fecha).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Caja) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Caja) error {
	return tx.WithContext(ctx).Save(c).Error
}
