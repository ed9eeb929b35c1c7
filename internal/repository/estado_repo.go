package repository

import (
	"context"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EstadoRepository interface {
	Listar(ctx context.Context) ([]model.Estado, error)
	Existe(ctx context.Context, id model.EstadoOrden) (bool, error)
	// Sembrar upserts the fixed estados rows. Safe to run on every start.
	Sembrar(ctx context.Context) error
}

type estadoRepo struct{ db *gorm.DB }

func NewEstadoRepository(db *gorm.DB) EstadoRepository { return &estadoRepo{db: db} }

func (r *estadoRepo) Listar(ctx context.Context) ([]model.Estado, error) {
	var list []model.Estado
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *estadoRepo) Existe(ctx context.Context, id model.EstadoOrden) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Estado{}).Where("id = ?", uint(id)).Count(&n).Error
	return n > 0, err
}

func (r *estadoRepo) Sembrar(ctx context.Context) error {
	rows := make([]model.Estado, 0, len(model.EstadosOrden()))
	for _, e := range model.EstadosOrden() {
		rows = append(rows, model.Estado{ID: e, Nombre: e.String()})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nombre"}),
		}).
		Create(&rows).Error
}
