package infra

import (
	"fmt"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx and brings the schema up
// to date (AutoMigrate plus the idempotent patches GORM cannot express).
func NewDatabase(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Silent
	if debug {
		level = logger.Warn
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table. Also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Rol{},
		&model.Usuario{},
		&model.Estado{},
		&model.MedioDePago{},
		&model.Concepto{},
		&model.CompaniaSeguro{},
		&model.Marca{},
		&model.Modelo{},
		&model.Vehiculo{},
		&model.Titular{},
		&model.TitularVehiculo{},
		&model.OrdenDeTrabajo{},
		&model.DetalleOrdenDeTrabajo{},
		&model.Precio{},
		&model.Movimiento{},
		&model.Caja{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that AutoMigrate does not cover. Every statement
// is idempotent.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"sequence for ordenes_de_trabajo.numero",
			`CREATE SEQUENCE IF NOT EXISTS ordenes_de_trabajo_numero_seq START 1`},
		{"check conceptos.tipo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_conceptos_tipo') THEN
    ALTER TABLE conceptos ADD CONSTRAINT chk_conceptos_tipo CHECK (tipo IN ('ingreso', 'egreso'));
  END IF;
END $$`},
		{"check movimientos.tipo and monto", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimientos_tipo') THEN
    ALTER TABLE movimientos ADD CONSTRAINT chk_movimientos_tipo CHECK (tipo IN ('ingreso', 'egreso'));
  END IF;
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimientos_monto') THEN
    ALTER TABLE movimientos ADD CONSTRAINT chk_movimientos_monto CHECK (monto > 0);
  END IF;
END $$`},
		{"resumen index on movimientos (fecha, tipo, medio)",
			`CREATE INDEX IF NOT EXISTS idx_movimientos_resumen ON movimientos (fecha, tipo, medio_de_pago_id)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
