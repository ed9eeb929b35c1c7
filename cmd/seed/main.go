// cmd/seed/main.go: loads the lookup data and creates or resets the admin user.
// Uso: go run ./cmd/seed -password <clave>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/config"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	mediosIniciales = []string{"Efectivo", "Transferencia", "Tarjeta", "Cheque"}

	conceptosIniciales = []model.Concepto{
		{Nombre: "Cobro de orden", Tipo: "ingreso"},
		{Nombre: "Venta de mostrador", Tipo: "ingreso"},
		{Nombre: "Compra de cristales", Tipo: "egreso"},
		{Nombre: "Insumos", Tipo: "egreso"},
		{Nombre: "Gastos generales", Tipo: "egreso"},
	}
)

func main() {
	username := flag.String("username", "admin", "usuario administrador")
	password := flag.String("password", "", "clave del administrador (obligatoria)")
	nombre := flag.String("nombre", "Administrador", "nombre visible")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *password == "" {
		log.Fatal().Msg("-password es obligatorio")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}
	ctx := context.Background()

	if err := repository.NewEstadoRepository(db).Sembrar(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed estados")
	}
	usuarios := repository.NewUsuarioRepository(db)
	if err := usuarios.SembrarRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed roles")
	}
	if err := sembrarCatalogos(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed catalogos")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}
	admin := model.Usuario{
		Username:     *username,
		Nombre:       *nombre,
		PasswordHash: string(hash),
		Rol:          model.RolAdministrador,
		Activo:       true,
	}
	err = db.WithContext(ctx).
		Omit("RolRef").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "nombre", "rol", "activo", "updated_at"}),
		}).
		Create(&admin).Error
	if err != nil {
		log.Fatal().Err(err).Msg("insert admin")
	}
	fmt.Printf("Usuario '%s' creado/actualizado\n", *username)
}

func sembrarCatalogos(ctx context.Context, db *gorm.DB) error {
	medios := make([]model.MedioDePago, 0, len(mediosIniciales))
	for _, n := range mediosIniciales {
		medios = append(medios, model.MedioDePago{Nombre: n})
	}
	ignorar := clause.OnConflict{DoNothing: true}
	if err := db.WithContext(ctx).Clauses(ignorar).Create(&medios).Error; err != nil {
		return fmt.Errorf("medios de pago: %w", err)
	}
	conceptos := append([]model.Concepto(nil), conceptosIniciales...)
	if err := db.WithContext(ctx).Clauses(ignorar).Create(&conceptos).Error; err != nil {
		return fmt.Errorf("conceptos: %w", err)
	}
	return nil
}
