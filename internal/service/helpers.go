package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"gorm.io/gorm"
)

const layoutFecha = "2006-01-02"

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Reloj decides what "today" is. All business dates use the shop's timezone.
type Reloj struct {
	loc *time.Location
	now func() time.Time
}

func NewReloj(loc *time.Location) Reloj {
	if loc == nil {
		loc = time.Local
	}
	return Reloj{loc: loc, now: time.Now}
}

// RelojFijo always returns t. Used by tests and the seed command.
func RelojFijo(t time.Time) Reloj {
	return Reloj{loc: t.Location(), now: func() time.Time { return t }}
}

func (r Reloj) Ahora() time.Time { return r.now().In(r.loc) }

// Hoy returns today's date as YYYY-MM-DD.
func (r Reloj) Hoy() string { return r.Ahora().Format(layoutFecha) }

// resolverFecha returns fecha, or today when empty, rejecting malformed input.
func (r Reloj) resolverFecha(fecha string) (string, error) {
	if fecha == "" {
		return r.Hoy(), nil
	}
	if _, err := parseFecha(fecha); err != nil {
		return "", err
	}
	return fecha, nil
}

// parseFecha parses YYYY-MM-DD into midnight UTC, the value stored in date columns.
func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(layoutFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q invalida, se espera AAAA-MM-DD", apierror.ErrValidacion, s)
	}
	return t, nil
}

func formatFecha(t time.Time) string { return t.Format(layoutFecha) }

func formatFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatFecha(*t)
	return &s
}

// limpiar trims s and turns blank strings into nil.
func limpiar(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// traducir maps repository errors to error kinds. entidad names the record in
// the message ("orden", "concepto", ...).
func traducir(err error, entidad string) error {
	switch {
	case err == nil:
		return nil
	case repository.EsNoEncontrado(err):
		return fmt.Errorf("%w: %s no encontrado", apierror.ErrNoEncontrado, entidad)
	case repository.EsDuplicado(err):
		return fmt.Errorf("%w: ya existe un registro de %s con esos datos", apierror.ErrConflicto, entidad)
	case repository.EsReferenciado(err):
		return fmt.Errorf("%w: %s tiene registros asociados", apierror.ErrReferencia, entidad)
	default:
		return err
	}
}
