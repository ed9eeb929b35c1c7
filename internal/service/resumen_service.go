package service

import (
	"context"
	"sort"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MedioSinNombre is shown for movimientos whose medio de pago was deleted.
const MedioSinNombre = "—"

var cien = decimal.NewFromInt(100)

// Cache is satisfied by *infra.RedisCache.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Invalidador drops the cached summary of a date after a write.
type Invalidador interface {
	Invalidar(ctx context.Context, fecha string)
}

// InvalidadorGlobal drops every cached summary, for writes that change how
// all past days are rendered (e.g. a medio de pago renamed or deleted).
type InvalidadorGlobal interface {
	InvalidarTodo(ctx context.Context)
}

type ResumenService interface {
	Invalidador
	InvalidadorGlobal
	Obtener(ctx context.Context, fecha string) (*dto.ResumenDiaResponse, error)
	Imprimir(ctx context.Context, fecha string) ([]byte, error)
}

type resumenService struct {
	cajas    repository.CajaRepository
	movs     repository.MovimientoRepository
	cache    Cache
	ttl      time.Duration
	reloj    Reloj
	comercio string
}

// NewResumenService builds the daily summary. cache may be nil.
func NewResumenService(
	cajas repository.CajaRepository,
	movs repository.MovimientoRepository,
	cache Cache,
	ttl time.Duration,
	reloj Reloj,
	comercio string,
) ResumenService {
	return &resumenService{cajas: cajas, movs: movs, cache: cache, ttl: ttl, reloj: reloj, comercio: comercio}
}

const prefijoResumen = "resumen:"

func claveResumen(fecha string) string { return prefijoResumen + fecha }

// Obtener returns the summary of fecha (today when empty). Past days are
// served from the cache; today changes all the time and is never cached.
func (s *resumenService) Obtener(ctx context.Context, fecha string) (*dto.ResumenDiaResponse, error) {
	fecha, err := s.reloj.resolverFecha(fecha)
	if err != nil {
		return nil, err
	}
	cacheable := s.cache != nil && s.ttl > 0 && fecha < s.reloj.Hoy()

	if cacheable {
		var cached dto.ResumenDiaResponse
		ok, err := s.cache.Get(ctx, claveResumen(fecha), &cached)
		if err != nil {
			log.Warn().Err(err).Str("fecha", fecha).Msg("resumen: cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}

	rows, err := s.movs.TotalesPorMedio(ctx, fecha)
	if err != nil {
		return nil, err
	}
	resumen := CalcularResumen(fecha, rows)

	caja, err := buscarCaja(ctx, s.cajas, fecha)
	if err != nil {
		return nil, err
	}
	resumen.Caja = mapCaja(caja, fecha, s.reloj)

	if cacheable {
		if err := s.cache.Set(ctx, claveResumen(fecha), resumen, s.ttl); err != nil {
			log.Warn().Err(err).Str("fecha", fecha).Msg("resumen: cache write failed")
		}
	}
	return &resumen, nil
}

func (s *resumenService) Imprimir(ctx context.Context, fecha string) ([]byte, error) {
	resumen, err := s.Obtener(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return infra.ResumenPDF(s.comercio, resumen)
}

func (s *resumenService) Invalidar(ctx context.Context, fecha string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, claveResumen(fecha)); err != nil {
		log.Warn().Err(err).Str("fecha", fecha).Msg("resumen: cache invalidation failed")
	}
}

func (s *resumenService) InvalidarTodo(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, prefijoResumen); err != nil {
		log.Warn().Err(err).Msg("resumen: full cache invalidation failed")
	}
}

// ── Aggregation ──────────────────────────────────────────────────────────────

// CalcularResumen folds the grouped movimientos of a day into KPIs and the
// per-medio breakdowns. Rows are sorted by medio name; deleted medios go last
// under MedioSinNombre. The Caja field is left for the caller.
func CalcularResumen(fecha string, rows []repository.TotalMedioRow) dto.ResumenDiaResponse {
	res := dto.ResumenDiaResponse{
		Fecha: fecha,
		KPIs: dto.KPIs{
			Ingresos: decimal.Zero,
			Egresos:  decimal.Zero,
			Neto:     decimal.Zero,
		},
		IngresosPorMedio: []dto.TotalPorMedio{},
		EgresosPorMedio:  []dto.TotalPorMedio{},
	}

	for _, row := range rows {
		nombre := MedioSinNombre
		if row.MedioDePago != nil && *row.MedioDePago != "" {
			nombre = *row.MedioDePago
		}
		item := dto.TotalPorMedio{
			MedioDePagoID: row.MedioDePagoID,
			MedioDePago:   nombre,
			Cantidad:      row.Cantidad,
			Total:         row.Total,
		}
		switch row.Tipo {
		case model.TipoIngreso:
			res.IngresosPorMedio = append(res.IngresosPorMedio, item)
			res.KPIs.Ingresos = res.KPIs.Ingresos.Add(row.Total)
		case model.TipoEgreso:
			res.EgresosPorMedio = append(res.EgresosPorMedio, item)
			res.KPIs.Egresos = res.KPIs.Egresos.Add(row.Total)
		}
	}
	res.KPIs.Neto = res.KPIs.Ingresos.Sub(res.KPIs.Egresos)

	ordenarPorMedio(res.IngresosPorMedio)
	ordenarPorMedio(res.EgresosPorMedio)
	asignarPorcentajes(res.IngresosPorMedio, res.KPIs.Ingresos)
	asignarPorcentajes(res.EgresosPorMedio, res.KPIs.Egresos)
	return res
}

// Porcentaje returns parte/total*100 rounded to 2 decimals, 0 when total is 0.
func Porcentaje(parte, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return parte.Div(total).Mul(cien).Round(2)
}

func asignarPorcentajes(items []dto.TotalPorMedio, total decimal.Decimal) {
	for i := range items {
		items[i].Porcentaje = Porcentaje(items[i].Total, total)
	}
}

func ordenarPorMedio(items []dto.TotalPorMedio) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.MedioDePago == MedioSinNombre) != (b.MedioDePago == MedioSinNombre) {
			return b.MedioDePago == MedioSinNombre
		}
		if a.MedioDePago != b.MedioDePago {
			return a.MedioDePago < b.MedioDePago
		}
		return a.MedioDePagoID < b.MedioDePagoID
	})
}
