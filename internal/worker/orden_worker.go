package worker

// orden_worker.go
// Reacts to estado changes of work orders. When the workshop marks an order as
// "Completada por taller" the titular is told the vehicle is ready.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"github.com/rs/zerolog/log"
)

// OrdenLoader is the slice of repository.OrdenRepository the worker needs.
type OrdenLoader interface {
	FindByID(ctx context.Context, id uint) (*model.OrdenDeTrabajo, error)
}

// EmailEnqueuer is satisfied by *Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, para []string, asunto, cuerpo, adjunto string) error
}

type OrdenEstadoWorker struct {
	ordenes  OrdenLoader
	mail     EmailEnqueuer
	comercio string
}

func NewOrdenEstadoWorker(ordenes OrdenLoader, mail EmailEnqueuer, comercio string) *OrdenEstadoWorker {
	return &OrdenEstadoWorker{ordenes: ordenes, mail: mail, comercio: comercio}
}

func (w *OrdenEstadoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var ev dto.OrdenEstadoEvento
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Error().Err(err).Msg("orden_worker: invalid payload")
		return nil
	}

	log.Info().
		Uint("orden_id", ev.OrdenID).
		Str("numero", ev.Numero).
		Str("de", model.EstadoOrden(ev.EstadoAnterior).String()).
		Str("a", model.EstadoOrden(ev.EstadoNuevo).String()).
		Msg("orden_worker: estado changed")

	if model.EstadoOrden(ev.EstadoNuevo) != model.EstadoCompletadaPorTaller {
		return nil
	}

	orden, err := w.ordenes.FindByID(ctx, ev.OrdenID)
	if err != nil {
		return fmt.Errorf("orden_worker: load orden %d: %w", ev.OrdenID, err)
	}
	if orden.TitularVehiculo == nil || orden.TitularVehiculo.Titular == nil {
		return nil
	}
	titular := orden.TitularVehiculo.Titular
	if titular.Email == nil || *titular.Email == "" {
		log.Debug().Uint("orden_id", ev.OrdenID).Msg("orden_worker: titular without email")
		return nil
	}

	patente := ""
	if orden.TitularVehiculo.Vehiculo != nil {
		patente = orden.TitularVehiculo.Vehiculo.Patente
	}
	asunto := fmt.Sprintf("%s: su vehículo %s está listo", w.comercio, patente)
	cuerpo := fmt.Sprintf(
		"Hola %s,\n\nLe informamos que el trabajo de la orden %s sobre el vehículo %s fue completado por el taller. Puede pasar a retirarlo.\n\n%s",
		titular.Nombre, orden.Numero, patente, w.comercio,
	)
	return w.mail.EnqueueEmail(ctx, []string{*titular.Email}, asunto, cuerpo, "")
}
