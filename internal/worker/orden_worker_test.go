package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrdenes map[uint]*model.OrdenDeTrabajo

func (f fakeOrdenes) FindByID(_ context.Context, id uint) (*model.OrdenDeTrabajo, error) {
	o, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

type mailCapturado struct {
	para   []string
	asunto string
	cuerpo string
}

type fakeEnqueuer struct {
	mails []mailCapturado
}

func (f *fakeEnqueuer) EnqueueEmail(_ context.Context, para []string, asunto, cuerpo, _ string) error {
	f.mails = append(f.mails, mailCapturado{para: para, asunto: asunto, cuerpo: cuerpo})
	return nil
}

func ordenConTitular(email *string) *model.OrdenDeTrabajo {
	return &model.OrdenDeTrabajo{
		ID:     1,
		Numero: "OT-2025-000001",
		TitularVehiculo: &model.TitularVehiculo{
			Titular:  &model.Titular{Nombre: "Ana", Apellido: "Pérez", Email: email},
			Vehiculo: &model.Vehiculo{Patente: "AB123CD"},
		},
	}
}

func evento(t *testing.T, nuevo model.EstadoOrden) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(dto.OrdenEstadoEvento{
		OrdenID: 1, Numero: "OT-2025-000001",
		EstadoAnterior: uint(model.EstadoEnTaller), EstadoNuevo: uint(nuevo),
	})
	require.NoError(t, err)
	return raw
}

func TestOrdenWorker_AvisaCuandoElTallerCompleta(t *testing.T) {
	email := "ana@cliente.test"
	mail := &fakeEnqueuer{}
	w := NewOrdenEstadoWorker(fakeOrdenes{1: ordenConTitular(&email)}, mail, "Cristales")

	require.NoError(t, w.Process(context.Background(), evento(t, model.EstadoCompletadaPorTaller)))

	require.Len(t, mail.mails, 1)
	assert.Equal(t, []string{email}, mail.mails[0].para)
	assert.Contains(t, mail.mails[0].asunto, "AB123CD")
	assert.Contains(t, mail.mails[0].cuerpo, "OT-2025-000001")
}

func TestOrdenWorker_OtrosEstadosNoAvisan(t *testing.T) {
	email := "ana@cliente.test"
	mail := &fakeEnqueuer{}
	w := NewOrdenEstadoWorker(fakeOrdenes{1: ordenConTitular(&email)}, mail, "Cristales")

	for _, e := range []model.EstadoOrden{model.EstadoIniciado, model.EstadoEnTaller, model.EstadoFinalizada} {
		require.NoError(t, w.Process(context.Background(), evento(t, e)))
	}
	assert.Empty(t, mail.mails)
}

func TestOrdenWorker_TitularSinEmail(t *testing.T) {
	mail := &fakeEnqueuer{}
	w := NewOrdenEstadoWorker(fakeOrdenes{1: ordenConTitular(nil)}, mail, "Cristales")

	require.NoError(t, w.Process(context.Background(), evento(t, model.EstadoCompletadaPorTaller)))
	assert.Empty(t, mail.mails)
}

func TestOrdenWorker_OrdenBorradaEsError(t *testing.T) {
	w := NewOrdenEstadoWorker(fakeOrdenes{}, &fakeEnqueuer{}, "Cristales")

	err := w.Process(context.Background(), evento(t, model.EstadoCompletadaPorTaller))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
