package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err      error
	enviados []infra.Mensaje
}

func (f *fakeSender) Send(msg infra.Mensaje) error {
	if f.err != nil {
		return f.err
	}
	f.enviados = append(f.enviados, msg)
	return nil
}

func payload(t *testing.T, p EmailJobPayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}

func TestEmailWorker_Envia(t *testing.T) {
	sender := &fakeSender{}
	w := NewEmailWorker(sender, infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp")))

	err := w.Process(context.Background(), payload(t, EmailJobPayload{
		Para: []string{"a@b.test"}, Asunto: "Cierre", Cuerpo: "ok", Adjunto: "/tmp/x.pdf",
	}))
	require.NoError(t, err)
	require.Len(t, sender.enviados, 1)
	assert.Equal(t, "Cierre", sender.enviados[0].Asunto)
	assert.Equal(t, "/tmp/x.pdf", sender.enviados[0].Adjunto)
}

func TestEmailWorker_PayloadInvalidoNoSeReintenta(t *testing.T) {
	sender := &fakeSender{}
	w := NewEmailWorker(sender, infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp")))

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"para":`)))
	assert.NoError(t, w.Process(context.Background(), payload(t, EmailJobPayload{Asunto: "sin destino"})))
	assert.Empty(t, sender.enviados)
}

func TestEmailWorker_ErrorDelRelayVuelveAlDLQ(t *testing.T) {
	sender := &fakeSender{err: errors.New("dial tcp: connection refused")}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	w := NewEmailWorker(sender, cb)
	job := payload(t, EmailJobPayload{Para: []string{"a@b.test"}, Asunto: "x"})

	for i := 0; i < 3; i++ {
		assert.Error(t, w.Process(context.Background(), job))
	}
	assert.Equal(t, infra.CBOpen, cb.State())

	err := w.Process(context.Background(), job)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}

func TestEmailWorker_SMTPDeshabilitadoNoAbreElBreaker(t *testing.T) {
	sender := &fakeSender{err: infra.ErrMailDeshabilitado}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	w := NewEmailWorker(sender, cb)
	job := payload(t, EmailJobPayload{Para: []string{"a@b.test"}, Asunto: "x"})

	for i := 0; i < 5; i++ {
		assert.NoError(t, w.Process(context.Background(), job))
	}
	assert.Equal(t, infra.CBClosed, cb.State())
}
