package worker

// email_worker.go
// Sends the mails queued on QueueEmail through the SMTP relay, behind the
// mail circuit breaker.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"

	"github.com/rs/zerolog/log"
)

type EmailJobPayload struct {
	Para    []string `json:"para"`
	Asunto  string   `json:"asunto"`
	Cuerpo  string   `json:"cuerpo"`
	Adjunto string   `json:"adjunto,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(msg infra.Mensaje) error
}

type EmailWorker struct {
	mailer Sender
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process is registered as the HandlerFunc of JobEmail.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// a malformed payload will never succeed, do not retry it
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if len(payload.Para) == 0 {
		log.Warn().Msg("email_worker: no recipients, skipping")
		return nil
	}

	// an unconfigured relay is not a relay failure and must not open the breaker
	deshabilitado := false
	err := w.cb.Execute(func() error {
		err := w.mailer.Send(infra.Mensaje{
			Para:    payload.Para,
			Asunto:  payload.Asunto,
			Cuerpo:  payload.Cuerpo,
			Adjunto: payload.Adjunto,
		})
		if errors.Is(err, infra.ErrMailDeshabilitado) {
			deshabilitado = true
			return nil
		}
		return err
	})
	if deshabilitado {
		log.Warn().Strs("to", payload.Para).Msg("email_worker: SMTP disabled, mail dropped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("email_worker: send %q: %w", payload.Asunto, err)
	}
	log.Info().Strs("to", payload.Para).Str("asunto", payload.Asunto).Msg("email_worker: mail sent")
	return nil
}
