package worker

// retry_cron.go
// Every minute moves DLQ entries back to their queues. Mail jobs are left
// alone while the mail circuit breaker is open.

import (
	"context"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryTickInterval = 60 * time.Second

type RetryCronConfig struct {
	RDB         *redis.Client
	MailCB      *infra.CircuitBreaker
	MaxAttempts int
}

// StartRetryCron ticks until ctx is cancelled.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = MaxAttempts
	}
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	for _, queue := range []string{QueueOrdenEstado, QueueEmail} {
		if queue == QueueEmail && cfg.MailCB != nil && cfg.MailCB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: mail circuit breaker is open, skipping email DLQ")
			continue
		}
		n, err := ReencolarDLQ(ctx, cfg.RDB, queue, cfg.MaxAttempts)
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: requeue failed")
			continue
		}
		if n > 0 {
			log.Info().Int("count", n).Str("queue", queue).Msg("retry_cron: jobs requeued from DLQ")
		}
	}
}
