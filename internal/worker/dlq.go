package worker

// dlq.go: dead letter queue
// Failed jobs land in dlq:{original_queue}. The retry cron moves them back to
// their queue until MaxAttempts is reached; after that they stay for manual
// inspection.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix   = "dlq:"
	MaxAttempts = 5
)

type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339
	Attempts      int             `json:"attempts"`
}

// SendToDLQ pushes a failed job to the dead letter queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries in a DLQ for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// ReencolarDLQ walks the DLQ of queue once. Entries below maxAttempts go back
// to their original queue, the rest are rotated back into the DLQ.
func ReencolarDLQ(ctx context.Context, rdb *redis.Client, queue string, maxAttempts int) (int, error) {
	key := DLQPrefix + queue
	n, err := rdb.LLen(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	requeued := 0
	for i := int64(0); i < n; i++ {
		raw, err := rdb.RPop(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return requeued, err
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", key).Msg("dlq: dropping unreadable entry")
			continue
		}
		if entry.Attempts >= maxAttempts {
			if err := rdb.LPush(ctx, key, raw).Err(); err != nil {
				return requeued, err
			}
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		if err := Encolar(ctx, rdb, entry.OriginalQueue, job); err != nil {
			// put it back so it is not lost
			_ = rdb.LPush(ctx, key, raw).Err()
			return requeued, err
		}
		requeued++
	}
	return requeued, nil
}
