package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail       = "jobs:email"
	QueueOrdenEstado = "jobs:orden_estado"

	JobEmail       = "email"
	JobOrdenEstado = "orden_estado"
)

// Job is the envelope stored in every queue. Attempts counts previous failures.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists; the pool pops them with BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail queues a mail. adjunto is an optional file path.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, para []string, asunto, cuerpo, adjunto string) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, EmailJobPayload{
		Para:    para,
		Asunto:  asunto,
		Cuerpo:  cuerpo,
		Adjunto: adjunto,
	})
}

// EstadoCambiado queues the order notification. Failures are logged only: the
// estado change is already committed.
func (d *Dispatcher) EstadoCambiado(ctx context.Context, ev dto.OrdenEstadoEvento) {
	if err := d.enqueue(ctx, QueueOrdenEstado, JobOrdenEstado, ev); err != nil {
		log.Error().Err(err).Uint("orden_id", ev.OrdenID).Msg("dispatcher: failed to enqueue orden_estado")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return Encolar(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

// Encolar pushes an already built job.
func Encolar(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// HandlerFunc processes one job payload. A returned error sends the job to the DLQ.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// Pool runs size goroutines blocked on BRPOP over every registered queue.
type Pool struct {
	rdb      *redis.Client
	size     int
	queues   []string
	handlers map[string]HandlerFunc
}

func NewPool(rdb *redis.Client, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{rdb: rdb, size: size, handlers: map[string]HandlerFunc{}}
}

// Handle registers h for jobs of jobType arriving on queue.
func (p *Pool) Handle(queue, jobType string, h HandlerFunc) {
	if _, ok := p.handlers[jobType]; !ok {
		p.queues = appendUnique(p.queues, queue)
	}
	p.handlers[jobType] = h
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.size).Strs("queues", p.queues).Msg("worker pool started")
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			// waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	if err := p.dispatch(ctx, job); err != nil {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts+1)
		return
	}
	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}

func (p *Pool) dispatch(ctx context.Context, job Job) (err error) {
	h, ok := p.handlers[job.Type]
	if !ok {
		return fmt.Errorf("no handler for job type %q", job.Type)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, job.Payload)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
