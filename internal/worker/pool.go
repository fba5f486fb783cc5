package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotifications = "jobs:notifications"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NotificationJobPayload identifies the persisted report a worker should
// forward to Telegram. Workers reload the report from the store, so the
// payload stays minimal.
type NotificationJobPayload struct {
	Kind     string `json:"kind"` // "shift_report" | "writeoff_transfer"
	ReportID string `json:"report_id"`
	// Discriminator is the writeoff_or_transfer form value, used by the
	// notification template only.
	Discriminator string `json:"discriminator,omitempty"`
}

const (
	KindShiftReport      = "shift_report"
	KindWriteoffTransfer = "writeoff_transfer"
)

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueShiftReport pushes a shift report notification job.
func (d *Dispatcher) EnqueueShiftReport(ctx context.Context, reportID uuid.UUID) error {
	return d.enqueue(ctx, NotificationJobPayload{
		Kind:     KindShiftReport,
		ReportID: reportID.String(),
	})
}

// EnqueueWriteoffTransfer pushes a writeoff/transfer notification job.
func (d *Dispatcher) EnqueueWriteoffTransfer(ctx context.Context, reportID uuid.UUID, discriminator string) error {
	return d.enqueue(ctx, NotificationJobPayload{
		Kind:          KindWriteoffTransfer,
		ReportID:      reportID.String(),
		Discriminator: discriminator,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, payload NotificationJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "notification", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueNotifications, encoded).Err()
}

// WorkerHandlers maps job types to their processors.
type WorkerHandlers struct {
	Notify *NotifyWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotifications).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "notification":
		handlers.Notify.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type — dropping")
	}
}
