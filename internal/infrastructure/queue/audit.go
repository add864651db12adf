package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// AuditDispatcher persists security events asynchronously through a fixed
// set of workers, sharded by account id so one account's trail stays in
// order. Login handling never blocks on the audit store.
type AuditDispatcher struct {
	workers []chan domain.SecurityEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.SecurityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SecurityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// events still queued at that point are dropped.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.AuditRecorder. When a worker's queue is full the
// event is dropped with a warning rather than stalling the caller.
func (d *AuditDispatcher) Record(event domain.SecurityEvent) {
	if event.Kind == domain.EventLockoutTriggered {
		metrics.LockoutsTriggeredTotal.Inc()
	}

	i := d.shardIndex(event.AccountID)
	select {
	case d.workers[i] <- event:
		metrics.AuditQueueDepth.WithLabelValues(workerLabel(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().Str("account_id", event.AccountID).Str("kind", event.Kind).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an account id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SecurityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
			err := d.repo.Insert(insertCtx, event)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("account_id", event.AccountID).
					Str("kind", event.Kind).
					Int("worker_id", id).
					Msg("security event persistence failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(workerLabel(id)).Set(float64(len(ch)))
		}
	}
}

func workerLabel(i int) string {
	return strconv.Itoa(i)
}
