package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher hands session events to a fixed set of workers using
// consistent hashing on the context ID, so the events of one browser
// context are recorded in the order they happened.
type Dispatcher struct {
	workers []chan domain.SessionEvent
	service ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.SessionEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SessionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue offers an event to the worker owning its context. It never blocks
// a request: when that worker's buffer is full the event is dropped and
// false is returned.
func (d *Dispatcher) Enqueue(event domain.SessionEvent) bool {
	select {
	case d.workers[d.shardIndex(event.ContextID)] <- event:
		return true
	default:
		d.log.Warn().Str("context_id", event.ContextID).Msg("audit queue full, dropping session event")
		return false
	}
}

// shardIndex maps a context ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(contextID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contextID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SessionEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			// Recording outlives the request that produced the event.
			if err := d.service.Record(context.WithoutCancel(ctx), event); err != nil {
				d.log.Error().Err(err).
					Str("context_id", event.ContextID).
					Int("worker_id", id).
					Msg("session event recording failed")
			}
		}
	}
}
