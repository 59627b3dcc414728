// Package activity ships viewer activity events to an external sink in
// batches, off the request path.
package activity

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/pothole-viewer/internal/domain"
	"github.com/couchcryptid/pothole-viewer/internal/observability"
	sharedretry "github.com/couchcryptid/storm-data-shared/retry"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second

	// finalFlushTimeout bounds the flush performed after Run's context ends.
	finalFlushTimeout = 5 * time.Second
)

// BatchLoader writes multiple activity events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.ActivityEvent) error
}

// Publisher buffers activity events and writes them to a BatchLoader when a
// batch fills or the flush interval elapses. It implements domain.ActivitySink.
type Publisher struct {
	loader        BatchLoader
	logger        *slog.Logger
	metrics       *observability.Metrics
	events        chan domain.ActivityEvent
	batchSize     int
	flushInterval time.Duration
	running       atomic.Bool
}

// NewPublisher creates a Publisher with a buffer of the given capacity.
func NewPublisher(l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, flushInterval time.Duration, buffer int) *Publisher {
	if batchSize <= 0 {
		batchSize = 1
	}
	if buffer <= 0 {
		buffer = batchSize
	}
	return &Publisher{
		loader:        l,
		logger:        logger,
		metrics:       metrics,
		events:        make(chan domain.ActivityEvent, buffer),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Record enqueues an event without blocking. When the buffer is full the
// event is dropped.
func (p *Publisher) Record(event domain.ActivityEvent) {
	select {
	case p.events <- event:
		p.metrics.ActivityRecorded.Inc()
	default:
		p.metrics.ActivityDropped.Inc()
		p.logger.Warn("activity buffer full, dropping event",
			"event_id", event.ID,
			"kind", event.Kind,
			"pothole_id", event.PotholeID,
		)
	}
}

// CheckReadiness returns nil while Run is active.
func (p *Publisher) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("activity publisher is not running")
	}
	return nil
}

// Run drains the buffer until the context is cancelled, then flushes what is
// left with a bounded timeout.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("activity publisher started",
		"batch_size", p.batchSize,
		"flush_interval", p.flushInterval,
	)
	p.running.Store(true)
	p.metrics.ActivityPublisherAlive.Set(1)
	defer func() {
		p.running.Store(false)
		p.metrics.ActivityPublisherAlive.Set(0)
	}()

	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	batch := make([]domain.ActivityEvent, 0, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("activity publisher stopping", "reason", ctx.Err())
			p.finalFlush(p.drain(batch))
			return nil
		case event := <-p.events:
			batch = append(batch, event)
			if len(batch) < p.batchSize {
				continue
			}
			if !p.flush(ctx, batch) {
				p.finalFlush(p.drain(batch))
				return nil
			}
			batch = batch[:0]
		case <-ticker.C:
			if len(batch) == 0 {
				continue
			}
			if !p.flush(ctx, batch) {
				p.finalFlush(p.drain(batch))
				return nil
			}
			batch = batch[:0]
		}
	}
}

// flush writes batch, retrying with exponential backoff. Returns false if
// the context ended before the write succeeded.
func (p *Publisher) flush(ctx context.Context, batch []domain.ActivityEvent) bool {
	backoff := initialBackoff
	for {
		if p.load(ctx, batch) {
			return true
		}
		if ctx.Err() != nil || !sharedretry.SleepWithContext(ctx, backoff) {
			return false
		}
		backoff = sharedretry.NextBackoff(backoff, maxBackoff)
	}
}

func (p *Publisher) finalFlush(batch []domain.ActivityEvent) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
	defer cancel()
	if !p.load(ctx, batch) {
		p.logger.Warn("final activity flush failed, events lost", "count", len(batch))
	}
}

func (p *Publisher) load(ctx context.Context, batch []domain.ActivityEvent) bool {
	start := time.Now()
	if err := p.loader.LoadBatch(ctx, batch); err != nil {
		p.metrics.ActivityPublishErrors.Inc()
		p.logger.Error("publish activity batch failed", "error", err, "batch_size", len(batch))
		return false
	}
	p.metrics.ActivityPublished.Add(float64(len(batch)))
	p.metrics.ActivityBatchSize.Observe(float64(len(batch)))
	p.metrics.ActivityFlushDuration.Observe(time.Since(start).Seconds())
	return true
}

// drain appends any buffered events to batch without blocking.
func (p *Publisher) drain(batch []domain.ActivityEvent) []domain.ActivityEvent {
	for {
		select {
		case event := <-p.events:
			batch = append(batch, event)
		default:
			return batch
		}
	}
}
