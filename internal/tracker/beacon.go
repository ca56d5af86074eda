package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/simp-lee/waystar/internal/domain"
)

// Sender posts a body without waiting for a decoded response.
// *httpclient.Client implements it.
type Sender interface {
	Send(ctx context.Context, path string, body any) error
}

// HTTPBeaconOptions configures an HTTPBeacon.
type HTTPBeaconOptions struct {
	Path    string
	Queue   int
	Timeout time.Duration
	Metrics Recorder
	Logger  *slog.Logger
}

// HTTPBeacon queues records and posts them from a single goroutine. A full
// queue drops the record, so delivery is at most once.
type HTTPBeacon struct {
	sender  Sender
	path    string
	timeout time.Duration
	metrics Recorder
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan domain.BrowseRecord
	done   chan struct{}
}

// NewHTTPBeacon starts the delivery goroutine. Call Close to stop it.
func NewHTTPBeacon(sender Sender, opts HTTPBeaconOptions) *HTTPBeacon {
	if opts.Queue <= 0 {
		opts.Queue = 16
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	b := &HTTPBeacon{
		sender:  sender,
		path:    opts.Path,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("component", "beacon"),
		queue:   make(chan domain.BrowseRecord, opts.Queue),
		done:    make(chan struct{}),
	}
	go b.run()
	return b
}

// Send enqueues rec. It never blocks.
func (b *HTTPBeacon) Send(rec domain.BrowseRecord) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.drop(rec, "closed")
		return
	}
	select {
	case b.queue <- rec:
	default:
		b.drop(rec, "queue full")
	}
}

// Close stops accepting records and waits until the queued ones are sent or
// ctx is done.
func (b *HTTPBeacon) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *HTTPBeacon) run() {
	defer close(b.done)
	for rec := range b.queue {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		err := b.sender.Send(ctx, b.path, rec)
		cancel()
		if err != nil {
			b.count(ResultFailure)
			b.logger.Warn("beacon delivery failed", "attraction_id", rec.AttractionID, "error", err)
			continue
		}
		b.count(ResultBeacon)
	}
}

func (b *HTTPBeacon) drop(rec domain.BrowseRecord, reason string) {
	b.count(ResultDropped)
	b.logger.Warn("beacon record dropped", "attraction_id", rec.AttractionID, "reason", reason)
}

func (b *HTTPBeacon) count(result string) {
	if b.metrics != nil {
		b.metrics.TrackerReport(result)
	}
}
