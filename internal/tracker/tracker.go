// Package tracker measures how long an attraction page stays visible and
// reports the duration to the backend in whole seconds.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/simp-lee/waystar/internal/domain"
	"github.com/simp-lee/waystar/internal/pkg"
)

// DefaultInterval is the reporting period when none is configured.
const DefaultInterval = 30 * time.Second

// Report outcomes passed to Recorder.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultBeacon  = "beacon"
	ResultDropped = "dropped"
)

// Reporter delivers a browse record and waits for the outcome.
type Reporter interface {
	Record(ctx context.Context, rec domain.BrowseRecord) error
}

// Beacon delivers a browse record on a best-effort basis without blocking.
type Beacon interface {
	Send(rec domain.BrowseRecord)
}

// Recorder counts report outcomes. *httpclient.Metrics implements it.
type Recorder interface {
	TrackerReport(result string)
}

// Config configures a Tracker. Reporter is required.
type Config struct {
	UserID       int64
	AttractionID int64
	Interval     time.Duration
	DeviceInfo   string

	Reporter Reporter
	Beacon   Beacon
	Clock    Clock
	Metrics  Recorder
	Logger   *slog.Logger
}

// Tracker accumulates visible browse time for one attraction. Elapsed time
// is the sum of banked time from earlier visible spans and the current span
// when visible. It is safe for concurrent use.
type Tracker struct {
	userID       int64
	attractionID int64
	interval     time.Duration
	deviceInfo   string
	reporter     Reporter
	beacon       Beacon
	clock        Clock
	metrics      Recorder
	logger       *slog.Logger

	wg sync.WaitGroup

	// reportMu is held across Record so ticker loops from before and
	// after a Pause never report the same span.
	reportMu sync.Mutex

	mu       sync.Mutex
	tracking bool
	paused   bool
	banked   time.Duration
	since    time.Time
	ticker   Ticker
	done     chan struct{}
}

// New validates cfg and returns an idle Tracker.
func New(cfg Config) (*Tracker, error) {
	if err := pkg.ValidateID("userId", cfg.UserID); err != nil {
		return nil, err
	}
	if err := pkg.ValidateID("attractionId", cfg.AttractionID); err != nil {
		return nil, err
	}
	if cfg.Reporter == nil {
		return nil, errors.New("tracker: reporter is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.DeviceInfo == "" {
		cfg.DeviceInfo = DefaultDeviceInfo()
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Tracker{
		userID:       cfg.UserID,
		attractionID: cfg.AttractionID,
		interval:     cfg.Interval,
		deviceInfo:   cfg.DeviceInfo,
		reporter:     cfg.Reporter,
		beacon:       cfg.Beacon,
		clock:        cfg.Clock,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger.With("component", "tracker", "user_id", cfg.UserID, "attraction_id", cfg.AttractionID),
		paused:       true,
	}, nil
}

// Start begins timing. It is a no-op while already tracking.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tracking {
		return
	}
	t.tracking = true
	t.paused = false
	t.banked = 0
	t.since = t.clock.Now()
	t.startTickerLocked()
	t.logger.Debug("tracking started")
}

// Pause stops the periodic reports and banks the visible time so far.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.tracking || t.paused {
		return
	}
	t.banked += t.clock.Now().Sub(t.since)
	t.paused = true
	t.stopTickerLocked()
	t.logger.Debug("tracking paused")
}

// Resume restarts timing after Pause.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.tracking || !t.paused {
		return
	}
	t.since = t.clock.Now()
	t.paused = false
	t.startTickerLocked()
	t.logger.Debug("tracking resumed")
}

// SetVisible pauses while the page is hidden and resumes when it shows.
func (t *Tracker) SetVisible(visible bool) {
	if visible {
		t.Resume()
	} else {
		t.Pause()
	}
}

// Stop ends tracking and reports the remaining duration synchronously. It
// waits for a periodic report already in flight.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.tracking {
		t.mu.Unlock()
		return nil
	}
	t.tracking = false
	if !t.paused {
		t.banked += t.clock.Now().Sub(t.since)
		t.paused = true
	}
	t.stopTickerLocked()
	t.mu.Unlock()

	t.wg.Wait()
	t.logger.Debug("tracking stopped")
	return t.report(ctx)
}

// Flush hands any pending whole seconds to the beacon without waiting.
// It is meant for process exit after Stop could not deliver.
func (t *Tracker) Flush() {
	if t.beacon == nil {
		return
	}
	t.mu.Lock()
	elapsed := t.elapsedLocked()
	t.mu.Unlock()

	secs := int(elapsed / time.Second)
	if secs < 1 {
		return
	}
	t.beacon.Send(t.record(secs))
	t.logger.Debug("pending duration handed to beacon", "seconds", secs)
}

// Elapsed returns the visible time not yet reported.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

// report sends the whole seconds elapsed so far. On success the reported
// span is subtracted from the counter. On failure it is kept for the next
// attempt.
func (t *Tracker) report(ctx context.Context) error {
	t.reportMu.Lock()
	defer t.reportMu.Unlock()

	t.mu.Lock()
	elapsed := t.elapsedLocked()
	t.mu.Unlock()

	secs := int(elapsed / time.Second)
	if secs < 1 {
		return nil
	}

	if err := t.reporter.Record(ctx, t.record(secs)); err != nil {
		t.count(ResultFailure)
		t.logger.Warn("browse report failed", "seconds", secs, "error", err)
		return err
	}

	t.mu.Lock()
	t.banked -= elapsed
	t.mu.Unlock()
	t.count(ResultSuccess)
	t.logger.Debug("browse reported", "seconds", secs)
	return nil
}

func (t *Tracker) record(secs int) domain.BrowseRecord {
	return domain.BrowseRecord{
		UserID:         t.userID,
		AttractionID:   t.attractionID,
		BrowseDuration: secs,
		DeviceInfo:     t.deviceInfo,
	}
}

func (t *Tracker) elapsedLocked() time.Duration {
	if t.paused {
		return t.banked
	}
	return t.banked + t.clock.Now().Sub(t.since)
}

func (t *Tracker) startTickerLocked() {
	ticker := t.clock.NewTicker(t.interval)
	done := make(chan struct{})
	t.ticker, t.done = ticker, done

	t.wg.Add(1)
	go t.loop(ticker, done)
}

func (t *Tracker) stopTickerLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.done)
	t.ticker, t.done = nil, nil
}

func (t *Tracker) loop(ticker Ticker, done <-chan struct{}) {
	defer t.wg.Done()
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			// Errors are logged and retried on the next tick.
			_ = t.report(context.Background())
		}
	}
}

func (t *Tracker) count(result string) {
	if t.metrics != nil {
		t.metrics.TrackerReport(result)
	}
}
