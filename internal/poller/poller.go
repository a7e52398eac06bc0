// Package poller owns the reconciliation loop that keeps one view's snapshot
// in step with the operations API. Each view instance (dashboard, map, main
// list) runs its own poller; there is no cross-view sharing.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fireops/lageboard/internal/logging"
	"fireops/lageboard/internal/metrics"
	"fireops/lageboard/internal/models"
)

// Source is the slice of the gateway a poller consumes.
type Source interface {
	GetActiveOperation(ctx context.Context) (*models.Operation, error)
	ListAssignments(ctx context.Context, operationID int) ([]models.Assignment, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
}

// Options configures a poller instance.
type Options struct {
	// View names the surface this poller feeds ("dashboard", "map", ...).
	View string
	// Interval between ticks. Ticks that would overlap are skipped.
	Interval time.Duration
	// IncludeLocations adds the locations fetch to each tick.
	IncludeLocations bool
	// OnSnapshot, when set, is invoked after every successful publish with
	// the new snapshot. It runs on the poll goroutine.
	OnSnapshot func(*models.Snapshot)
	// Metrics is optional.
	Metrics *metrics.MetricsRegistry
}

// Poller periodically fetches the authoritative state and publishes it as an
// atomic snapshot. A failed tick leaves the previous snapshot untouched.
type Poller struct {
	source Source
	opts   Options

	mu       sync.RWMutex
	snapshot *models.Snapshot
	lastErr  error
	lastTick time.Time

	inFlight atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a poller. Call Start to begin polling, or drive Refresh
// directly.
func New(source Source, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	if opts.View == "" {
		opts.View = "default"
	}
	return &Poller{source: source, opts: opts}
}

// Start launches the polling loop. The first refresh runs immediately. The
// loop stops when ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop tears the loop down and waits for it to exit. An in-flight request is
// allowed to complete; its result is discarded with the snapshot.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	log := logging.WithView(p.opts.View, p.opts.Interval.String())
	log.Infow("Poller starting")

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	// Run immediately on start
	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Infow("Poller shutting down")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick wraps Refresh with the overlap guard and metrics. The ticker channel
// itself drops missed ticks, so a slow refresh causes skips, never a backlog.
func (p *Poller) tick(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		if p.opts.Metrics != nil {
			p.opts.Metrics.PollTicksTotal.WithLabelValues(p.opts.View, "skipped").Inc()
		}
		return
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	err := p.Refresh(ctx)
	duration := time.Since(start)

	if p.opts.Metrics != nil {
		p.opts.Metrics.PollTickDuration.WithLabelValues(p.opts.View).Observe(duration.Seconds())
		result := "ok"
		if err != nil {
			result = "failed"
		}
		p.opts.Metrics.PollTicksTotal.WithLabelValues(p.opts.View, result).Inc()
	}

	if err != nil {
		// Logged and skipped; the next interval retries.
		logging.Warn("Poll tick failed, keeping previous snapshot",
			"view", p.opts.View,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// Refresh performs one best-effort reconciliation pass. The new snapshot is
// published only when every required fetch succeeded; partial failures leave
// the previous snapshot and its derived views unchanged.
func (p *Poller) Refresh(ctx context.Context) error {
	op, err := p.source.GetActiveOperation(ctx)
	if err != nil {
		p.recordError(err)
		return err
	}

	// No active operation is a valid state, not an error: publish the explicit
	// empty snapshot so no stale assignments render against a closed operation.
	if op == nil {
		p.publish(&models.Snapshot{})
		return nil
	}

	var (
		assignments []models.Assignment
		vehicles    []models.Vehicle
		locations   []models.Location
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = p.source.ListAssignments(gctx, op.ID)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = p.source.ListVehicles(gctx)
		return err
	})
	if p.opts.IncludeLocations {
		g.Go(func() error {
			var err error
			locations, err = p.source.ListLocations(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		p.recordError(err)
		return err
	}

	p.publish(&models.Snapshot{
		Operation:   op,
		Assignments: assignments,
		Vehicles:    vehicles,
		Locations:   locations,
	})
	return nil
}

// Snapshot returns the last published snapshot, or nil before the first
// successful tick. Callers must treat it as immutable.
func (p *Poller) Snapshot() *models.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// LastError returns the error of the most recent tick, nil after a success.
func (p *Poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// LastTick returns when the last successful publish happened.
func (p *Poller) LastTick() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastTick
}

func (p *Poller) publish(snap *models.Snapshot) {
	p.mu.Lock()
	p.snapshot = snap
	p.lastErr = nil
	p.lastTick = time.Now()
	p.mu.Unlock()

	if p.opts.Metrics != nil {
		p.opts.Metrics.SnapshotLastSuccess.WithLabelValues(p.opts.View).SetToCurrentTime()
	}
	if p.opts.OnSnapshot != nil {
		p.opts.OnSnapshot(snap)
	}
}

func (p *Poller) recordError(err error) {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}
