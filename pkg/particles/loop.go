package particles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

// ErrInvalidInterval is returned by Start for a non-positive interval.
var ErrInvalidInterval = errors.New("loop interval must be positive")

// TickFunc is called once per frame from the loop goroutine.
type TickFunc func(frame uint64)

// Loop is a ticking resource with an explicit stop handle. Ticks run one at
// a time on a single goroutine; once Stop returns no further tick fires.
type Loop struct {
	interval time.Duration
	tick     TickFunc
	log      *slog.Logger

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	stoppedCh chan struct{}

	frames atomic.Uint64
}

// NewLoop creates a stopped loop calling tick every interval.
func NewLoop(interval time.Duration, tick TickFunc, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		interval: interval,
		tick:     tick,
		log:      log.With(logger.Scope("particles.loop")),
	}
}

// Start begins ticking. The loop also stops on its own when ctx is done.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil
	}
	if l.interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, l.interval)
	}

	l.running = true
	l.stopCh = make(chan struct{})
	l.stoppedCh = make(chan struct{})

	l.log.Debug("frame loop starting", slog.Duration("interval", l.interval))

	go l.run(ctx, l.stopCh, l.stoppedCh)
	return nil
}

// Stop cancels the ticker and waits for an in-flight tick to finish.
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = false
	close(l.stopCh)
	stopped := l.stoppedCh
	l.mu.Unlock()

	select {
	case <-stopped:
		l.log.Debug("frame loop stopped", slog.Uint64("frames", l.frames.Load()))
		return nil
	case <-ctx.Done():
		l.log.Warn("frame loop stop timeout")
		return ctx.Err()
	}
}

// Running reports whether the loop is ticking.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frames returns the number of ticks delivered since creation.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

func (l *Loop) run(ctx context.Context, stopCh, stoppedCh chan struct{}) {
	defer func() {
		l.mu.Lock()
		if l.stoppedCh == stoppedCh {
			l.running = false
		}
		l.mu.Unlock()
		close(stoppedCh)
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Stop may have raced the ticker; it wins.
			select {
			case <-stopCh:
				return
			default:
			}
			l.tick(l.frames.Add(1))
		}
	}
}
