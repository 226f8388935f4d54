// Package syshealth samples host CPU load and memory pressure so expensive
// endpoints can back off when the machine is struggling.
package syshealth

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
)

// Zone is the current health zone derived from the score
type Zone string

const (
	ZoneCritical Zone = "critical" // score 0-33
	ZoneWarning  Zone = "warning"  // score 34-66
	ZoneSafe     Zone = "safe"     // score 67-100
)

// Config holds thresholds and timing for the monitor
type Config struct {
	Interval time.Duration
	// CPULoad factors are multiples of the core count.
	CPULoadWarningFactor  float64
	CPULoadCriticalFactor float64
	MemoryWarningPercent  float64
	MemoryCriticalPercent float64
	// StalenessThreshold marks metrics stale when collection stops.
	StalenessThreshold time.Duration
}

// DefaultConfig returns production thresholds
func DefaultConfig() Config {
	return Config{
		Interval:              30 * time.Second,
		CPULoadWarningFactor:  1.5,
		CPULoadCriticalFactor: 3.0,
		MemoryWarningPercent:  85,
		MemoryCriticalPercent: 95,
		StalenessThreshold:    2 * time.Minute,
	}
}

// Metrics is one collection
type Metrics struct {
	Score         int       `json:"score"`
	Zone          Zone      `json:"zone"`
	CPULoadAvg    float64   `json:"cpu_load_avg"`
	MemoryPercent float64   `json:"memory_percent"`
	Timestamp     time.Time `json:"timestamp"`
	Stale         bool      `json:"stale"`
}

// Monitor collects host metrics on an interval
type Monitor struct {
	cfg Config
	log *slog.Logger

	mu      sync.RWMutex
	current Metrics
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Collectors, replaceable in tests
	getLoadAvg  func(context.Context) (*load.AvgStat, error)
	getMemStats func(context.Context) (*mem.VirtualMemoryStat, error)
	getCPUCores func() int
}

func NewMonitor(cfg Config, log *slog.Logger) *Monitor {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.CPULoadWarningFactor <= 0 {
		cfg.CPULoadWarningFactor = def.CPULoadWarningFactor
	}
	if cfg.CPULoadCriticalFactor <= 0 {
		cfg.CPULoadCriticalFactor = def.CPULoadCriticalFactor
	}
	if cfg.MemoryWarningPercent <= 0 {
		cfg.MemoryWarningPercent = def.MemoryWarningPercent
	}
	if cfg.MemoryCriticalPercent <= 0 {
		cfg.MemoryCriticalPercent = def.MemoryCriticalPercent
	}
	if cfg.StalenessThreshold <= 0 {
		cfg.StalenessThreshold = def.StalenessThreshold
	}

	return &Monitor{
		cfg:         cfg,
		log:         log.With(logger.Scope("syshealth")),
		current:     Metrics{Score: 100, Zone: ZoneSafe},
		getLoadAvg:  load.AvgWithContext,
		getMemStats: mem.VirtualMemoryWithContext,
		getCPUCores: runtime.NumCPU,
	}
}

// Start collects once and then on every interval until Stop
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.stopCh != nil {
		m.mu.Unlock()
		return
	}
	stopCh, doneCh := make(chan struct{}), make(chan struct{})
	m.stopCh, m.doneCh = stopCh, doneCh
	m.mu.Unlock()

	go func() {
		defer close(doneCh)
		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()

		m.collect()
		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-stopCh:
				return
			}
		}
	}()

	m.log.Info("system health monitor started", slog.Duration("interval", m.cfg.Interval))
}

// Stop ends collection and waits for the in-flight one
func (m *Monitor) Stop() {
	m.mu.Lock()
	stopCh, doneCh := m.stopCh, m.doneCh
	m.stopCh, m.doneCh = nil, nil
	m.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
	m.log.Info("system health monitor stopped")
}

// Health returns the latest metrics
func (m *Monitor) Health() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.current
	if !out.Timestamp.IsZero() && time.Since(out.Timestamp) > m.cfg.StalenessThreshold {
		out.Stale = true
	}
	return out
}

// Critical reports whether fresh metrics put the host in the critical zone.
// Stale metrics never count as critical.
func (m *Monitor) Critical() bool {
	h := m.Health()
	return h.Zone == ZoneCritical && !h.Stale
}

func (m *Monitor) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m.mu.RLock()
	loadAvg, memPercent := m.current.CPULoadAvg, m.current.MemoryPercent
	prevZone := m.current.Zone
	m.mu.RUnlock()

	// Failed collectors keep their last value.
	if l, err := m.getLoadAvg(ctx); err == nil {
		loadAvg = l.Load1
	} else {
		m.log.Warn("failed to collect load average", logger.Error(err))
	}
	if v, err := m.getMemStats(ctx); err == nil {
		memPercent = v.UsedPercent
	} else {
		m.log.Warn("failed to collect memory stats", logger.Error(err))
	}

	cores := float64(m.getCPUCores())
	if cores < 1 {
		cores = 1
	}
	score := Score(m.cfg, loadAvg/cores, memPercent)
	zone := ZoneFor(score)

	if zone != prevZone {
		m.log.Warn("system health zone transition",
			slog.String("old_zone", string(prevZone)),
			slog.String("new_zone", string(zone)),
			slog.Int("score", score))
	}

	m.mu.Lock()
	m.current = Metrics{
		Score:         score,
		Zone:          zone,
		CPULoadAvg:    loadAvg,
		MemoryPercent: memPercent,
		Timestamp:     time.Now(),
	}
	m.mu.Unlock()

	metrics.SystemHealthScore.Set(float64(score))
	metrics.SystemCPULoad.Set(loadAvg)
	metrics.SystemMemoryPercent.Set(memPercent)
}

// Score turns load per core and memory use into 0-100, higher is healthier.
// CPU carries 60% of the penalty and memory 40%.
func Score(cfg Config, loadPerCore, memPercent float64) int {
	cpu := penalty(loadPerCore, cfg.CPULoadWarningFactor, cfg.CPULoadCriticalFactor)
	memory := penalty(memPercent, cfg.MemoryWarningPercent, cfg.MemoryCriticalPercent)
	score := 100 - int(math.Round(cpu*0.6+memory*0.4))
	if score < 0 {
		score = 0
	}
	return score
}

// ZoneFor maps a score to its zone
func ZoneFor(score int) Zone {
	switch {
	case score <= 33:
		return ZoneCritical
	case score <= 66:
		return ZoneWarning
	default:
		return ZoneSafe
	}
}

func penalty(value, warning, critical float64) float64 {
	switch {
	case value >= critical:
		return 100
	case value >= warning:
		return 50
	}
	return 0
}
