package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(testLogger(), time.Minute)

	if s.IsRunning() {
		t.Error("new scheduler should not be running")
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("scheduler should be running after Start")
	}
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("second Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler should not be running after Stop")
	}
}

func TestScheduler_AddTasks(t *testing.T) {
	s := NewScheduler(testLogger(), time.Minute)
	noop := func(context.Context) error { return nil }

	if err := s.AddCronTask("b", "0 */5 * * * *", noop); err != nil {
		t.Fatalf("AddCronTask() error = %v", err)
	}
	if err := s.AddIntervalTask("a", time.Minute, noop); err != nil {
		t.Fatalf("AddIntervalTask() error = %v", err)
	}
	// Re-adding replaces the entry.
	if err := s.AddIntervalTask("a", 2*time.Minute, noop); err != nil {
		t.Fatalf("AddIntervalTask() error = %v", err)
	}

	tasks := s.ListTasks()
	if len(tasks) != 2 || tasks[0] != "a" || tasks[1] != "b" {
		t.Errorf("ListTasks() = %v, want [a b]", tasks)
	}
	if entries := len(s.cron.Entries()); entries != 2 {
		t.Errorf("cron entries = %d, want 2 after replacing a", entries)
	}
}

func TestScheduler_InvalidSchedules(t *testing.T) {
	s := NewScheduler(testLogger(), time.Minute)
	noop := func(context.Context) error { return nil }

	if err := s.AddCronTask("bad", "every tuesday", noop); err == nil {
		t.Error("AddCronTask() expected error for invalid expression")
	}
	if err := s.AddIntervalTask("zero", 0, noop); err == nil {
		t.Error("AddIntervalTask() expected error for zero interval")
	}
	if len(s.ListTasks()) != 0 {
		t.Errorf("invalid tasks should not be registered: %v", s.ListTasks())
	}
}

func TestScheduler_RunTaskRecordsOutcome(t *testing.T) {
	s := NewScheduler(testLogger(), time.Second)

	okBefore := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("sample_task", metrics.OutcomeOK))
	errBefore := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("sample_task", metrics.OutcomeError))

	var sawDeadline atomic.Bool
	s.runTask("sample_task", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		return nil
	})
	s.runTask("sample_task", func(context.Context) error { return errors.New("boom") })

	if !sawDeadline.Load() {
		t.Error("task context should carry the timeout")
	}
	if got := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("sample_task", metrics.OutcomeOK)) - okBefore; got != 1 {
		t.Errorf("ok runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ScheduledRuns.WithLabelValues("sample_task", metrics.OutcomeError)) - errBefore; got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
}

func TestScheduler_GetTaskInfo(t *testing.T) {
	s := NewScheduler(testLogger(), time.Minute)
	if err := s.AddIntervalTask("tick", time.Hour, func(context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop(context.Background())

	// cron computes Next asynchronously after Start.
	deadline := time.Now().Add(time.Second)
	var info []TaskInfo
	for time.Now().Before(deadline) {
		info = s.GetTaskInfo()
		if len(info) == 1 && !info[0].NextRun.IsZero() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(info) != 1 || info[0].Name != "tick" {
		t.Fatalf("GetTaskInfo() = %+v", info)
	}
	if info[0].NextRun.IsZero() {
		t.Error("NextRun should be set once the scheduler runs")
	}
}

type fakeReindexer struct {
	enabled bool
	calls   int
	err     error
}

func (f *fakeReindexer) Enabled() bool { return f.enabled }

func (f *fakeReindexer) Reindex(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestReindexTask_Run(t *testing.T) {
	disabled := &fakeReindexer{}
	if err := NewReindexTask(disabled, testLogger()).Run(context.Background()); err != nil {
		t.Errorf("Run() disabled error = %v", err)
	}
	if disabled.calls != 0 {
		t.Error("disabled indexer should not be called")
	}

	failing := &fakeReindexer{enabled: true, err: errors.New("quota exceeded")}
	if err := NewReindexTask(failing, testLogger()).Run(context.Background()); err == nil {
		t.Error("Run() should return the indexer error")
	}
	if failing.calls != 1 {
		t.Errorf("calls = %d, want 1", failing.calls)
	}
}

type fakeSweeper struct {
	maxIdle time.Duration
}

func (f *fakeSweeper) Sweep(maxIdle time.Duration) int {
	f.maxIdle = maxIdle
	return 3
}

func TestLimiterSweepTask_Run(t *testing.T) {
	sw := &fakeSweeper{}
	if err := NewLimiterSweepTask(sw, 30*time.Minute, testLogger()).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sw.maxIdle != 30*time.Minute {
		t.Errorf("maxIdle = %v", sw.maxIdle)
	}
}
