package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/teststubs"
)

func sampleSnapshot() teams.Snapshot {
	return teams.Snapshot{
		GeneratedAt: time.Date(2025, 3, 22, 19, 30, 0, 0, time.UTC),
		Players:     []players.Player{{Name: "Virat Kohli", Status: players.StatusSold}},
		Teams:       []teams.TeamStats{{TeamID: "royalstrik", TeamName: "Royal Strikers", TotalPoints: 95}},
	}
}

func TestPollerRefreshesAndWritesSnapshot(t *testing.T) {
	refresher := &teststubs.StubRefresher{
		Snapshot: sampleSnapshot(),
		Notify:   make(chan struct{}),
	}
	writer := &teststubs.StubSnapshotWriter{}

	p := New(refresher, writer, nil, nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	snap, ok := writer.Get("2025-03-22")
	if !ok {
		t.Fatalf("expected snapshot written for 2025-03-22")
	}
	if len(snap.Teams) != 1 || snap.Teams[0].TeamID != "royalstrik" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if refresher.Calls.Load() < 1 {
		t.Fatalf("expected at least one refresh call")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	refresher := &teststubs.StubRefresher{Notify: make(chan struct{})}
	p := New(refresher, &teststubs.StubSnapshotWriter{}, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-refresher.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial refresh")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond) // let the loop observe the stop

	callsAfterStop := refresher.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if refresher.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional refreshes after stop; before=%d after=%d", callsAfterStop, refresher.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, &teststubs.StubSnapshotWriter{}, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, &teststubs.StubSnapshotWriter{}, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, &teststubs.StubSnapshotWriter{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&teststubs.StubRefresher{}, &teststubs.StubSnapshotWriter{}, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	refresher := &teststubs.StubRefresher{Err: errors.New("boom")}
	p := New(refresher, &teststubs.StubSnapshotWriter{}, nil, metrics.NewRecorder(), time.Millisecond)
	ctx := context.Background()

	p.refreshOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	refresher.SetErr(nil)
	p.refreshOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestStatusNotReadyAfterRepeatedFailures(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}
	if s.IsReady() {
		t.Fatalf("expected not ready after three consecutive failures")
	}
	s.ConsecutiveFailures = 2
	if !s.IsReady() {
		t.Fatalf("expected ready with fewer than three failures")
	}
}

func TestPollerFailureSkipsWrite(t *testing.T) {
	refresher := &teststubs.StubRefresher{Snapshot: sampleSnapshot(), Err: errors.New("down")}
	writer := &teststubs.StubSnapshotWriter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(refresher, writer, logger, nil, time.Second)
	p.refreshOnce(context.Background())

	if _, ok := writer.Get("2025-03-22"); ok {
		t.Fatalf("expected no snapshot written after failed refresh")
	}
}

func TestPollerNilWriterDoesNotPanic(t *testing.T) {
	p := New(&teststubs.StubRefresher{Snapshot: sampleSnapshot()}, nil, nil, nil, time.Minute)
	p.refreshOnce(context.Background())
	if !p.Status().IsReady() {
		t.Fatalf("expected ready without writer")
	}
}

func TestPollerWriteErrorLogsButContinues(t *testing.T) {
	refresher := &teststubs.StubRefresher{Snapshot: sampleSnapshot()}
	writer := &teststubs.StubSnapshotWriter{Err: errors.New("write failed")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(refresher, writer, logger, nil, time.Minute)
	p.refreshOnce(context.Background())

	if p.Status().ConsecutiveFailures != 0 {
		t.Fatalf("expected success despite write error")
	}
}

func BenchmarkPollerRefreshOnce(b *testing.B) {
	refresher := &teststubs.StubRefresher{Snapshot: sampleSnapshot()}
	p := New(refresher, &teststubs.StubSnapshotWriter{}, nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.refreshOnce(ctx)
	}
}
