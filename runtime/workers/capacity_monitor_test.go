package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestCapacityMonitor_Report(t *testing.T) {
	tests := []struct {
		name             string
		length, capacity int
		wantLow          bool
	}{
		{"plenty left", 10, 100, false},
		{"at threshold", 95, 100, true},
		{"full", 100, 100, true},
		{"unbounded", 5000, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor := NewCapacityMonitor(logs.GetLoggerFromLevel(slog.LevelDebug), time.Second, 5)
			low := monitor.report(Gauge{Name: "queue", Sample: func() (int, int) { return tt.length, tt.capacity }})
			require.Equal(t, tt.wantLow, low)
		})
	}
}

func TestCapacityMonitor_Samples_Until_Canceled(t *testing.T) {
	req := require.New(t)
	var samples atomic.Int32
	gauge := Gauge{Name: "sessions", Sample: func() (int, int) {
		samples.Add(1)
		return 1, 0
	}}
	monitor := NewCapacityMonitor(logs.GetLoggerFromLevel(slog.LevelDebug), 5*time.Millisecond, 0, gauge)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// Given a running monitor
	go func() { done <- monitor.Run(ctx) }()
	req.Eventually(func() bool { return samples.Load() >= 2 }, time.Second, 5*time.Millisecond)

	// When the context is canceled
	cancel()

	// Then the monitor stops without error
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("monitor did not stop")
	}
}

func TestCapacityMonitor_Non_Positive_Interval_Disables_It(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		req := require.New(t)
		var samples atomic.Int32
		gauge := Gauge{Name: "queue", Sample: func() (int, int) {
			samples.Add(1)
			return 0, 10
		}}
		monitor := NewCapacityMonitor(logs.GetLoggerFromLevel(slog.LevelDebug), interval, 1, gauge)

		req.NotPanics(func() { req.NoError(monitor.Run(context.Background())) })
		req.Zero(samples.Load())
	}
}
