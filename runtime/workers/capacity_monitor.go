package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Gauge samples one bounded resource. A capacity of zero means unbounded.
type Gauge struct {
	Name   string
	Sample func() (length, capacity int)
}

// CapacityMonitor periodically logs the usage of in-memory queues and warns
// when one is about to drop work.
// Sampling is non-blocking, so it never interferes with the goroutines it observes.
type CapacityMonitor struct {
	log                  *slog.Logger
	gauges               []Gauge
	metricInterval       time.Duration
	lowCapacityThreshold int
}

func NewCapacityMonitor(log *slog.Logger, metricInterval time.Duration, lowCapacityThreshold int, gauges ...Gauge) *CapacityMonitor {
	return &CapacityMonitor{
		log:                  log,
		gauges:               gauges,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

// Run samples every gauge each metric interval. A non-positive interval disables the
// monitor: Run returns nil at once, so the supervisor does not restart it.
func (w *CapacityMonitor) Run(ctx context.Context) error {
	if w.metricInterval <= 0 {
		w.log.Info("Capacity monitor disabled", "metric_interval", w.metricInterval)
		return nil
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity monitor")
			return nil
		case <-ticker.C:
			for _, g := range w.gauges {
				w.report(g)
			}
		}
	}
}

// report returns true when the gauge is running low.
func (w *CapacityMonitor) report(g Gauge) bool {
	length, capacity := g.Sample()
	if capacity <= 0 {
		w.log.Debug(fmt.Sprintf("%s usage: %d", g.Name, length))
		return false
	}
	w.log.Debug(fmt.Sprintf("%s usage: %d / %d", g.Name, length, capacity))
	capacityLeft := capacity - length
	if capacityLeft <= w.lowCapacityThreshold {
		w.log.Warn(fmt.Sprintf("%s capacity left : %d", g.Name, capacityLeft))
		return true
	}
	return false
}
