package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KungRaseri/forgecraft/internal/application/common"
)

// CommandMetricsCollector handles all command/query dispatch metrics
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "command_duration_seconds",
				Help:      "Command execution duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "commands_total",
				Help:      "Total number of commands executed by type and status",
			},
			[]string{"command", "status"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, collector := range []prometheus.Collector{c.commandDuration, c.commandsTotal} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Middleware returns a mediator middleware that records duration and outcome
// for every dispatched request
func (c *CommandMetricsCollector) Middleware() common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)

		command := fmt.Sprintf("%T", request)
		status := "success"
		if err != nil {
			status = "error"
		}

		c.commandDuration.WithLabelValues(command, status).Observe(time.Since(start).Seconds())
		c.commandsTotal.WithLabelValues(command, status).Inc()

		return response, err
	}
}
