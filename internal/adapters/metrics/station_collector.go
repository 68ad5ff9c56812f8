package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// StationCollector records crafting order lifecycle metrics. It implements
// crafting.EventPublisher so it can be fanned in next to the event bus and
// observe every order transition without the station knowing about
// Prometheus.
type StationCollector struct {
	ordersStarted   *prometheus.CounterVec
	ordersCompleted *prometheus.CounterVec
	ordersFailed    *prometheus.CounterVec
	ordersCancelled prometheus.Counter
	craftDuration   *prometheus.HistogramVec
	activeProgress  prometheus.Gauge
}

// Compile-time interface check
var _ crafting.EventPublisher = (*StationCollector)(nil)

// NewStationCollector creates a new station metrics collector
func NewStationCollector() *StationCollector {
	return &StationCollector{
		ordersStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_started_total",
				Help:      "Total number of crafting orders started, by recipe",
			},
			[]string{"recipe"},
		),
		ordersCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_completed_total",
				Help:      "Total number of crafting orders completed successfully, by recipe and final quality",
			},
			[]string{"recipe", "quality"},
		),
		ordersFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_failed_total",
				Help:      "Total number of crafting orders that failed their outcome roll, by recipe",
			},
			[]string{"recipe"},
		),
		ordersCancelled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Total number of crafting orders cancelled",
			},
		),
		craftDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "craft_duration_seconds",
				Help:      "Wall time from order creation to successful completion",
				Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"recipe"},
		),
		activeProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_order_progress",
				Help:      "Progress of the currently active order in [0,1]",
			},
		),
	}
}

// Register registers all station metrics with the Prometheus registry
func (c *StationCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.ordersStarted,
		c.ordersCompleted,
		c.ordersFailed,
		c.ordersCancelled,
		c.craftDuration,
		c.activeProgress,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// EventPublisher implementation

func (c *StationCollector) PublishCraftingStarted(event crafting.CraftingStartedEvent) {
	c.ordersStarted.WithLabelValues(event.RecipeID).Inc()
	c.activeProgress.Set(0)
}

func (c *StationCollector) PublishCraftingProgress(event crafting.CraftingProgressEvent) {
	c.activeProgress.Set(event.Progress)
}

func (c *StationCollector) PublishCraftingCompleted(event crafting.CraftingCompletedEvent) {
	c.ordersCompleted.WithLabelValues(event.RecipeID, event.FinalQuality.String()).Inc()
	c.craftDuration.WithLabelValues(event.RecipeID).Observe(event.Duration.Seconds())
}

func (c *StationCollector) PublishCraftingFailed(event crafting.CraftingFailedEvent) {
	c.ordersFailed.WithLabelValues(event.RecipeID).Inc()
}

func (c *StationCollector) PublishCraftingCancelled(event crafting.CraftingCancelledEvent) {
	c.ordersCancelled.Inc()
}
