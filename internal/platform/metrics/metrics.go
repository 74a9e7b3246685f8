// Package metrics provides observability for the countdown server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cancellation reasons used as label values.
const (
	ReasonMoved    = "moved"
	ReasonExplicit = "explicit"
)

// Metrics holds all Prometheus metrics for the countdown server.
type Metrics struct {
	gatherer prometheus.Gatherer

	CountdownsStarted   prometheus.Counter
	CountdownsCancelled *prometheus.CounterVec
	CountdownsExpired   prometheus.Counter
	Notifications       prometheus.Counter
	ActiveCountdowns    prometheus.Gauge
	SchedulerRunning    prometheus.Gauge
	TickDuration        prometheus.Histogram

	WSConnectionsActive prometheus.Gauge
	WSMessagesIn        prometheus.Counter
	WSMessagesOut       prometheus.Counter
}

// New creates the metrics on a fresh registry. Each server (and each test)
// gets its own, so repeated construction never collides.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the metrics on reg and serves them from gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		CountdownsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "countdown_started_total",
			Help: "Total number of countdowns started, including restarts",
		}),
		CountdownsCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countdown_cancelled_total",
			Help: "Total number of countdowns cancelled before expiry",
		}, []string{"reason"}),
		CountdownsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "countdown_expired_total",
			Help: "Total number of countdowns that reached zero",
		}),
		Notifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "countdown_notifications_total",
			Help: "Total number of countdown messages sent to players",
		}),
		ActiveCountdowns: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countdown_active",
			Help: "Current number of running countdowns",
		}),
		SchedulerRunning: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countdown_scheduler_running",
			Help: "1 while the countdown scheduler is running",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "countdown_advance_duration_seconds",
			Help:    "Time spent advancing all countdowns in one driver tick",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		WSConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countdown_ws_connections_active",
			Help: "Current number of connected WebSocket clients",
		}),
		WSMessagesIn: factory.NewCounter(prometheus.CounterOpts{
			Name: "countdown_ws_messages_in_total",
			Help: "Total number of WebSocket messages received",
		}),
		WSMessagesOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "countdown_ws_messages_out_total",
			Help: "Total number of WebSocket messages queued for sending",
		}),
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) IncrementStarted() {
	m.CountdownsStarted.Inc()
}

func (m *Metrics) IncrementCancelled(reason string) {
	m.CountdownsCancelled.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementExpired() {
	m.CountdownsExpired.Inc()
}

func (m *Metrics) IncrementNotifications() {
	m.Notifications.Inc()
}

func (m *Metrics) SetActive(count int) {
	m.ActiveCountdowns.Set(float64(count))
}

func (m *Metrics) SetSchedulerRunning(running bool) {
	if running {
		m.SchedulerRunning.Set(1)
		return
	}
	m.SchedulerRunning.Set(0)
}

// ObserveTick records how long one Advance took.
func (m *Metrics) ObserveTick(d time.Duration) {
	m.TickDuration.Observe(d.Seconds())
}
