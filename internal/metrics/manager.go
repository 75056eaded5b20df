package metrics

import (
	"alcyxob/trainer-dashboard/internal/events"
	"alcyxob/trainer-dashboard/internal/render"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterCalendarRenders    *prometheus.CounterVec
	CounterEvents             *prometheus.CounterVec
	CounterCommands           *prometheus.CounterVec

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("trainer", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("trainer", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterCalendarRenders := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calendar_renders",
		Help:      "The total number of calendar snapshots pushed to displays",
	}, []string{"granularity"})
	counterEvents := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events",
		Help:      "The total number of published dashboard events",
	}, []string{"kind"})
	counterCommands := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "commands",
		Help:      "The total number of quick actions run",
	}, []string{"action", "result"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.00001, 0.0001, 0.0005, 0.001, 0.005,
				0.01, 0.05, 0.1, 0.5, 1, 5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterCalendarRenders:    counterCalendarRenders,
		CounterEvents:             counterEvents,
		CounterCommands:           counterCommands,
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}

// Render counts snapshots by granularity; the manager doubles as a display.
func (m *Manager) Render(s render.Snapshot) {
	m.CounterCalendarRenders.WithLabelValues(string(s.Granularity)).Inc()
}

// Observe counts every event published on bus.
func (m *Manager) Observe(bus *events.Bus) {
	bus.Subscribe(func(e events.Envelope) {
		m.CounterEvents.WithLabelValues(string(e.Kind)).Inc()
	})
}

// CommandRun records the outcome of a quick action.
func (m *Manager) CommandRun(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CounterCommands.WithLabelValues(action, result).Inc()
}
