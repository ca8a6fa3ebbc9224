package checkcore

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	infoCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "checkcore_info",
			Help: "information about this agent",
		},
		[]string{"version"})

	checkState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "checkcore_check_state",
			Help: "last state of a check, 0=ok 1=warning 2=critical 3=unknown",
		},
		[]string{"check"})

	metricValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "checkcore_metric_value",
			Help: "last performance value of a check metric",
		},
		[]string{"check", "metric"})
)

// Exporter publishes the last evaluation results for prometheus.
type Exporter struct {
	registry *prometheus.Registry
	handler  http.Handler
}

// NewExporter creates an Exporter with its own registry, registering
// twice is not an issue that way.
func NewExporter() *Exporter {
	registry := prometheus.NewRegistry()
	registry.MustRegister(infoCount, checkState, metricValue)
	infoCount.WithLabelValues(VERSION).Set(1)

	return &Exporter{
		registry: registry,
		handler: promhttp.InstrumentMetricHandler(
			registry,
			promhttp.HandlerFor(
				registry,
				promhttp.HandlerOpts{EnableOpenMetrics: true},
			),
		),
	}
}

// Update publishes the result of a check run.
func (e *Exporter) Update(check string, res *CheckResult) {
	checkState.WithLabelValues(check).Set(float64(res.State))
	for _, metric := range res.Metrics {
		metricValue.WithLabelValues(check, metric.Name).Set(metric.Value)
	}
}

// Router returns the http routes of this exporter.
func (e *Exporter) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", e.handler)

	return router
}

// Serve runs the exporter until the listener fails.
func (e *Exporter) Serve(core *Core, port int64) error {
	core.exporter = e

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      e.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("serving prometheus metrics on %s/metrics", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("listener failed: %s", err.Error())
	}

	return nil
}
