// Package metrics exports composition counters and timings in the Prometheus
// format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/ctrl"
	"github.com/tjjh89017/fxsandbox/internal/entity"
)

const (
	namespace = "fxsandbox"
	subsystem = "composition"

	MetricPath = "/metrics"
)

var DefaultSet = wire.NewSet(
	NewCollector,
	wire.Bind(new(ctrl.CompositionMetrics), new(*Collector)),
)

var _ ctrl.CompositionMetrics = &Collector{}

type Collector struct {
	registry *prometheus.Registry

	applied         *prometheus.CounterVec
	applyFailures   *prometheus.CounterVec
	cleanupFailures *prometheus.CounterVec
	unresolved      prometheus.Counter
	superseded      prometheus.Counter
	active          *prometheus.GaugeVec
	duration        prometheus.Histogram

	logger zerolog.Logger
}

func NewCollector(logger *zerolog.Logger) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "applied_instances_total",
			Help:      "Plugin instances applied, by plugin.",
		}, []string{"plugin"}),
		applyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "apply_failures_total",
			Help:      "Plugin applications that failed, by plugin.",
		}, []string{"plugin"}),
		cleanupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cleanup_failures_total",
			Help:      "Instance cleanups that failed, by plugin.",
		}, []string{"plugin"}),
		unresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unresolved_ids_total",
			Help:      "Requested plugin ids missing from the registry.",
		}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "superseded_total",
			Help:      "Composition requests overtaken before applying.",
		}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_instances",
			Help:      "Plugin instances currently active, by container.",
		}, []string{"container"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Time spent replacing a composition.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		logger: logger.With().Str("component", "metrics").Logger(),
	}

	c.registry.MustRegister(
		c.applied,
		c.applyFailures,
		c.cleanupFailures,
		c.unresolved,
		c.superseded,
		c.active,
		c.duration,
	)

	return c
}

func (c *Collector) ObserveComposition(report *entity.CompositionReport, elapsed time.Duration) {
	c.duration.Observe(elapsed.Seconds())

	if report.Superseded {
		c.superseded.Inc()
	}
	for _, instance := range report.Applied {
		c.applied.WithLabelValues(string(instance.Owner())).Inc()
	}
	for _, failure := range report.ApplyFailures {
		c.applyFailures.WithLabelValues(string(failure.Plugin)).Inc()
	}
	for _, failure := range report.CleanupFailures {
		c.cleanupFailures.WithLabelValues(string(failure.Plugin)).Inc()
	}
	c.unresolved.Add(float64(len(report.Unresolved)))
}

func (c *Collector) SetActive(container entity.ContainerId, active int) {
	c.active.WithLabelValues(string(container)).Set(float64(active))
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Serve exposes the collector on listen until ctx is done.
func (c *Collector) Serve(ctx context.Context, listen string) error {
	mux := http.NewServeMux()
	mux.Handle(MetricPath, c.Handler())

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			c.logger.Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	c.logger.Info().Str("listen", ln.Addr().String()).Msg("serving metrics")

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
