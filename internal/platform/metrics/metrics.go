package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	Compositions *prometheus.CounterVec // outcome label: ready|error
	GeocodeCalls *prometheus.CounterVec // outcome label: ok|not_found|unavailable
	RouteCalls   *prometheus.CounterVec // outcome label: ok|empty|unavailable

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	ComposeDuration prometheus.Histogram

	LiveSessions prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routemap_compositions_total",
			Help: "Total route compositions by outcome.",
		}, []string{"outcome"}),
		GeocodeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routemap_geocode_calls_total",
			Help: "Total geocoding service calls by outcome.",
		}, []string{"outcome"}),
		RouteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routemap_route_calls_total",
			Help: "Total routing service calls by outcome.",
		}, []string{"outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routemap_route_cache_hits_total",
			Help: "Total composed-route cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routemap_route_cache_misses_total",
			Help: "Total composed-route cache misses.",
		}),
		ComposeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routemap_compose_duration_seconds",
			Help:    "End-to-end duration of route compositions.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routemap_live_sessions",
			Help: "Number of live map sessions (0 or 1).",
		}),
	}

	reg.MustRegister(
		c.Compositions, c.GeocodeCalls, c.RouteCalls,
		c.CacheHits, c.CacheMisses,
		c.ComposeDuration, c.LiveSessions,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
