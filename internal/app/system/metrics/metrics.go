// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the site's Prometheus metrics.
type Collector struct {
	requests         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	catalogFallbacks *prometheus.CounterVec
	virtualInjected  prometheus.Counter
	submissions      *prometheus.CounterVec
	throttled        *prometheus.CounterVec
	jobRuns          *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rightonrepair_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rightonrepair_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		catalogFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rightonrepair_catalog_fallback_total",
			Help: "Catalog lookups that found nothing published and fell back to unpublished records.",
		}, []string{"entity"}),
		virtualInjected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rightonrepair_catalog_virtual_injection_total",
			Help: "Times the virtual laptop repair entry was synthesized.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rightonrepair_form_submissions_total",
			Help: "Form submissions by form and outcome.",
		}, []string{"form", "outcome"}),
		throttled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rightonrepair_throttled_total",
			Help: "Requests rejected by a rate limiter.",
		}, []string{"limiter"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rightonrepair_background_job_runs_total",
			Help: "Background job runs by job and outcome.",
		}, []string{"job", "outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.catalogFallbacks,
		c.virtualInjected,
		c.submissions,
		c.throttled,
		c.jobRuns,
	)
	return c
}

// RecordCatalogFallback counts a published-to-unpublished fallback.
func (c *Collector) RecordCatalogFallback(entity string) {
	c.catalogFallbacks.WithLabelValues(entity).Inc()
}

// RecordVirtualInjection counts a synthesized laptop repair entry.
func (c *Collector) RecordVirtualInjection() {
	c.virtualInjected.Inc()
}

// RecordSubmission counts a form submission outcome.
func (c *Collector) RecordSubmission(form, outcome string) {
	c.submissions.WithLabelValues(form, outcome).Inc()
}

// RecordThrottled counts a rejected request.
func (c *Collector) RecordThrottled(limiter string) {
	c.throttled.WithLabelValues(limiter).Inc()
}

// RecordJob counts a background job run; a nil err counts as ok.
func (c *Collector) RecordJob(job string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.jobRuns.WithLabelValues(job, outcome).Inc()
}

// Middleware records request counts and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		c.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		c.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}
