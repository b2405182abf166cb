// Package metrics exposes Prometheus metrics for the API and the domain services.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the service layer reports domain activity through
type Recorder interface {
	RecordAction(action string)
	RecordNotification(verb string)
}

// Collector holds the registered Prometheus metrics
type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	actions       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "socialfeed_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_actions_total",
			Help: "Completed domain actions (follow, like, comment, ...)",
		}, []string{"action"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_notifications_created_total",
			Help: "Notifications written, by verb",
		}, []string{"verb"}),
	}

	reg.MustRegister(c.requests, c.latency, c.actions, c.notifications)
	return c
}

func (c *Collector) RecordAction(action string) {
	c.actions.WithLabelValues(action).Inc()
}

func (c *Collector) RecordNotification(verb string) {
	c.notifications.WithLabelValues(verb).Inc()
}

// StatusResolver maps a handler error to the status the error handler will write
type StatusResolver func(error) int

// Middleware records request count and latency per matched route. Errors are
// labelled with the status resolve assigns them; without a resolver any
// non-HTTPError counts as a 500.
func (c *Collector) Middleware(resolve StatusResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil && !ctx.Response().Committed {
				var he *echo.HTTPError
				switch {
				case errors.As(err, &he):
					status = he.Code
				case resolve != nil:
					status = resolve(err)
				default:
					status = http.StatusInternalServerError
				}
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method

			c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			c.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler returns the scrape handler for the given gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

type nopRecorder struct{}

// Nop returns a Recorder that discards everything
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) RecordAction(string)       {}
func (nopRecorder) RecordNotification(string) {}
