package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flightarcs",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Geometry metrics
	GeometryBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "geometry",
		Name:      "builds_total",
		Help:      "Flight path geometry builds by result",
	}, []string{"result"})

	GeometryBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "flightarcs",
		Subsystem: "geometry",
		Name:      "build_duration_seconds",
		Help:      "Time to build one trip's geometry",
		Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
	})

	GeometryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "geometry",
		Name:      "cache_lookups_total",
		Help:      "Geometry cache lookups by result (hit, miss)",
	}, []string{"result"})

	AntimeridianCrossings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "geometry",
		Name:      "antimeridian_crossings_total",
		Help:      "Built paths that crossed the antimeridian",
	})

	// Domain metrics
	TripsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "trips",
		Name:      "created_total",
		Help:      "Trips recorded",
	})

	AirportsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "flightarcs",
		Subsystem: "airports",
		Name:      "imported_total",
		Help:      "Airport rows upserted by imports",
	})
)

// ObserveBuild records one geometry build.
func ObserveBuild(start time.Time, err error, crossed bool) {
	GeometryBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		GeometryBuilds.WithLabelValues("error").Inc()
		return
	}
	GeometryBuilds.WithLabelValues("ok").Inc()
	if crossed {
		AntimeridianCrossings.Inc()
	}
}

// Middleware records request count and latency. The route template is
// used as the path label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
