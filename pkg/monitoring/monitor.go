package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	EnrollmentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lms_enrollments_total",
		Help: "Number of new course enrollments",
	})

	CertificatesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lms_certificates_issued_total",
		Help: "Number of course completion certificates issued",
	})

	QuizAttemptsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lms_quiz_attempts_total",
		Help: "Number of graded quiz attempts",
	})

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_submissions_total",
			Help: "Number of assignment submissions",
		},
		[]string{"source"},
	)

	AnalyticsRecomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lms_analytics_recompute_duration_seconds",
		Help:    "Duration of course analytics recomputation",
		Buckets: prometheus.DefBuckets,
	})
)

var registerOnce sync.Once

// Init 可重复调用，只注册一次
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			EnrollmentsTotal,
			CertificatesIssued,
			QuizAttemptsTotal,
			SubmissionsTotal,
			AnalyticsRecomputeDuration,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
