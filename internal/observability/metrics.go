package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	activitySignupsTotal   *prometheus.CounterVec
	attendanceMarksTotal   *prometheus.CounterVec
	authLoginsTotal        *prometheus.CounterVec
	attendanceStreamsGauge prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activities_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		activitySignupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_signups_total",
			Help: "Signup attempts grouped by outcome.",
		}, []string{"result"})

		attendanceMarksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_attendance_marks_total",
			Help: "Attendance marks applied grouped by submitted status.",
		}, []string{"status"})

		authLoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_auth_logins_total",
			Help: "Login attempts grouped by result.",
		}, []string{"result"})

		attendanceStreamsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "activities_attendance_streams_active",
			Help: "Number of open live attendance websocket streams.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			activitySignupsTotal,
			attendanceMarksTotal,
			authLoginsTotal,
			attendanceStreamsGauge,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivitySignups counts signup attempts by result.
func ActivitySignups() *prometheus.CounterVec {
	RegisterMetrics()
	return activitySignupsTotal
}

// AttendanceMarks counts applied attendance marks by status.
func AttendanceMarks() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceMarksTotal
}

// AuthLogins counts login attempts by result.
func AuthLogins() *prometheus.CounterVec {
	RegisterMetrics()
	return authLoginsTotal
}

// AttendanceStreams tracks open websocket streams.
func AttendanceStreams() prometheus.Gauge {
	RegisterMetrics()
	return attendanceStreamsGauge
}
