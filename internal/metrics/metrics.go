// Package metrics records API call counts and latencies for the console.
package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements httpx.Observer on a private registry.
type Recorder struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	requestCount         uint64
	failureCount         uint64
	requestDurationTotal uint64
}

// Snapshot is a cheap summary for the CLI's end-of-run log line.
type Snapshot struct {
	Requests     uint64
	Failures     uint64
	AvgRequestMs float64
}

func New() *Recorder {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_api_requests_total",
		Help: "Total number of enrollment API calls",
	}, []string{"method", "endpoint", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enrollment_api_request_duration_seconds",
		Help:    "Duration of enrollment API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	registry.MustRegister(requestTotal, requestDuration)

	return &Recorder{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// ObserveRequest takes the route template as endpoint. status 0 means no response.
func (r *Recorder) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requestTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())

	atomic.AddUint64(&r.requestCount, 1)
	atomic.AddUint64(&r.requestDurationTotal, uint64(elapsed.Nanoseconds()))
	if status == 0 || status >= 400 {
		atomic.AddUint64(&r.failureCount, 1)
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	requests := atomic.LoadUint64(&r.requestCount)
	total := atomic.LoadUint64(&r.requestDurationTotal)

	var avg float64
	if requests > 0 {
		avg = float64(total) / float64(requests) / float64(time.Millisecond)
	}
	return Snapshot{
		Requests:     requests,
		Failures:     atomic.LoadUint64(&r.failureCount),
		AvgRequestMs: avg,
	}
}
