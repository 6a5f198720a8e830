package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meeting_notes"

// Pipeline steps
const (
	StepFetch      = "fetch"
	StepTranscribe = "transcribe"
	StepSummarize  = "summarize"
	StepPersist    = "persist"
	StepArchive    = "archive"
	StepNotify     = "notify"
	StepStatus     = "status"
)

// Step outcomes
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeDegraded = "degraded"
	OutcomeSkipped  = "skipped"
)

// Recorder records pipeline metrics into its own registry
type Recorder struct {
	registry     *prometheus.Registry
	steps        *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	requests     *prometheus.CounterVec
	audioBytes   prometheus.Histogram
}

// New creates a Recorder with Go runtime and process collectors registered
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_steps_total",
			Help:      "Pipeline steps by step and outcome.",
		}, []string{"step", "outcome"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_step_duration_seconds",
			Help:      "Duration of pipeline steps.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"step"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_requests_total",
			Help:      "Process requests by result code.",
		}, []string{"code"}),
		audioBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "audio_bytes",
			Help:      "Size of fetched audio.",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 4, 8),
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.steps,
		r.stepDuration,
		r.requests,
		r.audioBytes,
	)
	return r
}

// ObserveStep records one finished pipeline step
func (r *Recorder) ObserveStep(step, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.steps.WithLabelValues(step, outcome).Inc()
	if outcome != OutcomeSkipped {
		r.stepDuration.WithLabelValues(step).Observe(elapsed.Seconds())
	}
}

// ObserveRequest records a finished process request by result code
func (r *Recorder) ObserveRequest(code string) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(code).Inc()
}

// ObserveAudio records the size of fetched audio
func (r *Recorder) ObserveAudio(size int) {
	if r == nil {
		return
	}
	r.audioBytes.Observe(float64(size))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
