// Package metrics counts model calls, generate-judge rounds and case output
// for one run, and writes them in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CodexForgeBR/casegen/internal/llm"
)

const namespace = "casegen"

// Chunk outcomes.
const (
	OutcomeAccepted   = "accepted"
	OutcomeExhausted  = "exhausted"
	OutcomeSingleShot = "single_shot"
	OutcomeSkipped    = "skipped"
)

// Recorder owns a private registry so several runs in one process (and
// parallel tests) never collide.
type Recorder struct {
	registry *prometheus.Registry

	llmCalls    *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	rounds      prometheus.Counter
	verdicts    *prometheus.CounterVec
	chunks      *prometheus.CounterVec
	cases       prometheus.Counter
}

// NewRecorder creates a Recorder with every metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Model calls by module and status, counted after retries",
			},
			[]string{"module", "status"},
		),
		llmDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "Model call latency including retries",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"module"},
		),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "rounds_total",
			Help:      "Generate-judge rounds run",
		}),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "verdicts_total",
				Help:      "Judge verdicts by result",
			},
			[]string{"verdict"},
		),
		chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chunks_total",
				Help:      "Document chunks by outcome",
			},
			[]string{"outcome"},
		),
		cases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cases_generated_total",
			Help:      "Normalized test cases produced",
		}),
	}
	r.registry.MustRegister(r.llmCalls, r.llmDuration, r.rounds, r.verdicts, r.chunks, r.cases)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRound records one generate-judge round.
func (r *Recorder) ObserveRound(_ int, passed bool) {
	r.rounds.Inc()
	verdict := "fail"
	if passed {
		verdict = "pass"
	}
	r.verdicts.WithLabelValues(verdict).Inc()
}

// ChunkOutcome records how a chunk finished.
func (r *Recorder) ChunkOutcome(outcome string) {
	r.chunks.WithLabelValues(outcome).Inc()
}

// CasesGenerated adds n normalized cases.
func (r *Recorder) CasesGenerated(n int) {
	r.cases.Add(float64(n))
}

// Instrument wraps c so each call is counted and timed under module.
func (r *Recorder) Instrument(module string, c llm.Completer) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
		start := time.Now()
		out, err := c.Complete(ctx, system, user)
		r.llmDuration.WithLabelValues(module).Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		r.llmCalls.WithLabelValues(module, status).Inc()
		return out, err
	})
}

// WriteTextfile writes every metric to path in the text exposition format,
// creating parent directories as needed.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
