// Package observability provides Prometheus metrics for engagement events
// and a lightweight in-memory request tracer.
//
// This provides:
//   - Engagement counters (moods, points, exercises, activities, subscriptions)
//   - HTTP request latency histograms
//   - A ring buffer of recent request spans for the debug endpoint
package observability

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/calma-app/calma/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Request Spans
// ═══════════════════════════════════════════════════════════════════════════

// Span is one traced HTTP request.
type Span struct {
	ID        int64         `json:"id"`
	RequestID string        `json:"request_id,omitempty"`
	Method    string        `json:"method"`
	Route     string        `json:"route"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// Tracer keeps the most recent spans in a ring buffer.
type Tracer struct {
	mu       sync.Mutex
	spans    []Span
	maxSpans int
	enabled  bool
	nextID   atomic.Int64
}

// TracerConfig configures the tracer.
type TracerConfig struct {
	Enabled  bool
	MaxSpans int // ring buffer size (default 1_000)
}

// DefaultTracerConfig returns production defaults.
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		Enabled:  true,
		MaxSpans: 1_000,
	}
}

// NewTracer creates a new tracer.
func NewTracer(cfg TracerConfig) *Tracer {
	if cfg.MaxSpans <= 0 {
		cfg.MaxSpans = DefaultTracerConfig().MaxSpans
	}
	return &Tracer{
		spans:    make([]Span, 0, cfg.MaxSpans),
		maxSpans: cfg.MaxSpans,
		enabled:  cfg.Enabled,
	}
}

// Record stores a finished request and observes its latency.
func (t *Tracer) Record(span Span) {
	HTTPRequestDuration.WithLabelValues(span.Route, strconv.Itoa(span.Status)).Observe(span.Duration.Seconds())
	if !t.enabled {
		return
	}
	span.ID = t.nextID.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Ring buffer: overwrite oldest if at capacity
	if len(t.spans) >= t.maxSpans {
		t.spans = t.spans[1:]
	}
	t.spans = append(t.spans, span)
}

// Spans returns a copy of the most recent spans, oldest first.
func (t *Tracer) Spans(limit int) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()

	if limit <= 0 || limit > len(t.spans) {
		limit = len(t.spans)
	}
	start := len(t.spans) - limit
	out := make([]Span, limit)
	copy(out, t.spans[start:])
	return out
}

// SpanCount returns the number of recorded spans.
func (t *Tracer) SpanCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

// ═══════════════════════════════════════════════════════════════════════════
// Prometheus Metrics
// ═══════════════════════════════════════════════════════════════════════════

// ─── Engagement Metrics ─────────────────────────────────────────────────────

// MoodsRecorded counts mood check-ins by mood.
var MoodsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "mood",
	Name:      "recorded_total",
	Help:      "Total moods recorded, by mood.",
}, []string{"mood"})

// PointsAwarded counts progression points by source.
var PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "progress",
	Name:      "points_awarded_total",
	Help:      "Total points awarded, by source (mood, exercise, activity).",
}, []string{"source"})

// ExercisesStarted counts exercise starts, including locked attempts.
var ExercisesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "exercise",
	Name:      "started_total",
	Help:      "Total exercise start attempts, by exercise and whether it was locked.",
}, []string{"exercise", "locked"})

// ActivitiesCompleted counts premium activity completions.
var ActivitiesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "activity",
	Name:      "completed_total",
	Help:      "Total premium activity completions, by activity.",
}, []string{"activity"})

// ─── Conversion Metrics ─────────────────────────────────────────────────────

// SubscribePrompts counts subscribe prompts shown after engagement.
var SubscribePrompts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "paywall",
	Name:      "prompts_total",
	Help:      "Total subscribe prompts opened by the engagement trigger.",
})

// Subscriptions counts premium grants by plan.
var Subscriptions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "paywall",
	Name:      "subscriptions_total",
	Help:      "Total premium subscriptions, by plan.",
}, []string{"plan"})

// ─── Service Metrics ────────────────────────────────────────────────────────

// ActiveSessions tracks live in-memory sessions.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "calma",
	Subsystem: "session",
	Name:      "active",
	Help:      "Number of live sessions.",
})

// ChatReplies counts assistant replies by matched rule.
var ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "chat",
	Name:      "replies_total",
	Help:      "Total assistant replies, by matched rule.",
}, []string{"rule"})

// RemindersSent counts check-in reminders queued.
var RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "calma",
	Subsystem: "reminder",
	Name:      "sent_total",
	Help:      "Total check-in reminders queued on sessions.",
})

// HTTPRequestDuration tracks API latency.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "calma",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency, by route and status.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
}, []string{"route", "status"})

// ─── Session Recorder ───────────────────────────────────────────────────────

// Recorder forwards session engagement events to the metrics above.
type Recorder struct{}

func (Recorder) MoodRecorded(mood domain.Mood) {
	MoodsRecorded.WithLabelValues(string(mood)).Inc()
}

func (Recorder) PointsAwarded(source string, points int) {
	PointsAwarded.WithLabelValues(source).Add(float64(points))
}

func (Recorder) ExerciseStarted(id string, locked bool) {
	ExercisesStarted.WithLabelValues(id, strconv.FormatBool(locked)).Inc()
}

func (Recorder) ActivityCompleted(id string) {
	ActivitiesCompleted.WithLabelValues(id).Inc()
}

func (Recorder) SubscribePrompted() {
	SubscribePrompts.Inc()
}

func (Recorder) Subscribed(plan domain.Plan) {
	Subscriptions.WithLabelValues(string(plan)).Inc()
}
