package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/calma-app/calma/internal/domain"
)

// ─── Tracer ─────────────────────────────────────────────────────────────────

func TestTracer_RecordsSpan(t *testing.T) {
	tr := NewTracer(DefaultTracerConfig())
	tr.Record(Span{Method: "POST", Route: "/api/sessions", Status: 201, StartTime: time.Now(), Duration: time.Millisecond})

	if tr.SpanCount() != 1 {
		t.Fatalf("SpanCount() = %d, want 1", tr.SpanCount())
	}
	spans := tr.Spans(1)
	if spans[0].Route != "/api/sessions" || spans[0].ID != 1 {
		t.Errorf("span = %+v", spans[0])
	}
}

func TestTracer_RingBuffer(t *testing.T) {
	tr := NewTracer(TracerConfig{Enabled: true, MaxSpans: 3})
	for i := 0; i < 5; i++ {
		tr.Record(Span{Route: "/health", Status: 200})
	}
	if tr.SpanCount() != 3 {
		t.Fatalf("SpanCount() = %d, want 3", tr.SpanCount())
	}
	spans := tr.Spans(0)
	if spans[0].ID != 3 || spans[2].ID != 5 {
		t.Errorf("kept spans %d..%d, want 3..5", spans[0].ID, spans[2].ID)
	}
}

func TestTracer_Disabled(t *testing.T) {
	tr := NewTracer(TracerConfig{Enabled: false})
	tr.Record(Span{Route: "/health", Status: 200})
	if tr.SpanCount() != 0 {
		t.Errorf("disabled tracer recorded %d spans", tr.SpanCount())
	}
}

// ─── Recorder ───────────────────────────────────────────────────────────────

func TestRecorder_Counters(t *testing.T) {
	var r Recorder

	moods := testutil.ToFloat64(MoodsRecorded.WithLabelValues("good"))
	r.MoodRecorded(domain.MoodGood)
	if got := testutil.ToFloat64(MoodsRecorded.WithLabelValues("good")); got != moods+1 {
		t.Errorf("MoodsRecorded[good] = %v, want %v", got, moods+1)
	}

	points := testutil.ToFloat64(PointsAwarded.WithLabelValues("exercise"))
	r.PointsAwarded("exercise", 20)
	if got := testutil.ToFloat64(PointsAwarded.WithLabelValues("exercise")); got != points+20 {
		t.Errorf("PointsAwarded[exercise] = %v, want %v", got, points+20)
	}

	locked := testutil.ToFloat64(ExercisesStarted.WithLabelValues("4", "true"))
	r.ExerciseStarted("4", true)
	if got := testutil.ToFloat64(ExercisesStarted.WithLabelValues("4", "true")); got != locked+1 {
		t.Errorf("ExercisesStarted[4,true] = %v, want %v", got, locked+1)
	}

	subs := testutil.ToFloat64(Subscriptions.WithLabelValues("annual"))
	r.Subscribed(domain.PlanAnnual)
	if got := testutil.ToFloat64(Subscriptions.WithLabelValues("annual")); got != subs+1 {
		t.Errorf("Subscriptions[annual] = %v, want %v", got, subs+1)
	}

	prompts := testutil.ToFloat64(SubscribePrompts)
	r.SubscribePrompted()
	if got := testutil.ToFloat64(SubscribePrompts); got != prompts+1 {
		t.Errorf("SubscribePrompts = %v, want %v", got, prompts+1)
	}
}
