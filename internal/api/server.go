// Package api provides the HTTP server for Calma.
// It exposes the catalog, per-client wellness sessions, reviews and the
// payment routing settings as a JSON API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calma-app/calma/internal/app/chat"
	"github.com/calma-app/calma/internal/app/checkout"
	"github.com/calma-app/calma/internal/app/reviews"
	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/observability"
	"github.com/calma-app/calma/internal/infra/sqlite"
)

// Version is reported by /api/version.
var Version = "0.1.0"

// Store is the persistence the API needs.
type Store interface {
	domain.PaymentConfigStore
	RecordPayment(ctx context.Context, p sqlite.Payment) (int64, error)
	Payments(ctx context.Context, limit int) ([]sqlite.Payment, error)
	Revenue(ctx context.Context) (gross, net float64, err error)
}

// Server is the Calma HTTP API server.
type Server struct {
	sessions       *SessionStore
	store          Store // nil when persistence is disabled
	reviews        *reviews.Board
	assistant      *chat.Assistant
	processor      *checkout.Processor
	tracer         *observability.Tracer
	metricsEnabled bool
	timeout        time.Duration
}

// NewServer creates a new API server.
func NewServer(sessions *SessionStore, assistant *chat.Assistant, processor *checkout.Processor) *Server {
	return &Server{
		sessions:  sessions,
		reviews:   reviews.NewBoard(nil),
		assistant: assistant,
		processor: processor,
		tracer:    observability.NewTracer(observability.DefaultTracerConfig()),
		timeout:   30 * time.Second,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetStore sets the persistence backend.
func (s *Server) SetStore(st Store) { s.store = st }

// SetTracer replaces the request tracer.
func (s *Server) SetTracer(t *observability.Tracer) { s.tracer = t }

// SetTimeout sets the per-request timeout.
func (s *Server) SetTimeout(d time.Duration) { s.timeout = d }

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(corsMiddleware)
	r.Use(s.traceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Static content
		r.Get("/catalog/exercises", s.handleExercises)
		r.Get("/catalog/activities", s.handleActivities)
		r.Get("/recommendations", s.handleRecommend)
		r.Get("/onboarding/quiz", s.handleQuiz)
		r.Get("/debug/spans", s.handleSpans)

		// Reviews
		r.Get("/reviews", s.handleListReviews)
		r.Post("/reviews", s.handleSubmitReview)
		r.Post("/reviews/{reviewID}/like", s.handleLikeReview)

		// Settings
		r.Get("/settings/payment", s.handleGetPaymentConfig)
		r.Put("/settings/payment", s.handlePutPaymentConfig)
		r.Get("/settings/payments", s.handleListPayments)

		// Sessions
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(s.sessionCtx)
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/mood", s.handleSelectMood)
			r.Get("/moods", s.handleMoods)
			r.Get("/moods/chart", s.handleMoodChart)
			r.Get("/moods/export", s.handleMoodExport)
			r.Get("/recommendations", s.handleSessionRecommendations)
			r.Post("/exercises/{exerciseID}/start", s.handleStartExercise)

			r.Post("/subscribe", s.handleSubscribe)
			r.Post("/activities/games/finish", s.handleFinishGame)
			r.Post("/activities/ebook/next", s.handleNextChapter)
			r.Post("/activities/ebook/previous", s.handlePreviousChapter)
			r.Post("/activities/{activityID}/complete", s.handleCompleteActivity)

			r.Get("/chat", s.handleChatHistory)
			r.Post("/chat", s.handleChat)
			r.Get("/notifications", s.handleNotifications)

			r.Post("/onboarding/answer", s.handleQuizAnswer)
			r.Post("/onboarding/signup", s.handleSignup)
			r.Post("/onboarding/skip", s.handleSkipOnboarding)
			r.Post("/view", s.handleView)
			r.Post("/overlays/{name}/{action}", s.handleOverlay)
		})
	})

	return r
}

// ─── Middleware ─────────────────────────────────────────────────────────────

type ctxKey int

const sessionKey ctxKey = iota

// sessionCtx resolves {sessionID} and stores the session in the context.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e, err := s.sessions.get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, e)))
	})
}

func sessionFrom(r *http.Request) *sessionEntry {
	return r.Context().Value(sessionKey).(*sessionEntry)
}

// unmatchedRoute is the route label of requests that match no route.
const unmatchedRoute = "unmatched"

// traceMiddleware records a span per request.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.tracer.Record(observability.Span{
			RequestID: middleware.GetReqID(r.Context()),
			Method:    r.Method,
			Route:     route,
			Status:    status,
			StartTime: start,
			Duration:  time.Since(start),
		})
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── Responses ──────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeErrorType(w, status, msg, "error")
}

func writeErrorType(w http.ResponseWriter, status int, msg, typ string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    typ,
		},
	})
}

// writeDomainError maps a domain error onto its HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	status, typ := classify(err)
	writeErrorType(w, status, err.Error(), typ)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrExerciseLocked), errors.Is(err, domain.ErrActivityLocked):
		return http.StatusLocked, "locked"
	case errors.Is(err, domain.ErrExerciseNotFound), errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidPixKey):
		return http.StatusUnprocessableEntity, "invalid_pix_key"
	case errors.Is(err, domain.ErrInvalidView), errors.Is(err, domain.ErrQuizFinished):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errTooManySessions):
		return http.StatusServiceUnavailable, "capacity"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, domain.ErrInvalidMood), errors.Is(err, domain.ErrNegativePoints),
		errors.Is(err, domain.ErrNoPlanSelected), errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, domain.ErrInvalidMethod), errors.Is(err, domain.ErrIncompleteSignup),
		errors.Is(err, domain.ErrEmptyComment), errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrInvalidAnswer):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorType(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "invalid_request")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return v
	}
	return def
}

func (s *Server) handleSpans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spans": s.tracer.Spans(queryInt(r, "limit", 100)),
		"total": s.tracer.SpanCount(),
	})
}
