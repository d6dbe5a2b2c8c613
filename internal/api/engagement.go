package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/calma-app/calma/internal/app/onboarding"
	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/export"
	"github.com/calma-app/calma/internal/infra/observability"
	"github.com/calma-app/calma/internal/infra/sqlite"
)

// ─── Session Engagement API ─────────────────────────────────────────────────
// Per-client endpoints under /api/sessions/{sessionID}:
//
// GET  /                              : session state snapshot
// POST /mood                          : record a mood (+10 points, streak)
// GET  /moods, /moods/chart           : mood history
// GET  /moods/export                  : mood history as xlsx
// GET  /recommendations               : exercises for the current mood
// POST /exercises/{exerciseID}/start  : start an exercise (423 when locked)
// POST /subscribe                     : simulated checkout + premium grant
// POST /activities/{activityID}/complete, /activities/games/finish,
//      /activities/ebook/{next,previous}: premium activities
// GET|POST /chat                      : assistant transcript / message
// GET  /notifications                 : drain queued notifications
// POST /onboarding/{answer,signup,skip}, /view, /overlays/{name}/{action}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.create()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	log.Printf("[api] session %s created", e.ID())
	writeJSON(w, http.StatusCreated, e.State())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).State())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(sessionFrom(r).ID())
	w.WriteHeader(http.StatusNoContent)
}

// ─── Mood ───────────────────────────────────────────────────────────────────

func (s *Server) handleSelectMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
		Note string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := sessionFrom(r).SelectMood(mood, strings.TrimSpace(req.Note))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMoods(w http.ResponseWriter, r *http.Request) {
	entries := slices.Collect(sessionFrom(r).History())
	if entries == nil {
		entries = []domain.MoodEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleMoodChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points": sessionFrom(r).Chart(),
	})
}

func (s *Server) handleMoodExport(w http.ResponseWriter, r *http.Request) {
	e := sessionFrom(r)
	var buf bytes.Buffer
	if err := export.MoodHistory(&buf, e.History(), e.Progress()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="moods-%s.xlsx"`, e.ID()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ─── Exercises ──────────────────────────────────────────────────────────────

func (s *Server) handleSessionRecommendations(w http.ResponseWriter, r *http.Request) {
	e := sessionFrom(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mood":            e.CurrentMood(),
		"recommendations": e.Recommendations(),
	})
}

func (s *Server) handleStartExercise(w http.ResponseWriter, r *http.Request) {
	progress, err := sessionFrom(r).StartExercise(chi.URLParam(r, "exerciseID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": progress,
	})
}

// ─── Subscription ───────────────────────────────────────────────────────────

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan   domain.Plan          `json:"plan"`
		Method domain.PaymentMethod `json:"method"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	e := sessionFrom(r)

	receipt, err := s.processor.Pay(r.Context(), req.Plan, req.Method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	first := e.Subscribe(receipt.Plan)

	if s.store != nil && first {
		_, err := s.store.RecordPayment(r.Context(), sqlite.Payment{
			SessionID: e.ID(),
			Plan:      string(receipt.Plan),
			Method:    string(receipt.Method),
			Amount:    receipt.Amount,
			Fee:       receipt.Fee,
			Net:       receipt.Net,
			PaidAt:    receipt.PaidAt,
		})
		if err != nil {
			log.Printf("[api] record payment for %s: %v", e.ID(), err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"receipt":     receipt,
		"first_grant": first,
		"state":       e.State(),
	})
}

// ─── Premium Activities ─────────────────────────────────────────────────────

func (s *Server) handleCompleteActivity(w http.ResponseWriter, r *http.Request) {
	progress, err := sessionFrom(r).CompleteActivity(chi.URLParam(r, "activityID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress": progress,
	})
}

func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score   int  `json:"score"`
		Success bool `json:"success"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := sessionFrom(r).FinishGame(req.Score, req.Success)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNextChapter(w http.ResponseWriter, r *http.Request) {
	res, err := sessionFrom(r).NextChapter()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePreviousChapter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current": sessionFrom(r).PreviousChapter(),
	})
}

// ─── Chat ───────────────────────────────────────────────────────────────────

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": sessionFrom(r).chat.Messages(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeDomainError(w, domain.ErrEmptyMessage)
		return
	}
	e := sessionFrom(r)
	user := e.chat.AddUser(req.Message)

	reply, err := s.assistant.Reply(r.Context(), req.Message, e.CurrentMood())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	e.chat.Append(reply)
	observability.ChatReplies.WithLabelValues(reply.Rule).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": user,
		"reply":   reply,
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": sessionFrom(r).Notifications(),
	})
}

// ─── Onboarding & Views ─────────────────────────────────────────────────────

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option int `json:"option"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	e := sessionFrom(r)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.quiz.Answer(req.Option); err != nil {
		writeDomainError(w, err)
		return
	}
	resp := map[string]interface{}{
		"done":  e.quiz.Done(),
		"score": e.quiz.Score(),
	}
	if e.quiz.Done() {
		resp["verdict"] = onboarding.Verdict(e.quiz.Score())
	} else {
		resp["next"] = e.quiz.Current()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var p onboarding.Profile
	if !decodeJSON(w, r, &p) {
		return
	}
	e := sessionFrom(r)
	e.mu.Lock()
	p.QuizScore = e.quiz.Score()
	e.mu.Unlock()

	if err := e.CompleteOnboarding(p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e.State())
}

func (s *Server) handleSkipOnboarding(w http.ResponseWriter, r *http.Request) {
	e := sessionFrom(r)
	if err := e.SkipOnboarding(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e.State())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View domain.View `json:"view"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	e := sessionFrom(r)
	var err error
	switch req.View {
	case domain.ViewDashboard:
		err = e.ShowDashboard()
	case domain.ViewPremiumActivities:
		err = e.ShowActivities()
	default:
		err = fmt.Errorf("%w: cannot switch to %q", domain.ErrInvalidView, req.View)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e.State())
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	var open bool
	switch chi.URLParam(r, "action") {
	case "open":
		open = true
	case "close":
	default:
		writeErrorType(w, http.StatusNotFound, "unknown overlay action", "not_found")
		return
	}
	e := sessionFrom(r)
	if err := e.SetOverlay(chi.URLParam(r, "name"), open); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e.State())
}
