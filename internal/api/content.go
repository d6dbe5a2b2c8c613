package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calma-app/calma/internal/app/checkout"
	"github.com/calma-app/calma/internal/app/onboarding"
	"github.com/calma-app/calma/internal/app/wellness"
	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/catalog"
)

// ─── Catalog ────────────────────────────────────────────────────────────────
//
// GET /api/catalog/exercises        : the exercise catalog
// GET /api/catalog/activities       : the premium activity catalog
// GET /api/recommendations?mood=&premium=: stateless recommendations
// GET /api/onboarding/quiz          : onboarding questionnaire

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exercises": catalog.Exercises,
	})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": catalog.Activities,
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	mood, err := domain.ParseMood(r.URL.Query().Get("mood"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	premium, _ := strconv.ParseBool(r.URL.Query().Get("premium"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mood":            mood,
		"premium":         premium,
		"recommendations": wellness.Recommend(catalog.Exercises, mood, premium),
	})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": onboarding.Questions,
		"max_score": onboarding.MaxScore(),
	})
}

// ─── Reviews ────────────────────────────────────────────────────────────────

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	list := s.reviews.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": list,
		"count":   len(list),
		"average": s.reviews.Average(),
	})
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comment string `json:"comment"`
		Rating  int    `json:"rating"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := s.reviews.Submit(req.Comment, req.Rating)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleLikeReview(w http.ResponseWriter, r *http.Request) {
	review, ok := s.reviews.ToggleLike(chi.URLParam(r, "reviewID"))
	if !ok {
		writeErrorType(w, http.StatusNotFound, "review not found", "not_found")
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// ─── Payment Settings ───────────────────────────────────────────────────────
//
// GET /api/settings/payment : stored payment routing config
// PUT /api/settings/payment : validate and replace it
// GET /api/settings/payments: recorded payments and revenue

func (s *Server) handleGetPaymentConfig(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not initialized")
		return
	}
	cfg, err := s.store.PaymentConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"configured":       cfg != nil,
		"config":           cfg,
		"platform_fee_pct": checkout.DefaultPlatformFeePct,
	})
}

func (s *Server) handlePutPaymentConfig(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not initialized")
		return
	}
	var cfg domain.PaymentConfig
	if !decodeJSON(w, r, &cfg) {
		return
	}
	if err := s.store.SavePaymentConfig(r.Context(), cfg); err != nil {
		if errors.Is(err, domain.ErrInvalidPixKey) {
			writeDomainError(w, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"configured": true,
		"config":     cfg,
	})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not initialized")
		return
	}
	payments, err := s.store.Payments(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	gross, net, err := s.store.Revenue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payments":        payments,
		"gross":           gross,
		"net":             net,
		"gross_formatted": checkout.FormatBRL(gross),
		"net_formatted":   checkout.FormatBRL(net),
	})
}
