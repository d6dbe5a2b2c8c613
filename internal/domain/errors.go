package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors carry no infrastructure dependency.
// Every user-facing failure is recoverable: callers report it and move on.

var (
	// Catalog errors
	ErrInvalidMood      = errors.New("unknown mood")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrActivityNotFound = errors.New("activity not found")

	// Entitlement errors
	ErrExerciseLocked = errors.New("exercise requires premium")
	ErrActivityLocked = errors.New("activity requires premium")

	// Progression errors
	ErrNegativePoints = errors.New("points award must not be negative")

	// Checkout errors
	ErrNoPlanSelected = errors.New("select a plan first")
	ErrInvalidPlan    = errors.New("unknown subscription plan")
	ErrInvalidMethod  = errors.New("unknown payment method")
	ErrInvalidPixKey  = errors.New("invalid PIX key")

	// Form validation errors
	ErrIncompleteSignup = errors.New("all signup fields are required")
	ErrEmptyComment     = errors.New("write a comment before submitting")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5 stars")
	ErrEmptyMessage     = errors.New("message is empty")

	// Flow errors
	ErrQuizFinished  = errors.New("quiz already finished")
	ErrInvalidAnswer = errors.New("answer option out of range")
	ErrInvalidView   = errors.New("unknown view")
)
