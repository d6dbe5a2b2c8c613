// Package wellness implements the mood, progression and entitlement engine
// and the per-user Session that orchestrates them.
package wellness

import "github.com/calma-app/calma/internal/domain"

// MaxRecommendations is the number of exercises suggested at once.
const MaxRecommendations = 3

// Recommend returns up to MaxRecommendations exercises targeting mood, in
// catalog order. Premium exercises are dropped unless premium is true.
// The result is never nil.
func Recommend(catalog []domain.Exercise, mood domain.Mood, premium bool) []domain.Exercise {
	out := make([]domain.Exercise, 0, MaxRecommendations)
	for _, ex := range catalog {
		if len(out) == MaxRecommendations {
			break
		}
		if !ex.Targets(mood) {
			continue
		}
		if ex.Premium && !premium {
			continue
		}
		out = append(out, ex)
	}
	return out
}
