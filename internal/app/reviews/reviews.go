// Package reviews keeps the in-memory app review board.
package reviews

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calma-app/calma/internal/domain"
)

// Review is one user review of the app.
type Review struct {
	ID       string    `json:"id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
	Likes    int       `json:"likes"`
	Liked    bool      `json:"liked"`
}

// Board is a concurrency-safe list of reviews, newest first.
type Board struct {
	mu      sync.RWMutex
	reviews []Review
	now     domain.Clock
}

// NewBoard returns a board seeded with the launch reviews.
func NewBoard(now domain.Clock) *Board {
	if now == nil {
		now = time.Now
	}
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return &Board{
		now: now,
		reviews: []Review{
			{ID: "1", UserName: "Maria Silva", Rating: 5, Comment: "Amazing app! It helped me a lot with my anxiety. The assistant is really empathetic and the exercises are great!", Date: day(15), Likes: 24},
			{ID: "2", UserName: "João Santos", Rating: 5, Comment: "Best mental health app I've used. The points system motivates me to come back every day!", Date: day(14), Likes: 18},
			{ID: "3", UserName: "Ana Costa", Rating: 4, Comment: "Very good! The guided meditations are wonderful. I only wish there were more free exercises.", Date: day(13), Likes: 12},
			{ID: "4", UserName: "Pedro Lima", Rating: 5, Comment: "It changed my routine! I can track my mood and understand my emotions better. Highly recommended!", Date: day(12), Likes: 31},
		},
	}
}

// List returns a copy of all reviews, newest first.
func (b *Board) List() []Review {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Review, len(b.reviews))
	copy(out, b.reviews)
	return out
}

// Submit adds a review from the current user.
func (b *Board) Submit(comment string, rating int) (Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return Review{}, domain.ErrEmptyComment
	}
	if rating < 1 || rating > 5 {
		return Review{}, fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}

	r := Review{
		ID:       uuid.New().String(),
		UserName: "You",
		Rating:   rating,
		Comment:  comment,
		Date:     b.now(),
	}

	b.mu.Lock()
	b.reviews = append([]Review{r}, b.reviews...)
	b.mu.Unlock()
	return r, nil
}

// ToggleLike flips the like state of review id and returns the updated review.
func (b *Board) ToggleLike(id string) (Review, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.reviews {
		r := &b.reviews[i]
		if r.ID != id {
			continue
		}
		if r.Liked {
			r.Likes--
		} else {
			r.Likes++
		}
		r.Liked = !r.Liked
		return *r, true
	}
	return Review{}, false
}

// Average returns the mean rating, or 0 for an empty board.
func (b *Board) Average() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range b.reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(b.reviews))
}
