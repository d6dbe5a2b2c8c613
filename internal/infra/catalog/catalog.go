// Package catalog holds the static, read-only exercise and activity catalogs.
// Declaration order is significant: it is the implicit priority used by
// recommendations.
package catalog

import (
	"github.com/calma-app/calma/internal/domain"
)

// Exercises is the guided exercise catalog.
var Exercises = []domain.Exercise{
	{
		ID:          "1",
		Title:       "4-7-8 Breathing",
		Description: "Breathing technique to calm the mind and reduce anxiety",
		DurationMin: 5,
		Category:    domain.CategoryBreathing,
		TargetMoods: []domain.Mood{domain.MoodBad, domain.MoodTerrible, domain.MoodNeutral},
	},
	{
		ID:          "2",
		Title:       "Guided Meditation: Gratitude",
		Description: "Connect with feelings of gratitude and abundance",
		DurationMin: 10,
		Category:    domain.CategoryMeditation,
		TargetMoods: []domain.Mood{domain.MoodNeutral, domain.MoodGood, domain.MoodExcellent},
	},
	{
		ID:          "3",
		Title:       "Mindful Stretching",
		Description: "Gentle movements to release tension from the body",
		DurationMin: 8,
		Category:    domain.CategoryMovement,
		TargetMoods: []domain.Mood{domain.MoodBad, domain.MoodNeutral},
	},
	{
		ID:          "4",
		Title:       "Emotion Journal",
		Description: "Write about your feelings and gain mental clarity",
		DurationMin: 15,
		Category:    domain.CategoryWriting,
		TargetMoods: []domain.Mood{domain.MoodBad, domain.MoodTerrible, domain.MoodNeutral},
		Premium:     true,
	},
	{
		ID:          "5",
		Title:       "Sleep Meditation",
		Description: "Deep relaxation for a peaceful night",
		DurationMin: 20,
		Category:    domain.CategoryAudio,
		TargetMoods: []domain.Mood{domain.MoodBad, domain.MoodNeutral, domain.MoodGood},
		Premium:     true,
	},
	{
		ID:          "6",
		Title:       "Positive Visualization",
		Description: "Create mental images of peace and well-being",
		DurationMin: 12,
		Category:    domain.CategoryMeditation,
		TargetMoods: []domain.Mood{domain.MoodNeutral, domain.MoodGood, domain.MoodExcellent},
		Premium:     true,
	},
	{
		ID:          "7",
		Title:       "Mindful Walk",
		Description: "Full attention during a relaxing walk",
		DurationMin: 15,
		Category:    domain.CategoryMovement,
		TargetMoods: []domain.Mood{domain.MoodNeutral, domain.MoodGood},
		Premium:     true,
	},
	{
		ID:          "8",
		Title:       "Body Scan",
		Description: "Identify and release tension throughout the body",
		DurationMin: 10,
		Category:    domain.CategoryMeditation,
		TargetMoods: []domain.Mood{domain.MoodBad, domain.MoodTerrible, domain.MoodNeutral},
	},
}

// Lookup returns the exercise with the given ID, or nil.
func Lookup(id string) *domain.Exercise {
	for i := range Exercises {
		if Exercises[i].ID == id {
			return &Exercises[i]
		}
	}
	return nil
}

// Activity IDs of the premium activity catalog.
const (
	ActivityEbook      = "ebook"
	ActivityGames      = "games"
	ActivityMeditation = "meditation"
	ActivityBreathing  = "breathing"
	ActivityYoga       = "yoga"
	ActivityMusic      = "music"
	ActivityJournal    = "journal"
	ActivitySleep      = "sleep"
	ActivityEnergy     = "energy"
	ActivityCreativity = "creativity"
	ActivityChallenge  = "challenge"
	ActivityCourse     = "course"
)

// Activities is the premium activity catalog.
var Activities = []domain.Activity{
	{ID: ActivityEbook, Title: "E-book: Healing Anxiety", Description: "Complete guide with practical techniques and exercises", Duration: "15-30 min", Points: 60, Featured: true},
	{ID: ActivityGames, Title: "Brain Games", Description: "Interactive challenges to train the brain", Duration: "5-15 min", Points: 40, HasAudio: true, Featured: true},
	{ID: ActivityMeditation, Title: "Guided Meditation", Description: "Sessions with professional audio and visualizations", Duration: "5-20 min", Points: 30, HasAudio: true},
	{ID: ActivityBreathing, Title: "Breathing Exercises", Description: "Guided techniques with animations and relaxing sounds", Duration: "3-10 min", Points: 20, HasAudio: true},
	{ID: ActivityYoga, Title: "Yoga for Anxiety", Description: "Guided postures with images and instructional audio", Duration: "10-20 min", Points: 35, HasAudio: true},
	{ID: ActivityMusic, Title: "Music Therapy", Description: "Relaxing sounds with visual landscapes", Duration: "10-30 min", Points: 25, HasAudio: true},
	{ID: ActivityJournal, Title: "Gratitude Journal", Description: "Record positive moments of your day", Duration: "5 min", Points: 25},
	{ID: ActivitySleep, Title: "Sleep Meditation", Description: "Relaxing stories and sounds to improve sleep", Duration: "15-30 min", Points: 30, HasAudio: true},
	{ID: ActivityEnergy, Title: "Energy Boost", Description: "Quick exercises with energizing music", Duration: "5-10 min", Points: 20, HasAudio: true},
	{ID: ActivityCreativity, Title: "Art Therapy", Description: "Creative exercises for emotional expression", Duration: "10-20 min", Points: 35, HasAudio: true},
	{ID: ActivityChallenge, Title: "Daily Challenges", Description: "Personalized goals for your growth", Duration: "Variable", Points: 50},
	{ID: ActivityCourse, Title: "Premium Courses", Description: "Advanced well-being techniques explained step by step", Duration: "10-30 min", Points: 100, HasAudio: true},
}

// LookupActivity returns the premium activity with the given ID, or nil.
func LookupActivity(id string) *domain.Activity {
	for i := range Activities {
		if Activities[i].ID == id {
			return &Activities[i]
		}
	}
	return nil
}
