package domain

// ─── Exercise Types ─────────────────────────────────────────────────────────

// Category groups exercises by kind of practice.
type Category string

const (
	CategoryBreathing  Category = "breathing"
	CategoryMeditation Category = "meditation"
	CategoryMovement   Category = "movement"
	CategoryWriting    Category = "writing"
	CategoryAudio      Category = "audio"
)

// Exercise is a guided exercise from the static catalog.
type Exercise struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DurationMin int      `json:"duration_min"`
	Category    Category `json:"category"`
	TargetMoods []Mood   `json:"target_moods"`
	Premium     bool     `json:"premium"`
}

// Targets reports whether the exercise is recommended for mood m.
func (e Exercise) Targets(m Mood) bool {
	for _, t := range e.TargetMoods {
		if t == m {
			return true
		}
	}
	return false
}

// Activity is a premium mini-activity that pays out points on completion.
type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Points      int    `json:"points"`
	HasAudio    bool   `json:"has_audio"`
	Featured    bool   `json:"featured,omitempty"`
}
