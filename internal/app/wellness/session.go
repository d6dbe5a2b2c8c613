package wellness

import (
	"fmt"
	"iter"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calma-app/calma/internal/app/activities"
	"github.com/calma-app/calma/internal/app/onboarding"
	"github.com/calma-app/calma/internal/domain"
	"github.com/calma-app/calma/internal/infra/catalog"
)

// ─── Configuration ──────────────────────────────────────────────────────────

// SessionConfig tunes a Session.
type SessionConfig struct {
	SeedDemo        bool          // start with demo progress and synthetic mood history
	Onboarding      bool          // start in the onboarding view
	PromptThreshold int           // interaction count that triggers the subscribe prompt
	PromptDelay     time.Duration // delay before the prompt opens the paywall
	HistorySize     int           // mood entries kept
}

// DefaultSessionConfig returns the production defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		SeedDemo:        true,
		Onboarding:      true,
		PromptThreshold: 3,
		PromptDelay:     time.Second,
		HistorySize:     DefaultHistorySize,
	}
}

// Recorder receives engagement events, typically for metrics.
type Recorder interface {
	MoodRecorded(mood domain.Mood)
	PointsAwarded(source string, points int)
	ExerciseStarted(id string, locked bool)
	ActivityCompleted(id string)
	SubscribePrompted()
	Subscribed(plan domain.Plan)
}

type nopRecorder struct{}

func (nopRecorder) MoodRecorded(domain.Mood)     {}
func (nopRecorder) PointsAwarded(string, int)    {}
func (nopRecorder) ExerciseStarted(string, bool) {}
func (nopRecorder) ActivityCompleted(string)     {}
func (nopRecorder) SubscribePrompted()           {}
func (nopRecorder) Subscribed(domain.Plan)       {}

// Deps are the collaborators of a Session. Zero values get defaults.
type Deps struct {
	Catalog   []domain.Exercise
	Clock     domain.Clock
	Scheduler Scheduler
	Rand      *rand.Rand
	Recorder  Recorder
}

// ─── Session ────────────────────────────────────────────────────────────────

// MoodResult is the outcome of recording a mood.
type MoodResult struct {
	Entry           domain.MoodEntry    `json:"entry"`
	Progress        domain.UserProgress `json:"progress"`
	Recommendations []domain.Exercise   `json:"recommendations"`
}

// GameResult is the outcome of a finished brain-game round.
type GameResult struct {
	Points   int                 `json:"points"`
	Progress domain.UserProgress `json:"progress"`
}

// ChapterResult is the outcome of finishing an e-book chapter.
type ChapterResult struct {
	Completed activities.Chapter  `json:"completed"`
	Current   activities.Chapter  `json:"current"`
	Points    int                 `json:"points"`
	Finished  bool                `json:"finished"`
	Progress  domain.UserProgress `json:"progress"`
}

// SessionState is a point-in-time view of a session.
type SessionState struct {
	ID             string              `json:"id"`
	View           domain.View         `json:"view"`
	Overlays       domain.Overlays     `json:"overlays"`
	Premium        bool                `json:"premium"`
	Plan           domain.Plan         `json:"plan,omitempty"`
	CurrentMood    domain.Mood         `json:"current_mood,omitempty"`
	Progress       domain.UserProgress `json:"progress"`
	Interactions   int                 `json:"interactions"`
	CompletedToday []string            `json:"completed_today"`
	Profile        *onboarding.Profile `json:"profile,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Session is one user's in-memory application state. All methods are safe
// for concurrent use; deferred callbacks take the same lock as handlers.
type Session struct {
	mu sync.Mutex

	id        string
	cfg       SessionConfig
	catalog   []domain.Exercise
	now       domain.Clock
	sched     Scheduler
	rng       *rand.Rand
	recorder  Recorder
	createdAt time.Time

	moods    *MoodLedger
	progress *ProgressionLedger
	gate     EntitlementGate
	tracker  *activities.Tracker
	reader   *activities.EbookReader

	currentMood  domain.Mood
	view         domain.View
	overlays     domain.Overlays
	profile      *onboarding.Profile
	interactions int

	promptScheduled bool
	cancelPrompt    CancelFunc

	notifications []domain.Notification
}

// NewSession creates a session.
func NewSession(cfg SessionConfig, deps Deps) *Session {
	if cfg.PromptThreshold <= 0 {
		cfg.PromptThreshold = 3
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Exercises
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}

	s := &Session{
		id:        uuid.New().String(),
		cfg:       cfg,
		catalog:   deps.Catalog,
		now:       deps.Clock,
		sched:     deps.Scheduler,
		rng:       deps.Rand,
		recorder:  deps.Recorder,
		createdAt: deps.Clock(),
		moods:     NewMoodLedger(cfg.HistorySize, deps.Clock),
		tracker:   activities.NewTracker(),
		reader:    activities.NewEbookReader(),
		view:      domain.ViewDashboard,
	}
	if cfg.Onboarding {
		s.view = domain.ViewOnboarding
	}

	initial := domain.UserProgress{}
	if cfg.SeedDemo {
		initial = domain.DemoProgress()
		s.moods.Seed(cfg.HistorySize, s.rng)
	}
	s.progress = NewProgressionLedger(initial)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ─── Mood & Exercises ───────────────────────────────────────────────────────

// SelectMood records mood, awards the check-in points and extends the streak.
func (s *Session) SelectMood(mood domain.Mood, note string) (MoodResult, error) {
	if !mood.Valid() {
		return MoodResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidMood, mood)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == domain.ViewOnboarding {
		return MoodResult{}, fmt.Errorf("%w: finish onboarding before recording moods", domain.ErrInvalidView)
	}

	entry := s.moods.Record(mood, note)
	if _, err := s.progress.Award(domain.PointsMoodRecorded); err != nil {
		return MoodResult{}, err
	}
	progress := s.progress.AdvanceStreak()
	s.currentMood = mood
	s.recorder.MoodRecorded(mood)
	s.recorder.PointsAwarded("mood", domain.PointsMoodRecorded)

	msg := fmt.Sprintf("Mood recorded! +%d points 🎯", domain.PointsMoodRecorded)
	if lines := mood.MotivationalMessages(); len(lines) > 0 {
		msg += " " + lines[s.rng.IntN(len(lines))]
	}
	s.notify(domain.NotifySuccess, msg)
	s.countInteraction()

	return MoodResult{
		Entry:           entry,
		Progress:        progress,
		Recommendations: Recommend(s.catalog, mood, s.gate.IsPremium()),
	}, nil
}

// StartExercise starts exercise id. Locked exercises open the paywall and
// change nothing else. Neither moods nor exercises are accepted during
// onboarding, so the interaction counter only runs on the dashboard.
func (s *Session) StartExercise(id string) (domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == domain.ViewOnboarding {
		return s.progress.Snapshot(), fmt.Errorf("%w: finish onboarding before starting exercises", domain.ErrInvalidView)
	}

	ex := s.lookup(id)
	if ex == nil {
		return s.progress.Snapshot(), fmt.Errorf("%w: %q", domain.ErrExerciseNotFound, id)
	}
	if s.gate.IsLocked(*ex) {
		s.overlays.Paywall = true
		s.recorder.ExerciseStarted(id, true)
		return s.progress.Snapshot(), fmt.Errorf("%w: %q", domain.ErrExerciseLocked, ex.Title)
	}

	progress, err := s.progress.Award(domain.PointsExerciseStarted)
	if err != nil {
		return progress, err
	}
	s.recorder.ExerciseStarted(id, false)
	s.recorder.PointsAwarded("exercise", domain.PointsExerciseStarted)
	s.notify(domain.NotifySuccess, fmt.Sprintf("Starting: %s 🧘‍♀️", ex.Title))
	s.countInteraction()
	return progress, nil
}

func (s *Session) lookup(id string) *domain.Exercise {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i]
		}
	}
	return nil
}

// IsLocked reports whether exercise id is gated for this session.
func (s *Session) IsLocked(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex := s.lookup(id)
	if ex == nil {
		return false, fmt.Errorf("%w: %q", domain.ErrExerciseNotFound, id)
	}
	return s.gate.IsLocked(*ex), nil
}

// Recommendations recomputes suggestions for the current mood. Without a
// recorded mood the result is empty.
func (s *Session) Recommendations() []domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentMood == "" {
		return []domain.Exercise{}
	}
	return Recommend(s.catalog, s.currentMood, s.gate.IsPremium())
}

// CurrentMood returns the last selected mood, or "" when none.
func (s *Session) CurrentMood() domain.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentMood
}

// History iterates a snapshot of the mood ledger, oldest first.
func (s *Session) History() iter.Seq[domain.MoodEntry] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moods.All()
}

// Chart returns the mood history as chart points.
func (s *Session) Chart() []domain.ChartPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moods.ChartPoints()
}

// Progress returns the current progression snapshot.
func (s *Session) Progress() domain.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Snapshot()
}

// ─── Subscribe Prompt ───────────────────────────────────────────────────────

// countInteraction must be called with mu held.
func (s *Session) countInteraction() {
	s.interactions++
	if s.interactions != s.cfg.PromptThreshold || s.promptScheduled {
		return
	}
	if s.gate.IsPremium() || s.view == domain.ViewOnboarding {
		return
	}
	s.promptScheduled = true
	s.cancelPrompt = s.sched.AfterFunc(s.cfg.PromptDelay, s.firePrompt)
}

func (s *Session) firePrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPrompt = nil
	if s.gate.IsPremium() {
		return
	}
	s.overlays.Paywall = true
	s.notify(domain.NotifyInfo, "You're loving it! How about unlocking everything? 🎉")
	s.recorder.SubscribePrompted()
}

// ─── Entitlement ────────────────────────────────────────────────────────────

// Subscribe grants premium access and moves to the premium activities view.
// It reports whether this was the first grant.
func (s *Session) Subscribe(plan domain.Plan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelPrompt != nil {
		s.cancelPrompt()
		s.cancelPrompt = nil
	}
	first := s.gate.Grant(plan)
	s.overlays.Paywall = false
	s.view = domain.ViewPremiumActivities
	if first {
		s.recorder.Subscribed(plan)
		s.notify(domain.NotifySuccess, fmt.Sprintf("🎉 Welcome to Premium (%s)! Enjoy all the activities!", plan.Label()))
		log.Printf("[session] %s subscribed to %s plan", s.id, plan)
	}
	return first
}

// IsPremium reports whether the session has premium access.
func (s *Session) IsPremium() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.IsPremium()
}

// ─── Premium Activities ─────────────────────────────────────────────────────

// CompleteActivity awards the catalog points of activity id.
func (s *Session) CompleteActivity(id string) (domain.UserProgress, error) {
	a := catalog.LookupActivity(id)
	if a == nil {
		return domain.UserProgress{}, fmt.Errorf("%w: %q", domain.ErrActivityNotFound, id)
	}
	return s.AwardActivity(id, a.Points)
}

// AwardActivity awards points earned inside activity id. Zero points still
// marks the activity done but does not count an active day.
func (s *Session) AwardActivity(id string, points int) (domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awardActivity(id, points)
}

func (s *Session) awardActivity(id string, points int) (domain.UserProgress, error) {
	if catalog.LookupActivity(id) == nil {
		return s.progress.Snapshot(), fmt.Errorf("%w: %q", domain.ErrActivityNotFound, id)
	}
	if !s.gate.IsPremium() {
		s.overlays.Paywall = true
		return s.progress.Snapshot(), fmt.Errorf("%w: %q", domain.ErrActivityLocked, id)
	}
	progress, err := s.progress.Award(points)
	if err != nil {
		return progress, err
	}
	s.tracker.Complete(id, s.now())
	s.recorder.ActivityCompleted(id)
	if points == 0 {
		return progress, nil
	}
	s.recorder.PointsAwarded("activity", points)
	s.notify(domain.NotifySuccess, fmt.Sprintf("🎉 +%d points! Keep it up!", points))
	return s.progress.AdvanceDay(), nil
}

// FinishGame settles a brain-game round.
func (s *Session) FinishGame(score int, success bool) (GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := activities.GameReward(score, success)
	progress, err := s.awardActivity(catalog.ActivityGames, points)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{Points: points, Progress: progress}, nil
}

// NextChapter completes the current e-book chapter and turns the page.
func (s *Session) NextChapter() (ChapterResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.IsPremium() {
		s.overlays.Paywall = true
		return ChapterResult{}, fmt.Errorf("%w: %q", domain.ErrActivityLocked, catalog.ActivityEbook)
	}
	done := s.reader.Current()
	points := s.reader.Next()
	progress, err := s.awardActivity(catalog.ActivityEbook, points)
	if err != nil {
		return ChapterResult{}, err
	}
	return ChapterResult{
		Completed: done,
		Current:   s.reader.Current(),
		Points:    points,
		Finished:  s.reader.Finished(),
		Progress:  progress,
	}, nil
}

// PreviousChapter turns the e-book back one page.
func (s *Session) PreviousChapter() activities.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reader.Previous()
	return s.reader.Current()
}

// ─── Views & Overlays ───────────────────────────────────────────────────────

// CompleteOnboarding stores the signup profile and leaves onboarding with
// the paywall open.
func (s *Session) CompleteOnboarding(p onboarding.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != domain.ViewOnboarding {
		return fmt.Errorf("%w: onboarding already finished", domain.ErrInvalidView)
	}
	s.profile = &p
	s.view = domain.ViewDashboard
	s.overlays.Paywall = true
	s.notify(domain.NotifySuccess, fmt.Sprintf("Welcome, %s! 🎉", p.Name))
	return nil
}

// SkipOnboarding leaves onboarding straight to the paywall.
func (s *Session) SkipOnboarding() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != domain.ViewOnboarding {
		return fmt.Errorf("%w: onboarding already finished", domain.ErrInvalidView)
	}
	s.view = domain.ViewDashboard
	s.overlays.Paywall = true
	return nil
}

// ShowActivities switches to the premium activities view.
func (s *Session) ShowActivities() error { return s.setView(domain.ViewPremiumActivities) }

// ShowDashboard switches to the dashboard view.
func (s *Session) ShowDashboard() error { return s.setView(domain.ViewDashboard) }

func (s *Session) setView(v domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == domain.ViewOnboarding {
		return fmt.Errorf("%w: finish onboarding first", domain.ErrInvalidView)
	}
	s.view = v
	return nil
}

// Overlay names accepted by SetOverlay.
const (
	OverlayPaywall  = "paywall"
	OverlayChat     = "chat"
	OverlaySettings = "settings"
)

// SetOverlay opens or closes the named overlay.
func (s *Session) SetOverlay(name string, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case OverlayPaywall:
		s.overlays.Paywall = open
	case OverlayChat:
		s.overlays.Chat = open
	case OverlaySettings:
		s.overlays.Settings = open
	default:
		return fmt.Errorf("%w: unknown overlay %q", domain.ErrInvalidView, name)
	}
	return nil
}

func (s *Session) OpenChat() error      { return s.SetOverlay(OverlayChat, true) }
func (s *Session) CloseChat() error     { return s.SetOverlay(OverlayChat, false) }
func (s *Session) OpenSettings() error  { return s.SetOverlay(OverlaySettings, true) }
func (s *Session) CloseSettings() error { return s.SetOverlay(OverlaySettings, false) }
func (s *Session) OpenPaywall() error   { return s.SetOverlay(OverlayPaywall, true) }
func (s *Session) ClosePaywall() error  { return s.SetOverlay(OverlayPaywall, false) }

// ─── Notifications & State ──────────────────────────────────────────────────

// Notify queues a notification from outside the session, e.g. a reminder.
func (s *Session) Notify(kind domain.NotificationKind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(kind, msg)
}

func (s *Session) notify(kind domain.NotificationKind, msg string) {
	s.notifications = append(s.notifications, domain.Notification{
		Kind:      kind,
		Message:   msg,
		CreatedAt: s.now(),
	})
}

// Notifications drains and returns the queued notifications.
func (s *Session) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notifications
	s.notifications = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// CheckedInToday reports whether a mood was recorded on the day of now.
func (s *Session) CheckedInToday() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.moods.Latest()
	if !ok {
		return false
	}
	y1, m1, d1 := last.Timestamp.Date()
	y2, m2, d2 := s.now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// State returns a snapshot for presentation.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionState{
		ID:             s.id,
		View:           s.view,
		Overlays:       s.overlays,
		Premium:        s.gate.IsPremium(),
		Plan:           s.gate.Plan(),
		CurrentMood:    s.currentMood,
		Progress:       s.progress.Snapshot(),
		Interactions:   s.interactions,
		CompletedToday: s.tracker.CompletedToday(s.now()),
		CreatedAt:      s.createdAt,
	}
	if s.profile != nil {
		p := *s.profile
		st.Profile = &p
	}
	return st
}

// Close cancels any pending deferred work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPrompt != nil {
		s.cancelPrompt()
		s.cancelPrompt = nil
	}
}
