// Package chat implements the scripted wellness assistant. Replies come from
// a priority-ordered keyword rule table; nothing is learned or generated.
package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calma-app/calma/internal/domain"
)

// Input is what rules match against. Text is already lowercased.
type Input struct {
	Text string
	Mood domain.Mood
}

// Rule maps a matching input to one of its canned replies.
type Rule struct {
	Name    string
	Match   func(Input) bool
	Replies []string
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func keywords(words ...string) func(Input) bool {
	return func(in Input) bool { return containsAny(in.Text, words...) }
}

// DefaultRules is the production rule table. Earlier rules win; the last
// rule matches everything.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "mood_positive",
			Match: func(in Input) bool {
				return (in.Mood == domain.MoodGood || in.Mood == domain.MoodExcellent) &&
					containsAny(in.Text, "happy", "good", "great", "feliz", "bem")
			},
			Replies: []string{"So good to see you doing well! 🌟 To keep this positive state going, how about a gratitude meditation or an energizing breathing exercise?"},
		},
		{
			Name: "mood_negative",
			Match: func(in Input) bool {
				return (in.Mood == domain.MoodBad || in.Mood == domain.MoodTerrible) &&
					containsAny(in.Text, "sad", "bad", "down", "triste", "mal")
			},
			Replies: []string{"I understand you're going through a hard moment. 💙 Remember: feelings are temporary. Can I suggest some deep breathing or a guided meditation to calm the mind?"},
		},
		{
			Name:    "anxiety",
			Match:   keywords("anxious", "anxiety", "worried", "ansioso", "ansiedade", "preocupado"),
			Replies: []string{"Anxiety can be challenging, but you are not alone. 🌸 Let's try grounding: breathe deeply, name 5 things you see, 4 you can touch, 3 you can hear. It really helps!"},
		},
		{
			Name:    "exercises",
			Match:   keywords("exercise", "activity", "exercício", "atividade"),
			Replies: []string{"We have plenty of personalized exercises! 🧘‍♀️ Guided meditations, mindful breathing, journaling and more. I base my suggestions on your current mood. Want to try one now?"},
		},
		{
			Name:    "premium",
			Match:   keywords("premium", "plan", "plano", "subscription"),
			Replies: []string{"Premium unlocks ✨ exclusive exercises, advanced mood insights, longer meditations, priority support and much more! Worth it if you want complete care for your mental health."},
		},
		{
			Name:    "help",
			Match:   keywords("how does it work", "how it works", "help", "como funciona", "ajuda"),
			Replies: []string{"It's simple! 😊 Log your mood daily, complete personalized exercises, track your progress and earn points. The more you use it, the more tailored the suggestions get!"},
		},
		{
			Name:    "sleep",
			Match:   keywords("sleep", "insomnia", "dormir", "sono"),
			Replies: []string{"Good sleep is essential! 😴 Avoid screens an hour before bed, try a relaxing meditation, keep the room dark and cool. There are exercises made for better sleep in the app!"},
		},
		{
			Name:    "stress",
			Match:   keywords("stress", "estresse", "estressado"),
			Replies: []string{"Stress is common, but we can manage it together! 💪 What works: 4-7-8 breathing, short walks, regular breaks and mindfulness. Want me to guide you through a quick exercise?"},
		},
		{
			Name:    "thanks",
			Match:   keywords("thank", "obrigado", "obrigada"),
			Replies: []string{"You're welcome! 💜 I'm here whenever you need me. Caring for your mental health takes courage and you're on the right path!"},
		},
		{
			Name:  "fallback",
			Match: func(Input) bool { return true },
			Replies: []string{
				"I hear your concern. Tell me more about how you're feeling? 🌟",
				"I'm here to support you! How about we start with a breathing exercise? 🌸",
				"Your mental health matters. Let's work on it together, step by step. 💙",
				"I'm glad you're here! How can I help you specifically today? ✨",
				"Every day is a new chance to take care of yourself. What do you need right now? 🌺",
			},
		},
	}
}

// Greeting is the first message of every conversation.
const Greeting = "Hi! 👋 I'm your mental wellness assistant. How can I help you today?"

// ─── Assistant ──────────────────────────────────────────────────────────────

// Config controls the simulated typing delay.
type Config struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns a 1–2s typing delay.
func DefaultConfig() Config {
	return Config{MinDelay: time.Second, MaxDelay: 2 * time.Second}
}

// Assistant answers user messages from a rule table.
type Assistant struct {
	cfg   Config
	rules []Rule

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAssistant creates an assistant using rules, or DefaultRules when nil.
func NewAssistant(cfg Config, rules []Rule, rng *rand.Rand) *Assistant {
	if rules == nil {
		rules = DefaultRules()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return &Assistant{cfg: cfg, rules: rules, rng: rng}
}

// Respond picks the reply for text without waiting. It returns the name of
// the matching rule and the reply.
func (a *Assistant) Respond(text string, mood domain.Mood) (string, string) {
	in := Input{Text: strings.ToLower(text), Mood: mood}
	for _, r := range a.rules {
		if !r.Match(in) || len(r.Replies) == 0 {
			continue
		}
		return r.Name, r.Replies[a.intn(len(r.Replies))]
	}
	return "", ""
}

// Reply answers text after the typing delay. It returns early with the
// context error when ctx is cancelled.
func (a *Assistant) Reply(ctx context.Context, text string, mood domain.Mood) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, domain.ErrEmptyMessage
	}
	rule, reply := a.Respond(text, mood)

	timer := time.NewTimer(a.typingDelay())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case <-timer.C:
	}
	msg := newMessage(RoleAssistant, reply)
	msg.Rule = rule
	return msg, nil
}

func (a *Assistant) typingDelay() time.Duration {
	spread := a.cfg.MaxDelay - a.cfg.MinDelay
	if spread <= 0 {
		return a.cfg.MinDelay
	}
	return a.cfg.MinDelay + time.Duration(a.intn(int(spread)))
}

func (a *Assistant) intn(n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.IntN(n)
}

// ─── Conversation ───────────────────────────────────────────────────────────

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one line of a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Rule      string    `json:"rule,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(role Role, content string) Message {
	return Message{ID: uuid.New().String(), Role: role, Content: content, Timestamp: time.Now()}
}

// Conversation is a concurrency-safe chat transcript.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
}

// NewConversation starts a transcript with the greeting.
func NewConversation() *Conversation {
	return &Conversation{messages: []Message{newMessage(RoleAssistant, Greeting)}}
}

// AddUser appends a user message and returns it.
func (c *Conversation) AddUser(text string) Message {
	m := newMessage(RoleUser, strings.TrimSpace(text))
	c.Append(m)
	return m
}

// Append adds m to the transcript.
func (c *Conversation) Append(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}
