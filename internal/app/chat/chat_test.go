package chat

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/calma-app/calma/internal/domain"
)

func newTestAssistant() *Assistant {
	return NewAssistant(Config{}, nil, rand.New(rand.NewPCG(3, 5)))
}

func TestRespond_RulePriority(t *testing.T) {
	a := newTestAssistant()
	tests := []struct {
		name string
		text string
		mood domain.Mood
		want string
	}{
		{"happy with good mood", "I feel happy today", domain.MoodExcellent, "mood_positive"},
		{"happy without mood", "I feel happy today", "", "fallback"},
		{"sad with bad mood", "I'm so SAD", domain.MoodTerrible, "mood_negative"},
		{"anxiety", "I'm anxious about work", domain.MoodNeutral, "anxiety"},
		{"anxiety before sleep and thanks", "thanks, I'm anxious and can't sleep", "", "anxiety"},
		{"exercise before premium", "which exercise is premium?", "", "exercises"},
		{"premium", "tell me about the premium plan", "", "premium"},
		{"help", "how does it work?", "", "help"},
		{"sleep", "I can't sleep", "", "sleep"},
		{"stress", "so much stress", "", "stress"},
		{"thanks", "thank you!", "", "thanks"},
		{"portuguese", "preciso de ajuda", "", "help"},
		{"no keyword", "hello there", "", "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, reply := a.Respond(tt.text, tt.mood)
			if rule != tt.want {
				t.Errorf("Respond(%q) rule = %q, want %q", tt.text, rule, tt.want)
			}
			if reply == "" {
				t.Error("empty reply")
			}
		})
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	a := newTestAssistant()
	if _, err := a.Reply(context.Background(), "   ", ""); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("Reply(blank) = %v, want ErrEmptyMessage", err)
	}
}

func TestReply_HonoursCancellation(t *testing.T) {
	a := NewAssistant(Config{MinDelay: time.Hour, MaxDelay: time.Hour}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Reply(ctx, "hi", ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Reply(cancelled) = %v, want context.Canceled", err)
	}
}

func TestReply_Immediate(t *testing.T) {
	a := newTestAssistant()
	msg, err := a.Reply(context.Background(), "help", "")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if msg.Role != RoleAssistant || msg.Content == "" || msg.ID == "" || msg.Rule != "help" {
		t.Errorf("Reply() = %+v", msg)
	}
}

func TestTypingDelayWithinBounds(t *testing.T) {
	a := NewAssistant(DefaultConfig(), nil, rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 50; i++ {
		d := a.typingDelay()
		if d < time.Second || d > 2*time.Second {
			t.Fatalf("typingDelay() = %v, want within [1s, 2s]", d)
		}
	}
}

func TestConversation(t *testing.T) {
	c := NewConversation()
	c.AddUser("  hello  ")
	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2", len(msgs))
	}
	if msgs[0].Content != Greeting || msgs[1].Content != "hello" || msgs[1].Role != RoleUser {
		t.Errorf("Messages() = %+v", msgs)
	}
}
