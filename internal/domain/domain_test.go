package domain

import (
	"errors"
	"testing"
)

// ─── Mood Tests ─────────────────────────────────────────────────────────────

func TestParseMood(t *testing.T) {
	tests := []struct {
		input string
		want  Mood
	}{
		{"terrible", MoodTerrible},
		{"Bad", MoodBad},
		{" neutral ", MoodNeutral},
		{"GOOD", MoodGood},
		{"excellent", MoodExcellent},
		{"pessimo", MoodTerrible},
		{"ruim", MoodBad},
		{"neutro", MoodNeutral},
		{"bom", MoodGood},
		{"excelente", MoodExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMood(tt.input)
			if err != nil {
				t.Fatalf("ParseMood(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMood_Unknown(t *testing.T) {
	_, err := ParseMood("ecstatic")
	if !errors.Is(err, ErrInvalidMood) {
		t.Errorf("ParseMood(ecstatic) error = %v, want ErrInvalidMood", err)
	}
}

func TestMood_ScoreIsOrdered(t *testing.T) {
	for i, m := range AllMoods {
		if got := m.Score(); got != i+1 {
			t.Errorf("%s.Score() = %d, want %d", m, got, i+1)
		}
	}
	if Mood("meh").Score() != 0 {
		t.Error("unknown mood should score 0")
	}
	if Mood("meh").Valid() {
		t.Error("unknown mood should not be valid")
	}
}

func TestMood_StyleAndMessages(t *testing.T) {
	for _, m := range AllMoods {
		if m.Style().Label == "" || m.Style().Emoji == "" {
			t.Errorf("%s has no style", m)
		}
		if len(m.MotivationalMessages()) != 3 {
			t.Errorf("%s has %d messages, want 3", m, len(m.MotivationalMessages()))
		}
	}
}

// ─── Exercise Tests ─────────────────────────────────────────────────────────

func TestExercise_Targets(t *testing.T) {
	ex := Exercise{TargetMoods: []Mood{MoodBad, MoodNeutral}}
	if !ex.Targets(MoodBad) {
		t.Error("expected exercise to target bad")
	}
	if ex.Targets(MoodExcellent) {
		t.Error("exercise should not target excellent")
	}
}

// ─── Progress Tests ─────────────────────────────────────────────────────────

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{105, 2},
		{340, 4},
		{1000, 11},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.points); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestUserProgress_LevelMath(t *testing.T) {
	p := DemoProgress()
	if p.Level != 4 {
		t.Fatalf("demo level = %d, want 4", p.Level)
	}
	if got := p.PointsToNextLevel(); got != 60 {
		t.Errorf("PointsToNextLevel() = %d, want 60", got)
	}
	if got := p.LevelProgressPct(); got != 40 {
		t.Errorf("LevelProgressPct() = %f, want 40", got)
	}
}

// ─── Payment Tests ──────────────────────────────────────────────────────────

func TestValidatePixKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"11144477735", true},
		{"111.444.777-35", true},
		{"11222333000181", true},
		{"11.222.333/0001-81", true},
		{"someone@example.com", true},
		{"+5511987654321", true},
		{"5511987654321", true},
		{"123e4567-e89b-12d3-a456-426614174000", true},
		{"123E4567-E89B-12D3-A456-426614174000", true},
		{"abc", false},
		{"", false},
		{"12345", false},
		{"someone@", false},
		{"+1 555 1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ValidatePixKey(tt.key); got != tt.want {
				t.Errorf("ValidatePixKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPaymentConfig_Validate(t *testing.T) {
	if err := (PaymentConfig{PixKey: "11144477735"}).Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
	if err := (PaymentConfig{PixKey: "abc"}).Validate(); !errors.Is(err, ErrInvalidPixKey) {
		t.Errorf("Validate() error = %v, want ErrInvalidPixKey", err)
	}
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		input   string
		want    Plan
		wantErr error
	}{
		{"monthly", PlanMonthly, nil},
		{"mensal", PlanMonthly, nil},
		{"annual", PlanAnnual, nil},
		{"anual", PlanAnnual, nil},
		{"", "", ErrNoPlanSelected},
		{"weekly", "", ErrInvalidPlan},
	}
	for _, tt := range tests {
		got, err := ParsePlan(tt.input)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParsePlan(%q) error = %v, want %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePlan(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPlan_Price(t *testing.T) {
	if PlanMonthly.Price() != 29.90 {
		t.Errorf("monthly price = %v, want 29.90", PlanMonthly.Price())
	}
	if PlanAnnual.Price() != 179.90 {
		t.Errorf("annual price = %v, want 179.90", PlanAnnual.Price())
	}
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("")
	if err != nil || m != MethodPix {
		t.Errorf("ParsePaymentMethod(\"\") = %q, %v; want pix", m, err)
	}
	m, err = ParsePaymentMethod("Boleto")
	if err != nil || m != MethodBoleto {
		t.Errorf("ParsePaymentMethod(Boleto) = %q, %v; want boleto", m, err)
	}
	if m.DisplayName() != "Boleto Bancário" {
		t.Errorf("DisplayName() = %q", m.DisplayName())
	}
	if _, err := ParsePaymentMethod("bitcoin"); !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("ParsePaymentMethod(bitcoin) error = %v, want ErrInvalidMethod", err)
	}
}
