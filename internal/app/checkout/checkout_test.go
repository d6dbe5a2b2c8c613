package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/calma-app/calma/internal/domain"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{29.90, "R$\u00a029,90"},
		{179.90, "R$\u00a0179,90"},
		{1234.56, "R$\u00a01.234,56"},
		{0, "R$\u00a00,00"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlatformFee(t *testing.T) {
	if got := PlatformFee(29.90, 5); got != 1.50 {
		t.Errorf("PlatformFee(29.90) = %v, want 1.50", got)
	}
	if got := NetAmount(29.90, 5); got != 28.40 {
		t.Errorf("NetAmount(29.90) = %v, want 28.40", got)
	}
	if got := PlatformFee(100, 5); got != 5 {
		t.Errorf("PlatformFee(100) = %v, want 5", got)
	}
	if got := NetAmount(179.90, 5); got != 170.90 {
		t.Errorf("NetAmount(179.90) = %v, want 170.90", got)
	}
}

func TestPay(t *testing.T) {
	paidAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	p := NewProcessor(Config{PlatformFeePct: 5}, func() time.Time { return paidAt })

	r, err := p.Pay(context.Background(), domain.PlanAnnual, "")
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if r.Method != domain.MethodPix {
		t.Errorf("Method = %s, want pix default", r.Method)
	}
	if r.Amount != 179.90 || r.Formatted != "R$\u00a0179,90" || !r.PaidAt.Equal(paidAt) {
		t.Errorf("Receipt = %+v", r)
	}
}

func TestPay_Validation(t *testing.T) {
	p := NewProcessor(Config{}, nil)
	tests := []struct {
		name   string
		plan   domain.Plan
		method domain.PaymentMethod
		want   error
	}{
		{"no plan", "", domain.MethodPix, domain.ErrNoPlanSelected},
		{"unknown plan", "weekly", domain.MethodPix, domain.ErrInvalidPlan},
		{"unknown method", domain.PlanMonthly, "crypto", domain.ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Pay(context.Background(), tt.plan, tt.method); !errors.Is(err, tt.want) {
				t.Errorf("Pay() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPay_Cancelled(t *testing.T) {
	p := NewProcessor(Config{ProcessingDelay: time.Hour}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Pay(ctx, domain.PlanMonthly, domain.MethodCredit); !errors.Is(err, context.Canceled) {
		t.Errorf("Pay(cancelled) = %v, want context.Canceled", err)
	}
}
