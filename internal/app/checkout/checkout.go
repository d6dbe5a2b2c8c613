// Package checkout simulates the subscription payment flow. No money moves:
// a payment always succeeds after a processing delay.
package checkout

import (
	"context"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/calma-app/calma/internal/domain"
)

// DefaultPlatformFeePct is the platform's cut of each payment.
const DefaultPlatformFeePct = 5

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian reais, e.g. "R$ 1.234,56" with a
// non-breaking space after the symbol.
func FormatBRL(v float64) string {
	return "R$\u00a0" + brl.Sprintf("%.2f", v)
}

func toCents(v float64) int64 { return int64(math.Round(v * 100)) }

// PlatformFee returns pct percent of amount, rounded to the cent.
func PlatformFee(amount float64, pct int) float64 {
	return float64((toCents(amount)*int64(pct)+50)/100) / 100
}

// NetAmount is what the account holder receives after the platform fee.
func NetAmount(amount float64, pct int) float64 {
	return float64(toCents(amount)-toCents(PlatformFee(amount, pct))) / 100
}

// Config tunes the simulated processor.
type Config struct {
	ProcessingDelay time.Duration
	PlatformFeePct  int
}

// DefaultConfig returns a 2s delay and the default fee.
func DefaultConfig() Config {
	return Config{ProcessingDelay: 2 * time.Second, PlatformFeePct: DefaultPlatformFeePct}
}

// Receipt describes a completed payment.
type Receipt struct {
	Plan      domain.Plan          `json:"plan"`
	Method    domain.PaymentMethod `json:"method"`
	Amount    float64              `json:"amount"`
	Formatted string               `json:"formatted"`
	Fee       float64              `json:"fee"`
	Net       float64              `json:"net"`
	PaidAt    time.Time            `json:"paid_at"`
}

// Processor simulates a payment gateway.
type Processor struct {
	cfg Config
	now domain.Clock
}

// NewProcessor creates a processor.
func NewProcessor(cfg Config, now domain.Clock) *Processor {
	if now == nil {
		now = time.Now
	}
	return &Processor{cfg: cfg, now: now}
}

// Pay charges plan with method. An empty method means PIX.
func (p *Processor) Pay(ctx context.Context, plan domain.Plan, method domain.PaymentMethod) (Receipt, error) {
	plan, err := domain.ParsePlan(string(plan))
	if err != nil {
		return Receipt{}, err
	}
	method, err = domain.ParsePaymentMethod(string(method))
	if err != nil {
		return Receipt{}, err
	}

	if p.cfg.ProcessingDelay > 0 {
		timer := time.NewTimer(p.cfg.ProcessingDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	amount := plan.Price()
	return Receipt{
		Plan:      plan,
		Method:    method,
		Amount:    amount,
		Formatted: FormatBRL(amount),
		Fee:       PlatformFee(amount, p.cfg.PlatformFeePct),
		Net:       NetAmount(amount, p.cfg.PlatformFeePct),
		PaidAt:    p.now(),
	}, nil
}
