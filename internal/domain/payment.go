package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ─── Subscription Types ─────────────────────────────────────────────────────

// Plan is a subscription plan. The plan only changes price and messaging;
// every plan unlocks the same content.
type Plan string

const (
	PlanMonthly Plan = "monthly"
	PlanAnnual  Plan = "annual"
)

// planPrices are in Brazilian Real.
var planPrices = map[Plan]float64{
	PlanMonthly: 29.90,
	PlanAnnual:  179.90,
}

// ParsePlan resolves a plan name (English or the pt-BR "mensal"/"anual").
func ParsePlan(s string) (Plan, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", ErrNoPlanSelected
	case "monthly", "mensal":
		return PlanMonthly, nil
	case "annual", "anual", "yearly":
		return PlanAnnual, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
	}
}

// Price returns the plan price in BRL.
func (p Plan) Price() float64 {
	return planPrices[p]
}

// Label returns the display name of the plan.
func (p Plan) Label() string {
	switch p {
	case PlanMonthly:
		return "Monthly"
	case PlanAnnual:
		return "Annual"
	default:
		return string(p)
	}
}

// PaymentMethod is how a simulated subscription is paid.
type PaymentMethod string

const (
	MethodPix    PaymentMethod = "pix"
	MethodDebit  PaymentMethod = "debit"
	MethodCredit PaymentMethod = "credit"
	MethodBoleto PaymentMethod = "boleto"
)

var methodNames = map[PaymentMethod]string{
	MethodPix:    "PIX",
	MethodDebit:  "Debit Card",
	MethodCredit: "Credit Card",
	MethodBoleto: "Boleto Bancário",
}

// ParsePaymentMethod resolves a payment method. Empty defaults to PIX.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return MethodPix, nil
	}
	if _, ok := methodNames[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// DisplayName returns the human-readable payment method name.
func (m PaymentMethod) DisplayName() string {
	return methodNames[m]
}

// ─── Payment Routing Config ─────────────────────────────────────────────────

// BankAccount identifies a Brazilian bank account.
type BankAccount struct {
	Bank    string `json:"bank"`
	Agency  string `json:"agency"`
	Account string `json:"account"`
}

// PaymentConfig is the payment routing configuration. It is the only value
// the application persists.
type PaymentConfig struct {
	PixKey               string       `json:"pixKey"`
	StripeAccountID      string       `json:"stripeAccountId,omitempty"`
	MercadoPagoAccountID string       `json:"mercadoPagoAccountId,omitempty"`
	BankAccount          *BankAccount `json:"bankAccount,omitempty"`
}

// Validate checks the PIX key.
func (c PaymentConfig) Validate() error {
	if !ValidatePixKey(c.PixKey) {
		return ErrInvalidPixKey
	}
	return nil
}

var (
	nonDigit   = regexp.MustCompile(`\D`)
	cpfDigits  = regexp.MustCompile(`^\d{11}$`)
	cnpjDigits = regexp.MustCompile(`^\d{14}$`)
	emailKey   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneKey   = regexp.MustCompile(`^\+?55\d{10,11}$`)
	randomKey  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ValidatePixKey reports whether key is a well-formed PIX key: an 11-digit
// CPF, a 14-digit CNPJ, an email, a +55 phone number or a random (UUID) key.
// Punctuation is ignored for the numeric forms.
func ValidatePixKey(key string) bool {
	if key == "" {
		return false
	}
	digits := nonDigit.ReplaceAllString(key, "")
	switch {
	case cpfDigits.MatchString(digits):
		return true
	case cnpjDigits.MatchString(digits):
		return true
	case emailKey.MatchString(key):
		return true
	case phoneKey.MatchString(digits):
		return true
	case randomKey.MatchString(key):
		return true
	}
	return false
}
