package domain

import (
	"context"
	"time"
)

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// PaymentConfigStore persists the payment routing configuration.
type PaymentConfigStore interface {
	// SavePaymentConfig validates and stores cfg, replacing any previous value.
	SavePaymentConfig(ctx context.Context, cfg PaymentConfig) error

	// PaymentConfig returns the stored config, or nil when none is stored
	// or the stored value cannot be decoded.
	PaymentConfig(ctx context.Context) (*PaymentConfig, error)
}

// Clock abstracts the current time so ledgers can be tested deterministically.
type Clock func() time.Time
