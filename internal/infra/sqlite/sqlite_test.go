package sqlite

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/calma-app/calma/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Settings ───────────────────────────────────────────────────────────────

func TestSetting_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, ok, err := db.Setting(ctx, "theme"); err != nil || ok {
		t.Fatalf("Setting(missing) = ok %v, err %v; want absent", ok, err)
	}
	db.SetSetting(ctx, "theme", "light")
	db.SetSetting(ctx, "theme", "dark")

	v, ok, err := db.Setting(ctx, "theme")
	if err != nil || !ok || v != "dark" {
		t.Errorf("Setting(theme) = %q, %v, %v; want dark", v, ok, err)
	}
}

func TestPaymentConfig_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cfg := domain.PaymentConfig{
		PixKey:      "pagamentos@calma.app",
		BankAccount: &domain.BankAccount{Bank: "341", Agency: "0001", Account: "12345-6"},
	}
	if err := db.SavePaymentConfig(ctx, cfg); err != nil {
		t.Fatalf("SavePaymentConfig() error: %v", err)
	}

	got, err := db.PaymentConfig(ctx)
	if err != nil {
		t.Fatalf("PaymentConfig() error: %v", err)
	}
	if got == nil || got.PixKey != cfg.PixKey || got.BankAccount == nil || got.BankAccount.Account != "12345-6" {
		t.Errorf("PaymentConfig() = %+v, want %+v", got, cfg)
	}

	raw, _, _ := db.Setting(ctx, KeyPaymentConfig)
	if raw == "" || raw[0] != '{' {
		t.Errorf("stored value = %q, want JSON object", raw)
	}
}

func TestPaymentConfig_InvalidPixRejected(t *testing.T) {
	db := newTestDB(t)
	err := db.SavePaymentConfig(context.Background(), domain.PaymentConfig{PixKey: "abc"})
	if !errors.Is(err, domain.ErrInvalidPixKey) {
		t.Errorf("SavePaymentConfig(abc) = %v, want ErrInvalidPixKey", err)
	}
}

func TestPaymentConfig_NotConfigured(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	got, err := db.PaymentConfig(ctx)
	if err != nil || got != nil {
		t.Errorf("PaymentConfig(empty) = %+v, %v; want nil, nil", got, err)
	}

	db.SetSetting(ctx, KeyPaymentConfig, "{not json")
	got, err = db.PaymentConfig(ctx)
	if err != nil || got != nil {
		t.Errorf("PaymentConfig(corrupt) = %+v, %v; want nil, nil", got, err)
	}
}

// ─── Payments ───────────────────────────────────────────────────────────────

func TestPayments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	paidAt := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

	db.RecordPayment(ctx, Payment{SessionID: "s1", Plan: "monthly", Method: "pix", Amount: 29.90, Fee: 1.50, Net: 28.40, PaidAt: paidAt})
	id, err := db.RecordPayment(ctx, Payment{SessionID: "s2", Plan: "annual", Method: "credit", Amount: 179.90, Fee: 9, Net: 170.90, PaidAt: paidAt})
	if err != nil {
		t.Fatalf("RecordPayment() error: %v", err)
	}

	list, err := db.Payments(ctx, 10)
	if err != nil {
		t.Fatalf("Payments() error: %v", err)
	}
	if len(list) != 2 || list[0].ID != id || list[0].Plan != "annual" {
		t.Fatalf("Payments() = %+v, want newest first", list)
	}
	if !list[0].PaidAt.Equal(paidAt) {
		t.Errorf("PaidAt = %v, want %v", list[0].PaidAt, paidAt)
	}

	gross, net, err := db.Revenue(ctx)
	if err != nil {
		t.Fatalf("Revenue() error: %v", err)
	}
	if gross < 209.79 || gross > 209.81 || net < 199.29 || net > 199.31 {
		t.Errorf("Revenue() = %v, %v; want 209.80, 199.30", gross, net)
	}
}

func TestPayments_MalformedPaidAtLogged(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.db.ExecContext(ctx, `
		INSERT INTO payments (session_id, plan, method, amount, fee, net, paid_at)
		VALUES ('s1', 'monthly', 'pix', 29.90, 1.50, 28.40, 'yesterday')
	`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	list, err := db.Payments(ctx, 10)
	if err != nil {
		t.Fatalf("Payments() error: %v", err)
	}
	if len(list) != 1 || !list[0].PaidAt.IsZero() {
		t.Fatalf("Payments() = %+v, want one payment with zero PaidAt", list)
	}
	if !strings.Contains(buf.String(), "[sqlite]") || !strings.Contains(buf.String(), "yesterday") {
		t.Errorf("expected malformed paid_at to be logged, got %q", buf.String())
	}
}
