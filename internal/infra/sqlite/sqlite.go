// Package sqlite provides local persistence on an embedded SQLite database:
// key/value settings (the payment routing config) and the ledger of
// simulated subscription payments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/calma-app/calma/internal/domain"
)

// FileName is the database file created inside the data directory.
const FileName = "calma.db"

// KeyPaymentConfig is the settings key holding the payment routing config.
const KeyPaymentConfig = "payment_config"

// DB wraps the SQLite connection.
type DB struct {
	db *sqlx.DB
}

var _ domain.PaymentConfigStore = (*DB)(nil)

// Open opens (creating if needed) the database in dir and applies migrations.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements, one statement per string.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Simulated subscription payments
		`CREATE TABLE IF NOT EXISTS payments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			plan       TEXT NOT NULL,
			method     TEXT NOT NULL,
			amount     REAL NOT NULL,
			fee        REAL NOT NULL,
			net        REAL NOT NULL,
			paid_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_session ON payments(session_id)`,
	}
}

func (d *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := d.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ─── Settings ───────────────────────────────────────────────────────────────

// SetSetting stores value under key, replacing any previous value.
func (d *DB) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = datetime('now')
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Setting returns the value stored under key. ok is false when absent.
func (d *DB) Setting(ctx context.Context, key string) (value string, ok bool, err error) {
	err = d.db.GetContext(ctx, &value, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SavePaymentConfig validates cfg and stores it as JSON.
func (d *DB) SavePaymentConfig(ctx context.Context, cfg domain.PaymentConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal payment config: %w", err)
	}
	return d.SetSetting(ctx, KeyPaymentConfig, string(raw))
}

// PaymentConfig loads the stored config. A missing or undecodable value
// reads as not configured.
func (d *DB) PaymentConfig(ctx context.Context) (*domain.PaymentConfig, error) {
	raw, ok, err := d.Setting(ctx, KeyPaymentConfig)
	if err != nil || !ok {
		return nil, err
	}
	var cfg domain.PaymentConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		log.Printf("[sqlite] ignoring undecodable %s: %v", KeyPaymentConfig, err)
		return nil, nil
	}
	return &cfg, nil
}

// ─── Payments ───────────────────────────────────────────────────────────────

// Payment is one recorded simulated payment.
type Payment struct {
	ID        int64     `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	Plan      string    `db:"plan" json:"plan"`
	Method    string    `db:"method" json:"method"`
	Amount    float64   `db:"amount" json:"amount"`
	Fee       float64   `db:"fee" json:"fee"`
	Net       float64   `db:"net" json:"net"`
	PaidAt    time.Time `db:"-" json:"paid_at"`
	PaidAtRaw string    `db:"paid_at" json:"-"`
}

// RecordPayment appends a payment and returns its ID.
func (d *DB) RecordPayment(ctx context.Context, p Payment) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO payments (session_id, plan, method, amount, fee, net, paid_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.SessionID, p.Plan, p.Method, p.Amount, p.Fee, p.Net, p.PaidAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("record payment: %w", err)
	}
	return res.LastInsertId()
}

// Payments returns the most recent payments, newest first.
func (d *DB) Payments(ctx context.Context, limit int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []Payment
	err := d.db.SelectContext(ctx, &rows, `
		SELECT id, session_id, plan, method, amount, fee, net, paid_at
		FROM payments ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	for i := range rows {
		paidAt, err := time.Parse(time.RFC3339, rows[i].PaidAtRaw)
		if err != nil {
			log.Printf("[sqlite] payment %d has malformed paid_at %q: %v", rows[i].ID, rows[i].PaidAtRaw, err)
			continue
		}
		rows[i].PaidAt = paidAt
	}
	return rows, nil
}

// Revenue sums amounts and net amounts over all payments.
func (d *DB) Revenue(ctx context.Context) (gross, net float64, err error) {
	var row struct {
		Gross float64 `db:"gross"`
		Net   float64 `db:"net"`
	}
	err = d.db.GetContext(ctx, &row, `
		SELECT COALESCE(SUM(amount), 0) AS gross, COALESCE(SUM(net), 0) AS net FROM payments
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("sum revenue: %w", err)
	}
	return row.Gross, row.Net, nil
}
