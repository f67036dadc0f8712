package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Session struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Holding is a user's accumulated position in one instrument. Names are
// unique per user after whitespace normalization, compared case-insensitively.
// Tags holds the encoded ordered tag list (see internal/portfolio).
type Holding struct {
	ID           string              `db:"id" json:"id"`
	UserID       string              `db:"user_id" json:"user_id"`
	Name         string              `db:"name" json:"name"`
	Category     string              `db:"category" json:"category"`
	Quantity     decimal.Decimal     `db:"quantity" json:"quantity"`
	TotalCost    decimal.Decimal     `db:"total_cost" json:"total_cost"`
	Currency     string              `db:"currency" json:"currency"`
	CurrentPrice decimal.NullDecimal `db:"current_price" json:"current_price"`
	RiskLevel    string              `db:"risk_level" json:"risk_level"`
	Strategy     *string             `db:"strategy" json:"strategy,omitempty"`
	Sentiment    *string             `db:"sentiment" json:"sentiment,omitempty"`
	Tags         *string             `db:"tags" json:"-"`
	Note         *string             `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only ledger entry recording a single mutation.
// It is decoupled from the holding row so it survives renames and deletion.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	HoldingName string          `db:"holding_name" json:"holding_name"`
	Category    string          `db:"category" json:"category"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	TotalCost   decimal.Decimal `db:"total_cost" json:"total_cost"`
	Action      string          `db:"action" json:"action"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

const (
	ActionBuy    = "buy"
	ActionUpdate = "update"
	ActionDelete = "delete"
)
