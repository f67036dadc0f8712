package store

import (
	"context"
	"time"

	"portfolio/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerStore appends immutable transaction records. Nothing here updates or
// deletes; the seq column breaks created_at ties in insertion order.
type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type LedgerEntryInput struct {
	ID          string
	UserID      string
	HoldingName string
	Category    string
	Quantity    decimal.Decimal
	TotalCost   decimal.Decimal
	Action      string
	CreatedAt   time.Time
}

func (s *LedgerStore) Append(ctx context.Context, tx Execer, entry LedgerEntryInput) error {
	query := `
		INSERT INTO transactions (id, user_id, holding_name, category, quantity, total_cost, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.HoldingName, entry.Category,
		entry.Quantity, entry.TotalCost, entry.Action, entry.CreatedAt,
	)
	return err
}

func (s *LedgerStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, holding_name, category, quantity, total_cost, action, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`, userID, limit)
	return entries, err
}
