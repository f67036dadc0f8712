package store

import (
	"context"

	"portfolio/internal/models"
)

type HoldingStore struct {
	db DB
}

func NewHoldingStore(db DB) *HoldingStore {
	return &HoldingStore{db: db}
}

const holdingColumns = `id, user_id, name, category, quantity, total_cost, currency,
	current_price, risk_level, strategy, sentiment, tags, note, created_at, updated_at`

// GetByName matches case-insensitively on the normalized name, the holding's
// identity key. Reads go through the Getter so the merge lookup can run
// inside the same transaction as the mutation it guards.
func (s *HoldingStore) GetByName(ctx context.Context, q Getter, userID, name string) (models.Holding, error) {
	var holding models.Holding
	err := q.GetContext(ctx, &holding, `
		SELECT `+holdingColumns+`
		FROM holdings
		WHERE user_id = $1 AND lower(name) = lower($2)
	`, userID, name)
	return holding, err
}

func (s *HoldingStore) GetByID(ctx context.Context, q Getter, userID, holdingID string) (models.Holding, error) {
	var holding models.Holding
	err := q.GetContext(ctx, &holding, `
		SELECT `+holdingColumns+`
		FROM holdings
		WHERE id = $1 AND user_id = $2
	`, holdingID, userID)
	return holding, err
}

// HasOtherWithName reports whether another of the user's holdings already
// claims the name, case-insensitively. Used for rename conflict checks.
func (s *HoldingStore) HasOtherWithName(ctx context.Context, q Getter, userID, name, excludeID string) (bool, error) {
	var exists bool
	err := q.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM holdings
			WHERE user_id = $1 AND lower(name) = lower($2) AND id <> $3
		)
	`, userID, name, excludeID)
	return exists, err
}

func (s *HoldingStore) Insert(ctx context.Context, tx Execer, holding models.Holding) error {
	query := `
		INSERT INTO holdings (id, user_id, name, category, quantity, total_cost, currency,
			current_price, risk_level, strategy, sentiment, tags, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := tx.ExecContext(ctx, query,
		holding.ID, holding.UserID, holding.Name, holding.Category, holding.Quantity,
		holding.TotalCost, holding.Currency, holding.CurrentPrice, holding.RiskLevel,
		holding.Strategy, holding.Sentiment, holding.Tags, holding.Note,
		holding.CreatedAt, holding.UpdatedAt,
	)
	return err
}

func (s *HoldingStore) Update(ctx context.Context, tx Execer, holding models.Holding) error {
	query := `
		UPDATE holdings
		SET name = $1, category = $2, quantity = $3, total_cost = $4, currency = $5,
			current_price = $6, risk_level = $7, strategy = $8, sentiment = $9,
			tags = $10, note = $11, updated_at = $12
		WHERE id = $13 AND user_id = $14
	`
	_, err := tx.ExecContext(ctx, query,
		holding.Name, holding.Category, holding.Quantity, holding.TotalCost,
		holding.Currency, holding.CurrentPrice, holding.RiskLevel, holding.Strategy,
		holding.Sentiment, holding.Tags, holding.Note, holding.UpdatedAt,
		holding.ID, holding.UserID,
	)
	return err
}

func (s *HoldingStore) Delete(ctx context.Context, tx Execer, userID, holdingID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1 AND user_id = $2`, holdingID, userID)
	return err
}

func (s *HoldingStore) ListByUser(ctx context.Context, userID string) ([]models.Holding, error) {
	var holdings []models.Holding
	err := s.db.SelectContext(ctx, &holdings, `
		SELECT `+holdingColumns+`
		FROM holdings
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	return holdings, err
}
