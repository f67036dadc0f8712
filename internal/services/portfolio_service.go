package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio/internal/db"
	"portfolio/internal/models"
	"portfolio/internal/portfolio"
	"portfolio/internal/store"
	"portfolio/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrHoldingNotFound = errors.New("holding not found")
	ErrNameConflict    = errors.New("holding name already exists")
)

type HoldingStore interface {
	GetByName(ctx context.Context, q store.Getter, userID, name string) (models.Holding, error)
	GetByID(ctx context.Context, q store.Getter, userID, holdingID string) (models.Holding, error)
	HasOtherWithName(ctx context.Context, q store.Getter, userID, name, excludeID string) (bool, error)
	Insert(ctx context.Context, tx store.Execer, holding models.Holding) error
	Update(ctx context.Context, tx store.Execer, holding models.Holding) error
	Delete(ctx context.Context, tx store.Execer, userID, holdingID string) error
}

type LedgerStore interface {
	Append(ctx context.Context, tx store.Execer, entry store.LedgerEntryInput) error
}

type PortfolioHub interface {
	BroadcastHolding(userID string, update websocket.HoldingUpdate)
}

// PortfolioService is the holdings reconciler. Every mutation runs inside one
// serializable transaction: the merge lookup, the row change, and the ledger
// append commit or roll back together.
type PortfolioService struct {
	txRunner db.TxRunner
	holdings HoldingStore
	ledger   LedgerStore
	hub      PortfolioHub
	now      func() time.Time
}

func NewPortfolioService(txRunner db.TxRunner, holdings HoldingStore, ledger LedgerStore, hub PortfolioHub) *PortfolioService {
	return &PortfolioService{
		txRunner: txRunner,
		holdings: holdings,
		ledger:   ledger,
		hub:      hub,
		now:      time.Now,
	}
}

// Upsert creates a new holding, or merges into the existing one matching the
// payload's name case-insensitively. A merge accumulates quantity and cost,
// replaces the descriptive fields last-write-wins, and unions tags; the
// stored name's casing is kept. Either path records a "buy" ledger entry
// carrying the payload's incremental quantity and cost.
func (s *PortfolioService) Upsert(ctx context.Context, userID string, p portfolio.Normalized) (models.Holding, error) {
	var result models.Holding
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := s.now()
		existing, err := s.holdings.GetByName(ctx, tx, userID, p.Name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			merged := existing
			merged.Quantity = existing.Quantity.Add(p.Quantity)
			merged.TotalCost = existing.TotalCost.Add(p.Cost)
			merged.Category = p.Category
			merged.Currency = p.Currency
			merged.CurrentPrice = p.CurrentPrice
			merged.RiskLevel = p.RiskLevel
			merged.Strategy = p.Strategy
			merged.Sentiment = p.Sentiment
			merged.Note = p.Note
			merged.Tags = portfolio.EncodeTags(portfolio.MergeTags(portfolio.DecodeTags(existing.Tags), p.Tags))
			merged.UpdatedAt = now
			if err := s.holdings.Update(ctx, tx, merged); err != nil {
				return translateConflict(err)
			}
			if err := s.appendLedger(ctx, tx, userID, existing.Name, p, models.ActionBuy, now); err != nil {
				return err
			}
			result = merged
			return nil
		}
		holding := models.Holding{
			ID:           uuid.NewString(),
			UserID:       userID,
			Name:         p.Name,
			Category:     p.Category,
			Quantity:     p.Quantity,
			TotalCost:    p.Cost,
			Currency:     p.Currency,
			CurrentPrice: p.CurrentPrice,
			RiskLevel:    p.RiskLevel,
			Strategy:     p.Strategy,
			Sentiment:    p.Sentiment,
			Note:         p.Note,
			Tags:         portfolio.EncodeTags(p.Tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.holdings.Insert(ctx, tx, holding); err != nil {
			return translateConflict(err)
		}
		if err := s.appendLedger(ctx, tx, userID, holding.Name, p, models.ActionBuy, now); err != nil {
			return err
		}
		result = holding
		return nil
	})
	if err != nil {
		return models.Holding{}, err
	}
	s.notify(userID, result, models.ActionBuy)
	return result, nil
}

// Update replaces every field of one specific holding. It never merges: a
// rename that collides with another holding of the same user fails with
// ErrNameConflict and leaves both rows untouched.
func (s *PortfolioService) Update(ctx context.Context, userID, holdingID string, p portfolio.Normalized) (models.Holding, error) {
	var result models.Holding
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.holdings.GetByID(ctx, tx, userID, holdingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrHoldingNotFound
			}
			return err
		}
		if p.Name != existing.Name {
			conflict, err := s.holdings.HasOtherWithName(ctx, tx, userID, p.Name, holdingID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrNameConflict
			}
		}
		now := s.now()
		updated := existing
		updated.Name = p.Name
		updated.Category = p.Category
		updated.Quantity = p.Quantity
		updated.TotalCost = p.Cost
		updated.Currency = p.Currency
		updated.CurrentPrice = p.CurrentPrice
		updated.RiskLevel = p.RiskLevel
		updated.Strategy = p.Strategy
		updated.Sentiment = p.Sentiment
		updated.Note = p.Note
		updated.Tags = portfolio.EncodeTags(p.Tags)
		updated.UpdatedAt = now
		if err := s.holdings.Update(ctx, tx, updated); err != nil {
			return translateConflict(err)
		}
		if err := s.appendLedger(ctx, tx, userID, updated.Name, p, models.ActionUpdate, now); err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return models.Holding{}, err
	}
	s.notify(userID, result, models.ActionUpdate)
	return result, nil
}

// Delete is idempotent: a missing or foreign id is a silent no-op. When the
// holding exists, its last known quantity, cost, and category are recorded in
// the ledger before the row is removed.
func (s *PortfolioService) Delete(ctx context.Context, userID, holdingID string) error {
	var deleted models.Holding
	var found bool
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.holdings.GetByID(ctx, tx, userID, holdingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		now := s.now()
		entry := store.LedgerEntryInput{
			ID:          uuid.NewString(),
			UserID:      userID,
			HoldingName: existing.Name,
			Category:    existing.Category,
			Quantity:    existing.Quantity,
			TotalCost:   existing.TotalCost,
			Action:      models.ActionDelete,
			CreatedAt:   now,
		}
		if err := s.ledger.Append(ctx, tx, entry); err != nil {
			return err
		}
		if err := s.holdings.Delete(ctx, tx, userID, holdingID); err != nil {
			return err
		}
		deleted = existing
		found = true
		return nil
	})
	if err != nil {
		return err
	}
	if found {
		s.notify(userID, deleted, models.ActionDelete)
	}
	return nil
}

func (s *PortfolioService) appendLedger(ctx context.Context, tx store.Execer, userID, holdingName string, p portfolio.Normalized, action string, now time.Time) error {
	return s.ledger.Append(ctx, tx, store.LedgerEntryInput{
		ID:          uuid.NewString(),
		UserID:      userID,
		HoldingName: holdingName,
		Category:    p.Category,
		Quantity:    p.Quantity,
		TotalCost:   p.Cost,
		Action:      action,
		CreatedAt:   now,
	})
}

func (s *PortfolioService) notify(userID string, holding models.Holding, action string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastHolding(userID, websocket.HoldingUpdate{
		HoldingID: holding.ID,
		Name:      holding.Name,
		Quantity:  holding.Quantity.InexactFloat64(),
		TotalCost: holding.TotalCost.InexactFloat64(),
		Action:    action,
	})
}

// translateConflict maps the unique index violation raised by a concurrent
// duplicate-name insert to the same conflict signal used for renames, so a
// raw storage error never reaches the handler layer.
func translateConflict(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrNameConflict
	}
	return err
}
