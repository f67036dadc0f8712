package services

import (
	"context"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/store"
	"portfolio/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn     func(ctx context.Context, tx store.Execer, id, email, passwordHash string) error
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	getByIDFn    func(ctx context.Context, userID string) (models.User, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, email, passwordHash string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, email, passwordHash)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.getByEmailFn == nil {
		return models.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubSessionStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, userID, token string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, q store.Getter, token string) (models.Session, error)
	deleteByIDFn    func(ctx context.Context, tx store.Execer, id string) error
	deleteByTokenFn func(ctx context.Context, tx store.Execer, token string) error
	deleteExpiredFn func(ctx context.Context, tx store.Execer, now time.Time) (int64, error)
}

func (s stubSessionStore) Create(ctx context.Context, tx store.Execer, id, userID, token string, expiresAt time.Time) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, userID, token, expiresAt)
}

func (s stubSessionStore) GetByToken(ctx context.Context, q store.Getter, token string) (models.Session, error) {
	if s.getByTokenFn == nil {
		return models.Session{}, nil
	}
	return s.getByTokenFn(ctx, q, token)
}

func (s stubSessionStore) DeleteByID(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteByIDFn == nil {
		return nil
	}
	return s.deleteByIDFn(ctx, tx, id)
}

func (s stubSessionStore) DeleteByToken(ctx context.Context, tx store.Execer, token string) error {
	if s.deleteByTokenFn == nil {
		return nil
	}
	return s.deleteByTokenFn(ctx, tx, token)
}

func (s stubSessionStore) DeleteExpired(ctx context.Context, tx store.Execer, now time.Time) (int64, error) {
	if s.deleteExpiredFn == nil {
		return 0, nil
	}
	return s.deleteExpiredFn(ctx, tx, now)
}

type stubHoldingStore struct {
	getByNameFn        func(ctx context.Context, q store.Getter, userID, name string) (models.Holding, error)
	getByIDFn          func(ctx context.Context, q store.Getter, userID, holdingID string) (models.Holding, error)
	hasOtherWithNameFn func(ctx context.Context, q store.Getter, userID, name, excludeID string) (bool, error)
	insertFn           func(ctx context.Context, tx store.Execer, holding models.Holding) error
	updateFn           func(ctx context.Context, tx store.Execer, holding models.Holding) error
	deleteFn           func(ctx context.Context, tx store.Execer, userID, holdingID string) error
}

func (s stubHoldingStore) GetByName(ctx context.Context, q store.Getter, userID, name string) (models.Holding, error) {
	if s.getByNameFn == nil {
		return models.Holding{}, nil
	}
	return s.getByNameFn(ctx, q, userID, name)
}

func (s stubHoldingStore) GetByID(ctx context.Context, q store.Getter, userID, holdingID string) (models.Holding, error) {
	if s.getByIDFn == nil {
		return models.Holding{}, nil
	}
	return s.getByIDFn(ctx, q, userID, holdingID)
}

func (s stubHoldingStore) HasOtherWithName(ctx context.Context, q store.Getter, userID, name, excludeID string) (bool, error) {
	if s.hasOtherWithNameFn == nil {
		return false, nil
	}
	return s.hasOtherWithNameFn(ctx, q, userID, name, excludeID)
}

func (s stubHoldingStore) Insert(ctx context.Context, tx store.Execer, holding models.Holding) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, holding)
}

func (s stubHoldingStore) Update(ctx context.Context, tx store.Execer, holding models.Holding) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, holding)
}

func (s stubHoldingStore) Delete(ctx context.Context, tx store.Execer, userID, holdingID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, userID, holdingID)
}

type stubLedgerStore struct {
	appendFn func(ctx context.Context, tx store.Execer, entry store.LedgerEntryInput) error
}

func (s stubLedgerStore) Append(ctx context.Context, tx store.Execer, entry store.LedgerEntryInput) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, tx, entry)
}

type recordingHub struct {
	updates []websocket.HoldingUpdate
}

func (h *recordingHub) BroadcastHolding(userID string, update websocket.HoldingUpdate) {
	h.updates = append(h.updates, update)
}
