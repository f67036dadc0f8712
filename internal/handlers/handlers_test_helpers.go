package handlers

import (
	"context"
	"net/http"

	"portfolio/internal/config"
	"portfolio/internal/models"
	"portfolio/internal/portfolio"
)

type stubUserStore struct {
	getByIDFn func(ctx context.Context, userID string) (models.User, error)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubHoldingReader struct {
	listByUserFn func(ctx context.Context, userID string) ([]models.Holding, error)
}

func (s stubHoldingReader) ListByUser(ctx context.Context, userID string) ([]models.Holding, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID)
}

type stubLedgerReader struct {
	listByUserFn func(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

func (s stubLedgerReader) ListByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	logoutFn   func(ctx context.Context, token string) error
	resolveFn  func(ctx context.Context, token string) (models.User, error)
}

func (s stubAuthService) Register(ctx context.Context, email, password string) (string, error) {
	if s.registerFn == nil {
		return "", nil
	}
	return s.registerFn(ctx, email, password)
}

func (s stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginFn == nil {
		return "", nil
	}
	return s.loginFn(ctx, email, password)
}

func (s stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s stubAuthService) Resolve(ctx context.Context, token string) (models.User, error) {
	if s.resolveFn == nil {
		return models.User{ID: "user-1", Email: "a@x.com"}, nil
	}
	return s.resolveFn(ctx, token)
}

type stubPortfolioService struct {
	upsertFn func(ctx context.Context, userID string, p portfolio.Normalized) (models.Holding, error)
	updateFn func(ctx context.Context, userID, holdingID string, p portfolio.Normalized) (models.Holding, error)
	deleteFn func(ctx context.Context, userID, holdingID string) error
}

func (s stubPortfolioService) Upsert(ctx context.Context, userID string, p portfolio.Normalized) (models.Holding, error) {
	if s.upsertFn == nil {
		return models.Holding{}, nil
	}
	return s.upsertFn(ctx, userID, p)
}

func (s stubPortfolioService) Update(ctx context.Context, userID, holdingID string, p portfolio.Normalized) (models.Holding, error) {
	if s.updateFn == nil {
		return models.Holding{}, nil
	}
	return s.updateFn(ctx, userID, holdingID, p)
}

func (s stubPortfolioService) Delete(ctx context.Context, userID, holdingID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, userID, holdingID)
}

type testDeps struct {
	users    stubUserStore
	holdings stubHoldingReader
	ledger   stubLedgerReader
	auth     stubAuthService
	service  stubPortfolioService
}

func newTestRouter(deps testDeps) http.Handler {
	cfg := config.Config{AllowedOrigins: "*"}
	h := New(cfg, deps.users, deps.holdings, deps.ledger, deps.auth, deps.service, nil)
	return h.Routes()
}
