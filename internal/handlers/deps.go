package handlers

import (
	"context"

	"portfolio/internal/models"
	"portfolio/internal/portfolio"
)

type UserStore interface {
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type HoldingStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Holding, error)
}

type LedgerStore interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (models.User, error)
}

type PortfolioService interface {
	Upsert(ctx context.Context, userID string, p portfolio.Normalized) (models.Holding, error)
	Update(ctx context.Context, userID, holdingID string, p portfolio.Normalized) (models.Holding, error)
	Delete(ctx context.Context, userID, holdingID string) error
}
