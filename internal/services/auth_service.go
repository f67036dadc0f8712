package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/db"
	"portfolio/internal/models"
	"portfolio/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrEmailTaken        = errors.New("email already registered")
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, tx store.Execer, id, userID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, q store.Getter, token string) (models.Session, error)
	DeleteByID(ctx context.Context, tx store.Execer, id string) error
	DeleteByToken(ctx context.Context, tx store.Execer, token string) error
	DeleteExpired(ctx context.Context, tx store.Execer, now time.Time) (int64, error)
}

// AuthService owns registration, login, logout, and bearer-token resolution.
// Sessions are opaque tokens stored server-side; expiry is enforced lazily at
// lookup time and swept globally whenever a new session is created.
type AuthService struct {
	txRunner db.TxRunner
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(txRunner db.TxRunner, users UserStore, sessions SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{
		txRunner: txRunner,
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Register creates the user and logs them in, returning the session token.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	userID := uuid.NewString()
	var token string
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.Create(ctx, tx, userID, email, passwordHash); err != nil {
			return err
		}
		token, err = s.createSession(ctx, tx, userID)
		return err
	})
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredential
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredential
	}
	var token string
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		token, err = s.createSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Resolve authenticates a bearer token. An expired session is deleted in the
// same transaction that observes it, so expiry and removal are atomic from
// the caller's point of view.
func (s *AuthService) Resolve(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrMissingCredential
	}
	var userID string
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		session, err := s.sessions.GetByToken(ctx, tx, token)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidCredential
			}
			return err
		}
		if session.ExpiresAt.Before(s.now()) {
			if err := s.sessions.DeleteByID(ctx, tx, session.ID); err != nil {
				return err
			}
			return ErrInvalidCredential
		}
		userID = session.UserID
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return s.users.GetByID(ctx, userID)
}

// Logout deletes the session row. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.sessions.DeleteByToken(ctx, tx, token)
	})
}

// createSession issues a fresh token and sweeps every session in the system
// whose expiry has already passed, within the caller's transaction.
func (s *AuthService) createSession(ctx context.Context, tx *sqlx.Tx, userID string) (string, error) {
	if _, err := s.sessions.DeleteExpired(ctx, tx, s.now()); err != nil {
		return "", err
	}
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}
	expiresAt := s.now().Add(s.ttl)
	if err := s.sessions.Create(ctx, tx, uuid.NewString(), userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}
