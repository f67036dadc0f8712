package store

import (
	"context"
	"time"

	"portfolio/internal/models"
)

type SessionStore struct {
	db DB
}

func NewSessionStore(db DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, tx Execer, id, userID, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, id, userID, token, expiresAt)
	return err
}

// GetByToken reads through the supplied Getter so expiry checks can share a
// transaction with the delete that follows them.
func (s *SessionStore) GetByToken(ctx context.Context, q Getter, token string) (models.Session, error) {
	var session models.Session
	err := q.GetContext(ctx, &session, `
		SELECT id, user_id, token, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`, token)
	return session, err
}

func (s *SessionStore) DeleteByID(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *SessionStore) DeleteByToken(ctx context.Context, tx Execer, token string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteExpired sweeps every expired session across all users.
func (s *SessionStore) DeleteExpired(ctx context.Context, tx Execer, now time.Time) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
