package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (models.User, error)
}

func (s stubResolver) Resolve(ctx context.Context, token string) (models.User, error) {
	if s.resolveFn == nil {
		return models.User{}, nil
	}
	return s.resolveFn(ctx, token)
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	handler := Auth(stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	resolver := stubResolver{
		resolveFn: func(context.Context, string) (models.User, error) {
			return models.User{}, services.ErrInvalidCredential
		},
	}
	handler := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthResolverFailure(t *testing.T) {
	resolver := stubResolver{
		resolveFn: func(context.Context, string) (models.User, error) {
			return models.User{}, context.DeadlineExceeded
		},
	}
	handler := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	resolver := stubResolver{
		resolveFn: func(_ context.Context, token string) (models.User, error) {
			if token != "token-1" {
				t.Fatalf("unexpected token: %q", token)
			}
			return models.User{ID: "user-1"}, nil
		},
	}
	var gotUserID, gotToken string
	handler := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		gotToken, _ = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotUserID != "user-1" || gotToken != "token-1" {
		t.Fatalf("context not populated: userID=%q token=%q", gotUserID, gotToken)
	}
}
