package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

func TestRegisterReturnsToken(t *testing.T) {
	router := newTestRouter(testDeps{
		auth: stubAuthService{
			registerFn: func(_ context.Context, email, password string) (string, error) {
				if email != "a@x.com" || password != "secret1" {
					t.Fatalf("unexpected credentials: %q %q", email, password)
				}
				return "token-1", nil
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@x.com","password":"secret1"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["token"] != "token-1" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	router := newTestRouter(testDeps{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"not-an-email","password":"secret1"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	router := newTestRouter(testDeps{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@x.com","password":"abc"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(testDeps{
		auth: stubAuthService{
			registerFn: func(context.Context, string, string) (string, error) {
				return "", services.ErrEmailTaken
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"a@x.com","password":"secret1"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(testDeps{
		auth: stubAuthService{
			loginFn: func(context.Context, string, string) (string, error) {
				return "", services.ErrInvalidCredential
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	router := newTestRouter(testDeps{
		auth: stubAuthService{
			loginFn: func(context.Context, string, string) (string, error) {
				return "token-1", nil
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"secret1"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["token"] != "token-1" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestLogoutDeletesCurrentSession(t *testing.T) {
	var loggedOut string
	router := newTestRouter(testDeps{
		auth: stubAuthService{
			logoutFn: func(_ context.Context, token string) error {
				loggedOut = token
				return nil
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if loggedOut != "token-1" {
		t.Fatalf("expected logout for bearer token, got %q", loggedOut)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	router := newTestRouter(testDeps{
		users: stubUserStore{
			getByIDFn: func(_ context.Context, userID string) (models.User, error) {
				return models.User{ID: userID, Email: "a@x.com", CreatedAt: created}, nil
			},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["id"] != "user-1" || body["email"] != "a@x.com" || body["createdAt"] != "2024-03-01T12:00:00Z" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := newTestRouter(testDeps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(testDeps{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
