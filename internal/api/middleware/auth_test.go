package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamhub/user-service/internal/core/domain"
	"github.com/streamhub/user-service/internal/core/ports"
	"github.com/streamhub/user-service/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByUsernameOrEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) UpdateByID(context.Context, string, ports.UserPatch) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) UpdatePasswordHash(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (r *stubUserRepo) SetRefreshToken(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (r *stubUserRepo) ClearRefreshToken(context.Context, string) error {
	return errors.New("not implemented")
}

func testFixture(t *testing.T) (*service.TokenIssuer, *stubUserRepo, echo.MiddlewareFunc) {
	t.Helper()
	issuer, err := service.NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {
			ID:           "user-1",
			Username:     "alice",
			Email:        "alice@x.com",
			FullName:     "Alice Example",
			PasswordHash: "hash",
			RefreshToken: "some-refresh-token",
		},
	}}
	return issuer, repo, Auth(issuer, repo)
}

func accessTokenFor(t *testing.T, issuer *service.TokenIssuer, id string) string {
	t.Helper()
	token, err := issuer.IssueAccessToken(&domain.User{ID: id, Username: "alice", Email: "alice@x.com", FullName: "Alice"})
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	return token
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	issuer, _, mw := testFixture(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, issuer, "user-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		user, _ := c.Get("user").(*domain.User)
		if user == nil || user.ID != "user-1" {
			t.Fatalf("user not injected: %+v", user)
		}
		// The injected projection must not carry credentials.
		if user.PasswordHash != "" || user.RefreshToken != "" {
			t.Fatalf("credential fields leaked into context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_CookieTakesPrecedence(t *testing.T) {
	issuer, _, mw := testFixture(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessTokenFor(t, issuer, "user-1")})
	// A garbage header must be ignored when a valid cookie is present.
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("expected cookie to win, got error: %v", err)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, _, mw := testFixture(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	_, _, mw := testFixture(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	issuer, _, mw := testFixture(t)
	e := echo.New()

	refresh, err := issuer.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token must not authenticate, got %v", err)
	}
}

func TestAuthMiddleware_DeletedAccount(t *testing.T) {
	issuer, repo, mw := testFixture(t)
	e := echo.New()

	token := accessTokenFor(t, issuer, "user-1")
	delete(repo.users, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// A validly signed token for a deleted account must still be rejected.
	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
