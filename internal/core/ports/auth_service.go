package ports

import (
	"context"

	"github.com/streamhub/user-service/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Media files
// are uploaded before registration; only the resulting URLs reach the core.
type RegisterInput struct {
	FullName      string
	Username      string
	Email         string
	Password      string
	AvatarURL     string
	CoverImageURL string
}

// AuthService implements credential verification and the session-token
// lifecycle: login, refresh-token rotation, logout, and password changes.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the password for the account matching identifier
	// (username or email) and issues a fresh token pair, persisting the
	// refresh token as the account's single live session.
	Login(ctx context.Context, identifier, password string) (*domain.User, *domain.TokenPair, error)
	// Refresh exchanges a still-valid refresh token for a new pair,
	// rotating the stored token. A rotated-away or cleared token fails
	// with domain.ErrSessionInvalidated.
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
