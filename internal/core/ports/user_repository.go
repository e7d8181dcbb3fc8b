package ports

import (
	"context"

	"github.com/streamhub/user-service/internal/core/domain"
)

// UserPatch describes a partial account update. Nil fields are left untouched.
type UserPatch struct {
	FullName      *string
	Email         *string
	AvatarURL     *string
	CoverImageURL *string
}

// UserRepository defines the persistence contract for accounts. The store
// enforces username and email uniqueness; every update is a single-document
// atomic operation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByUsernameOrEmail matches the identifier against either unique key.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	// UpdateByID applies the patch and returns the post-update record.
	UpdateByID(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// SetRefreshToken overwrites the account's current refresh token,
	// invalidating any previously issued one.
	SetRefreshToken(ctx context.Context, id, token string) error
	// ClearRefreshToken removes the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, id string) error
}
