package ports

import (
	"context"

	"github.com/streamhub/user-service/internal/core/domain"
)

// UserService covers profile reads and updates outside the auth lifecycle.
type UserService interface {
	UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error)
	// UpdateAvatar uploads the file at localPath, persists the new URL and
	// schedules deletion of the replaced asset.
	UpdateAvatar(ctx context.Context, id, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id, localPath string) (*domain.User, error)
	// ChannelProfile resolves a channel by username. viewerID may be empty
	// for anonymous viewers.
	ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, id string) ([]domain.Video, error)
}
