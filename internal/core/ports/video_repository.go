package ports

import (
	"context"

	"github.com/streamhub/user-service/internal/core/domain"
)

// VideoRepository resolves watch-history ids against the video catalogue.
type VideoRepository interface {
	// FindByIDs returns the videos for the given ids, preserving input order.
	// Ids that no longer resolve are silently dropped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error)
}
