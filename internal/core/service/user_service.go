package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamhub/user-service/internal/core/domain"
	"github.com/streamhub/user-service/internal/core/ports"
)

const profileCacheTTL = 30 * time.Second

// ProfileCache abstracts the short-TTL cache in front of channel profiles
// (Redis). Get reports whether the key was present.
type ProfileCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// MediaCleanup accepts superseded media URLs for asynchronous deletion.
type MediaCleanup interface {
	Enqueue(ownerID, url string)
}

// UserService implements profile reads and updates.
type UserService struct {
	users   ports.UserRepository
	subs    ports.SubscriptionRepository
	videos  ports.VideoRepository
	storage ports.MediaStorage
	cleanup MediaCleanup
	cache   ProfileCache
	log     zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	subs ports.SubscriptionRepository,
	videos ports.VideoRepository,
	storage ports.MediaStorage,
	cleanup MediaCleanup,
	cache ProfileCache,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:   users,
		subs:    subs,
		videos:  videos,
		storage: storage,
		cleanup: cleanup,
		cache:   cache,
		log:     log,
	}
}

func (s *UserService) UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error) {
	patch := ports.UserPatch{}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		patch.FullName = &fullName
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		patch.Email = &email
	}
	if patch.FullName == nil && patch.Email == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	return s.users.UpdateByID(ctx, id, patch)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id, localPath string) (*domain.User, error) {
	return s.replaceMedia(ctx, id, localPath, func(url string) ports.UserPatch {
		return ports.UserPatch{AvatarURL: &url}
	}, func(u *domain.User) string { return u.AvatarURL })
}

func (s *UserService) UpdateCoverImage(ctx context.Context, id, localPath string) (*domain.User, error) {
	return s.replaceMedia(ctx, id, localPath, func(url string) ports.UserPatch {
		return ports.UserPatch{CoverImageURL: &url}
	}, func(u *domain.User) string { return u.CoverImageURL })
}

// replaceMedia uploads the new asset, swaps the stored URL and only then
// schedules deletion of the old asset, so a failed update never orphans the
// record's current media.
func (s *UserService) replaceMedia(
	ctx context.Context,
	id, localPath string,
	patch func(url string) ports.UserPatch,
	current func(u *domain.User) string,
) (*domain.User, error) {
	before, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	updated, err := s.users.UpdateByID(ctx, id, patch(url))
	if err != nil {
		return nil, err
	}

	if old := current(before); old != "" {
		s.cleanup.Enqueue(id, old)
	}
	return updated, nil
}

func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrUserNotFound
	}

	profile, err := s.channelCounts(ctx, username)
	if err != nil {
		return nil, err
	}

	// Subscription state is viewer-specific and never cached.
	if viewerID != "" && viewerID != profile.ID {
		subscribed, err := s.subs.IsSubscribed(ctx, profile.ID, viewerID)
		if err != nil {
			return nil, err
		}
		profile.IsSubscribed = subscribed
	}
	return profile, nil
}

// channelCounts loads the viewer-independent part of a channel profile,
// consulting the cache first. Cache failures degrade to a store read.
func (s *UserService) channelCounts(ctx context.Context, username string) (*domain.ChannelProfile, error) {
	key := "profile:" + username

	var cached domain.ChannelProfile
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("profile cache read failed")
	} else if hit {
		return &cached, nil
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subs.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscriptions, err := s.subs.CountSubscriptions(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &domain.ChannelProfile{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		AvatarURL:         user.AvatarURL,
		CoverImageURL:     user.CoverImageURL,
		SubscriberCount:   subscribers,
		SubscribedToCount: subscriptions,
	}

	if err := s.cache.Set(ctx, key, profile, profileCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("profile cache write failed")
	}
	return profile, nil
}

func (s *UserService) WatchHistory(ctx context.Context, id string) ([]domain.Video, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(user.WatchHistory) == 0 {
		return []domain.Video{}, nil
	}
	return s.videos.FindByIDs(ctx, user.WatchHistory)
}
