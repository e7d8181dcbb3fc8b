package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamhub/user-service/internal/core/domain"
)

type stubSubscriptionRepo struct {
	subscribers   map[string]int64
	subscriptions map[string]int64
	edges         map[string]bool // channelID + "|" + subscriberID
	countCalls    int
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{
		subscribers:   make(map[string]int64),
		subscriptions: make(map[string]int64),
		edges:         make(map[string]bool),
	}
}

func (r *stubSubscriptionRepo) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	r.countCalls++
	return r.subscribers[channelID], nil
}

func (r *stubSubscriptionRepo) CountSubscriptions(_ context.Context, subscriberID string) (int64, error) {
	return r.subscriptions[subscriberID], nil
}

func (r *stubSubscriptionRepo) IsSubscribed(_ context.Context, channelID, subscriberID string) (bool, error) {
	return r.edges[channelID+"|"+subscriberID], nil
}

type stubVideoRepo struct {
	videos map[string]domain.Video
}

func (r *stubVideoRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Video, error) {
	out := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubStorage struct {
	uploads []string
	deletes []string
	url     string
}

func (s *stubStorage) Upload(_ context.Context, localPath string) (string, error) {
	s.uploads = append(s.uploads, localPath)
	return s.url, nil
}

func (s *stubStorage) Delete(_ context.Context, url string) error {
	s.deletes = append(s.deletes, url)
	return nil
}

type stubCleanup struct {
	enqueued []string
}

func (q *stubCleanup) Enqueue(_, url string) {
	q.enqueued = append(q.enqueued, url)
}

type mapCache struct {
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

type userServiceFixture struct {
	svc     *UserService
	repo    *stubUserRepo
	subs    *stubSubscriptionRepo
	videos  *stubVideoRepo
	storage *stubStorage
	cleanup *stubCleanup
	cache   *mapCache
}

func newUserServiceFixture() *userServiceFixture {
	f := &userServiceFixture{
		repo:    newStubUserRepo(),
		subs:    newStubSubscriptionRepo(),
		videos:  &stubVideoRepo{videos: make(map[string]domain.Video)},
		storage: &stubStorage{url: "https://cdn.example.com/new.png"},
		cleanup: &stubCleanup{},
		cache:   newMapCache(),
	}
	f.svc = NewUserService(f.repo, f.subs, f.videos, f.storage, f.cleanup, f.cache, zerolog.Nop())
	return f
}

func (f *userServiceFixture) seedUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := f.repo.Create(context.Background(), &domain.User{
		Username:  "alice",
		Email:     "alice@x.com",
		FullName:  "Alice Example",
		AvatarURL: "https://cdn.example.com/old-avatar.png",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserService_UpdateAccount(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)

	updated, err := f.svc.UpdateAccount(context.Background(), user.ID, "Alice Updated", "NEW@X.COM")
	if err != nil {
		t.Fatalf("update account failed: %v", err)
	}
	if updated.FullName != "Alice Updated" || updated.Email != "new@x.com" {
		t.Fatalf("unexpected result: %+v", updated)
	}
}

func TestUserService_UpdateAccount_NothingToUpdate(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)

	if _, err := f.svc.UpdateAccount(context.Background(), user.ID, "  ", ""); err == nil {
		t.Fatalf("expected error for empty patch")
	}
}

func TestUserService_UpdateAvatar_ReplacesAndCleansUp(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)

	updated, err := f.svc.UpdateAvatar(context.Background(), user.ID, "/tmp/new-avatar.png")
	if err != nil {
		t.Fatalf("update avatar failed: %v", err)
	}
	if updated.AvatarURL != "https://cdn.example.com/new.png" {
		t.Fatalf("avatar URL not updated: %s", updated.AvatarURL)
	}
	if len(f.storage.uploads) != 1 || f.storage.uploads[0] != "/tmp/new-avatar.png" {
		t.Fatalf("unexpected uploads: %v", f.storage.uploads)
	}
	if len(f.cleanup.enqueued) != 1 || f.cleanup.enqueued[0] != "https://cdn.example.com/old-avatar.png" {
		t.Fatalf("old avatar not scheduled for cleanup: %v", f.cleanup.enqueued)
	}
}

func TestUserService_UpdateCoverImage_NoOldAsset(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)

	if _, err := f.svc.UpdateCoverImage(context.Background(), user.ID, "/tmp/cover.png"); err != nil {
		t.Fatalf("update cover failed: %v", err)
	}
	// No previous cover image, so nothing to clean up.
	if len(f.cleanup.enqueued) != 0 {
		t.Fatalf("unexpected cleanup jobs: %v", f.cleanup.enqueued)
	}
}

func TestUserService_ChannelProfile(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)
	viewer := &domain.User{Username: "bob", Email: "bob@x.com", FullName: "Bob"}
	viewer, _ = f.repo.Create(context.Background(), viewer)

	f.subs.subscribers[user.ID] = 42
	f.subs.subscriptions[user.ID] = 7
	f.subs.edges[user.ID+"|"+viewer.ID] = true

	profile, err := f.svc.ChannelProfile(context.Background(), "Alice", viewer.ID)
	if err != nil {
		t.Fatalf("channel profile failed: %v", err)
	}
	if profile.SubscriberCount != 42 || profile.SubscribedToCount != 7 {
		t.Fatalf("unexpected counts: %+v", profile)
	}
	if !profile.IsSubscribed {
		t.Fatalf("expected viewer to be subscribed")
	}
}

func TestUserService_ChannelProfile_CachesCounts(t *testing.T) {
	f := newUserServiceFixture()
	f.seedUser(t)

	if _, err := f.svc.ChannelProfile(context.Background(), "alice", ""); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if _, err := f.svc.ChannelProfile(context.Background(), "alice", ""); err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if f.subs.countCalls != 1 {
		t.Fatalf("expected counts to come from cache on second read, got %d store reads", f.subs.countCalls)
	}
}

func TestUserService_ChannelProfile_UnknownChannel(t *testing.T) {
	f := newUserServiceFixture()

	if _, err := f.svc.ChannelProfile(context.Background(), "nobody", ""); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_WatchHistory(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)
	f.repo.users[user.ID].WatchHistory = []string{"v1", "v2", "v-gone"}
	f.videos.videos["v1"] = domain.Video{ID: "v1", Title: "First"}
	f.videos.videos["v2"] = domain.Video{ID: "v2", Title: "Second"}

	videos, err := f.svc.WatchHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("watch history failed: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "v1" || videos[1].ID != "v2" {
		t.Fatalf("unexpected history: %+v", videos)
	}
}

func TestUserService_WatchHistory_Empty(t *testing.T) {
	f := newUserServiceFixture()
	user := f.seedUser(t)

	videos, err := f.svc.WatchHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("watch history failed: %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("expected empty history, got %+v", videos)
	}
}
