package ports

import "context"

// SubscriptionRepository reads the channel/subscriber relation backing
// channel profiles.
type SubscriptionRepository interface {
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID string) (int64, error)
	IsSubscribed(ctx context.Context, channelID, subscriberID string) (bool, error)
}
