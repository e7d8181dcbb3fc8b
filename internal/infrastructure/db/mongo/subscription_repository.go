package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const subscriptionCollection = "subscriptions"

// MongoSubscriptionRepository reads the channel/subscriber relation owned by
// the subscription service; this service only counts and checks membership.
type MongoSubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{coll: db.Collection(subscriptionCollection)}
}

func (r *MongoSubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return 0, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"channel_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}

func (r *MongoSubscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return 0, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"subscriber_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return n, nil
}

func (r *MongoSubscriptionRepository) IsSubscribed(ctx context.Context, channelID, subscriberID string) (bool, error) {
	channel, err := primitive.ObjectIDFromHex(channelID)
	if err != nil {
		return false, nil
	}
	subscriber, err := primitive.ObjectIDFromHex(subscriberID)
	if err != nil {
		return false, nil
	}

	err = r.coll.FindOne(ctx, bson.M{"channel_id": channel, "subscriber_id": subscriber}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return true, nil
}
