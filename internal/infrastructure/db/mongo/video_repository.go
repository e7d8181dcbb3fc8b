package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streamhub/user-service/internal/core/domain"
)

const videoCollection = "videos"

type MongoVideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *MongoVideoRepository {
	return &MongoVideoRepository{coll: db.Collection(videoCollection)}
}

type mongoVideo struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	ThumbnailURL string             `bson:"thumbnail_url"`
	Duration     float64            `bson:"duration_seconds"`
	OwnerID      primitive.ObjectID `bson:"owner_id"`
	CreatedAt    int64              `bson:"created_at"`
}

// FindByIDs fetches the videos in one query and reorders them to match the
// input, dropping ids that no longer resolve.
func (r *MongoVideoRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Video, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []domain.Video{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]domain.Video, len(oids))
	for cursor.Next(ctx) {
		var mv mongoVideo
		if err := cursor.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode video: %w", err)
		}
		byID[mv.ID.Hex()] = domain.Video{
			ID:           mv.ID.Hex(),
			Title:        mv.Title,
			ThumbnailURL: mv.ThumbnailURL,
			Duration:     mv.Duration,
			OwnerID:      mv.OwnerID.Hex(),
			CreatedAt:    unixToTime(mv.CreatedAt),
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	videos := make([]domain.Video, 0, len(byID))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}
