package repository

import (
	"context"
	"fmt"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepository handles the append-only analytics collection.
type AnalyticsRepository struct {
	collection *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{
		collection: db.Collection("analytics"),
	}
}

// InsertEvent appends one analytics event.
func (r *AnalyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert analytics event")
		return fmt.Errorf("failed to insert analytics event: %v", err)
	}
	return nil
}

// CountEventsByType groups a user's events by type and counts them.
func (r *AnalyticsRepository) CountEventsByType(ctx context.Context, userID primitive.ObjectID) ([]models.EventCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$event_type",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %v", err)
	}
	defer cursor.Close(ctx)

	var counts []models.EventCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode event counts: %v", err)
	}
	return counts, nil
}
