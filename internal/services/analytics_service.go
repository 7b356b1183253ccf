package services

import (
	"context"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventStore is the persistence surface for the analytics event sink.
// *repository.AnalyticsRepository implements it.
type EventStore interface {
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
	CountEventsByType(ctx context.Context, userID primitive.ObjectID) ([]models.EventCount, error)
}

// AnalyticsService appends events to the sink. Tracking is fire and
// forget: failures are logged, never surfaced to the caller.
type AnalyticsService struct {
	store EventStore
}

func NewAnalyticsService(store EventStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// TrackEvent appends one event. Errors are swallowed after logging.
func (s *AnalyticsService) TrackEvent(ctx context.Context, userID primitive.ObjectID, eventType string, data bson.M) {
	event := &models.AnalyticsEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Data:      data,
	}

	if err := s.store.InsertEvent(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":    userID.Hex(),
			"eventType": eventType,
			"error":     err,
		}).Error("Analytics tracking error")
	}
}

// CountByUser returns the user's event counts grouped by type.
func (s *AnalyticsService) CountByUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventCount, error) {
	return s.store.CountEventsByType(ctx, userID)
}
