package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types emitted by the request handlers.
const (
	EventUserRegistered      = "USER_REGISTERED"
	EventUserLogin           = "USER_LOGIN"
	EventAchievementUnlocked = "ACHIEVEMENT_UNLOCKED"
	EventStatsUpdated        = "STATS_UPDATED"
	EventPreferencesUpdated  = "PREFERENCES_UPDATED"
)

// AnalyticsEvent is an append-only record. Events reference a user by id
// but have their own lifecycle; they are never updated or deleted.
type AnalyticsEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventType string             `bson:"event_type" json:"eventType"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Data      bson.M             `bson:"data,omitempty" json:"data,omitempty"`
}

// EventCount is one row of the count-by-type aggregation used by the
// profile endpoint.
type EventCount struct {
	EventType string `bson:"_id" json:"eventType"`
	Count     int64  `bson:"count" json:"count"`
}
