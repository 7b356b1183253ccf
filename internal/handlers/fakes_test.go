package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores backing real services for handler tests.

type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[primitive.ObjectID]*models.User
	updates []bson.M
	top     []models.LeaderboardEntry
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[primitive.ObjectID]*models.User),
	}
}

func (f *fakeUserStore) seed(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, fmt.Errorf("email or username already in use")
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return f.seed(user), nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("failed to find user by email: no documents")
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to find user by id: no documents")
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeUserStore) TopByClicks(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeUserStore) ClearExpiredPremium(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeEventStore struct {
	events []*models.AnalyticsEvent
}

func (f *fakeEventStore) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventStore) CountEventsByType(ctx context.Context, userID primitive.ObjectID) ([]models.EventCount, error) {
	counts := make(map[string]int64)
	for _, e := range f.events {
		if e.UserID == userID {
			counts[e.EventType]++
		}
	}
	var out []models.EventCount
	for eventType, n := range counts {
		out = append(out, models.EventCount{EventType: eventType, Count: n})
	}
	return out, nil
}

func (f *fakeEventStore) typesSeen() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.EventType)
	}
	return out
}
