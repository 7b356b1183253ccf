package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore is an in-memory UserStore for service tests. It records
// every $set update it receives instead of applying it.
type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[primitive.ObjectID]*models.User

	updates   []bson.M
	updateErr error

	top       []models.LeaderboardEntry
	lastLimit int

	expiredCleared int64
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
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeUserStore) TopByClicks(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.lastLimit = limit
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeUserStore) ClearExpiredPremium(ctx context.Context, now time.Time) (int64, error) {
	return f.expiredCleared, nil
}

// fakeEventStore collects analytics events in memory.
type fakeEventStore struct {
	events    []*models.AnalyticsEvent
	insertErr error
}

func (f *fakeEventStore) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
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

// fakeProcessor is a canned PaymentProcessor.
type fakeProcessor struct {
	result *SubscriptionInfo
	err    error
	calls  int
}

func (f *fakeProcessor) CreateSubscription(ctx context.Context, card CardToken) (*SubscriptionInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
