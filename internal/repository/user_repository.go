package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles database operations on the users collection.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user. The unique email index rejects
// duplicates.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithField("email", user.Email).Warn("Duplicate user insert rejected")
			return nil, fmt.Errorf("email or username already in use")
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err,
		}).Warn("Failed to find user by email")
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Warn("Failed to find user by ID")
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// UpdateUser applies a partial $set update to a user document.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user")
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// TopByClicks returns up to limit users ordered by cumulative click count
// descending, projected to the leaderboard fields only.
func (r *UserRepository) TopByClicks(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "stats.clicks", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"email":               1,
			"stats.clicks":        1,
			"stats.highest_combo": 1,
		})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %v", err)
	}
	return entries, nil
}

// ClearExpiredPremium demotes every user whose premium period ended
// before now. Returns the number of demoted users.
func (r *UserRepository) ClearExpiredPremium(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"is_premium":     true,
		"premium_expiry": bson.M{"$gt": time.Time{}, "$lt": now},
	}
	update := bson.M{"$set": bson.M{"is_premium": false, "updated_at": now}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).Error("Failed to clear expired premium flags")
		return 0, fmt.Errorf("failed to clear expired premium: %v", err)
	}
	return result.ModifiedCount, nil
}
