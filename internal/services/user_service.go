package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/Lord-Boros/the-forbidden-button/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence surface the services need from the user
// collection. *repository.UserRepository implements it.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) error
	TopByClicks(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	ClearExpiredPremium(ctx context.Context, now time.Time) (int64, error)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates account registration, login and preferences.
type UserService struct {
	store UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// RegisterUser creates a new account with a hashed credential. The
// plaintext password is never stored.
func (s *UserService) RegisterUser(ctx context.Context, emailAddr, password, username string) (*models.User, error) {
	logrus.Info("Registering new user")

	if emailAddr == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("email and password are required")
	}
	if !emailRegex.MatchString(emailAddr) {
		logrus.WithField("email", emailAddr).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}

	if existing, _ := s.store.GetUserByEmail(ctx, emailAddr); existing != nil {
		logrus.WithField("email", emailAddr).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          emailAddr,
		Username:       username,
		HashedPassword: string(hashedPwd),
		Preferences:    models.DefaultPreferences(),
	}

	createdUser, err := s.store.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	// Welcome mail is best effort and never blocks registration.
	go func(to string) {
		body := "Welcome to The Forbidden Button!\n\nThe button is waiting. Try not to click it."
		if err := email.SendEmail(to, "Welcome!", body); err != nil {
			logrus.WithError(err).Warn("Failed to send welcome email")
		}
	}(createdUser.Email)

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// Login verifies credentials, bumps the session counter and records the
// login time. The lookup-failure and bad-password messages are distinct;
// unifying them is a known hardening item.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (*models.User, error) {
	logrus.WithField("email", emailAddr).Info("Authenticating user")

	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		logrus.WithField("email", emailAddr).Warn("User not found")
		return nil, fmt.Errorf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", emailAddr).Warn("Invalid password")
		return nil, fmt.Errorf("invalid password")
	}

	now := time.Now()
	user.Stats.SessionCount++
	user.LastLogin = now

	err = s.store.UpdateUser(ctx, user.ID, bson.M{
		"stats.session_count": user.Stats.SessionCount,
		"last_login":          now,
		"updated_at":          now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %v", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their hex ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logrus.WithError(err).Warn("Invalid user ID")
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.store.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// UpdatePreferences replaces the preferences record wholesale. Fields
// missing from the request body arrive as zero values and overwrite what
// was stored; PUT semantics, not a merge.
func (s *UserService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs models.Preferences) (models.Preferences, error) {
	err := s.store.UpdateUser(ctx, userID, bson.M{
		"preferences": prefs,
		"updated_at":  time.Now(),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to update preferences")
		return models.Preferences{}, fmt.Errorf("failed to update preferences: %v", err)
	}

	logrus.WithField("userID", userID.Hex()).Info("Preferences updated")
	return prefs, nil
}
