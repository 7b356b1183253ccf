package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/achievements"
	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/Lord-Boros/the-forbidden-button/internal/stats"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const leaderboardSize = 10

// GameService owns the click-stat and achievement flows. Updates are
// plain read-modify-write on the user document; two racing submissions
// for the same user can lose one update, which is accepted behavior.
type GameService struct {
	store UserStore
}

func NewGameService(store UserStore) *GameService {
	return &GameService{store: store}
}

// CheckAchievements evaluates the reported activity against the catalog,
// grants whatever is newly satisfied and returns the grants together with
// the updated point total. Re-submitting the same snapshot grants
// nothing.
func (s *GameService) CheckAchievements(ctx context.Context, user *models.User, clicks, combo int64) ([]achievements.Achievement, int64, error) {
	unlocked := make(map[string]bool, len(user.Stats.AchievementsUnlocked))
	for _, a := range user.Stats.AchievementsUnlocked {
		unlocked[a.ID] = true
	}

	newOnes := achievements.Evaluate(unlocked, clicks, combo)
	if len(newOnes) == 0 {
		return nil, user.Stats.TotalPoints, nil
	}

	now := time.Now()
	for _, a := range newOnes {
		user.Stats.AchievementsUnlocked = append(user.Stats.AchievementsUnlocked, models.UnlockedAchievement{
			ID:         a.ID,
			UnlockedAt: now,
		})
	}
	user.Stats.TotalPoints += achievements.Points(newOnes)

	err := s.store.UpdateUser(ctx, user.ID, bson.M{
		"stats":      user.Stats,
		"updated_at": now,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to persist achievements: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID":      user.ID.Hex(),
		"unlocked":    len(newOnes),
		"totalPoints": user.Stats.TotalPoints,
	}).Info("Achievements granted")

	return newOnes, user.Stats.TotalPoints, nil
}

// SubmitStats merges an incremental click report into the user's stats
// record and persists it.
func (s *GameService) SubmitStats(ctx context.Context, user *models.User, clicksDelta, combo int64) (*models.Stats, error) {
	now := time.Now()
	stats.Apply(&user.Stats, clicksDelta, combo, now)

	err := s.store.UpdateUser(ctx, user.ID, bson.M{
		"stats":      user.Stats,
		"updated_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist stats: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": user.ID.Hex(),
		"clicks": user.Stats.Clicks,
	}).Info("Stats updated")

	return &user.Stats, nil
}

// Leaderboard returns the top players by cumulative click count.
func (s *GameService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.store.TopByClicks(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %v", err)
	}
	return entries, nil
}
