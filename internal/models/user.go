package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a player account in the Forbidden Button backend.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Username       string             `bson:"username,omitempty" json:"username,omitempty"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	IsPremium      bool               `bson:"is_premium" json:"isPremium"`
	PremiumExpiry  time.Time          `bson:"premium_expiry,omitempty" json:"premiumExpiry,omitempty"`
	Stats          Stats              `bson:"stats" json:"stats"`
	Preferences    Preferences        `bson:"preferences" json:"preferences"`
	LastLogin      time.Time          `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Stats is the cumulative game record embedded in a user document.
type Stats struct {
	Clicks               int64                 `bson:"clicks" json:"clicks"`
	HighestCombo         int64                 `bson:"highest_combo" json:"highestCombo"`
	AchievementsUnlocked []UnlockedAchievement `bson:"achievements_unlocked" json:"achievementsUnlocked"`
	TotalPoints          int64                 `bson:"total_points" json:"totalPoints"`
	ClicksPerDay         []DailyClicks         `bson:"clicks_per_day" json:"clicksPerDay"`
	SessionCount         int64                 `bson:"session_count" json:"sessionCount"`
}

// UnlockedAchievement records a single grant. The id is unique per user.
type UnlockedAchievement struct {
	ID         string    `bson:"id" json:"id"`
	UnlockedAt time.Time `bson:"unlocked_at" json:"unlockedAt"`
}

// DailyClicks holds the click count for one calendar day. Date is
// truncated to midnight, server-local.
type DailyClicks struct {
	Date  time.Time `bson:"date" json:"date"`
	Count int64     `bson:"count" json:"count"`
}

type Preferences struct {
	Theme         string `bson:"theme" json:"theme"`
	Effects       bool   `bson:"effects" json:"effects"`
	Notifications bool   `bson:"notifications" json:"notifications"`
}

// DefaultPreferences returns the preferences a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "default",
		Effects:       true,
		Notifications: true,
	}
}

// PublicUser is the profile slice returned by register and login.
type PublicUser struct {
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	IsPremium bool   `json:"isPremium"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		Email:     u.Email,
		Username:  u.Username,
		IsPremium: u.IsPremium,
	}
}

// LeaderboardEntry is the projection served by the leaderboard endpoint.
type LeaderboardEntry struct {
	Email string           `bson:"email" json:"email"`
	Stats LeaderboardStats `bson:"stats" json:"stats"`
}

type LeaderboardStats struct {
	Clicks       int64 `bson:"clicks" json:"clicks"`
	HighestCombo int64 `bson:"highest_combo" json:"highestCombo"`
}
