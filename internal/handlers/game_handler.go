package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lord-Boros/the-forbidden-button/internal/achievements"
	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	"github.com/Lord-Boros/the-forbidden-button/pkg/middleware"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// GameHandler handles the authenticated game flows plus the public
// leaderboard.
type GameHandler struct {
	Users     *services.UserService
	Game      *services.GameService
	Analytics *services.AnalyticsService
}

func NewGameHandler(users *services.UserService, game *services.GameService, analytics *services.AnalyticsService) *GameHandler {
	return &GameHandler{
		Users:     users,
		Game:      game,
		Analytics: analytics,
	}
}

// currentUser loads the account behind the verified claims.
func (h *GameHandler) currentUser(r *http.Request) (*models.User, error) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return nil, fmt.Errorf("no authenticated user")
	}
	return h.Users.GetUser(r.Context(), claims.UserID)
}

// CheckAchievementsHandler evaluates the reported snapshot and grants
// whatever is newly satisfied.
func (h *GameHandler) CheckAchievementsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve user for achievement check")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Clicks int64 `json:"clicks"`
		Combo  int64 `json:"combo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid achievement check payload")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	newOnes, totalPoints, err := h.Game.CheckAchievements(r.Context(), user, req.Clicks, req.Combo)
	if err != nil {
		log.WithError(err).Error("Achievement check failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(newOnes) > 0 {
		h.Analytics.TrackEvent(r.Context(), user.ID, models.EventAchievementUnlocked, bson.M{"achievements": newOnes})
	}

	if newOnes == nil {
		newOnes = []achievements.Achievement{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"newAchievements": newOnes,
		"totalPoints":     totalPoints,
	})
}

// SubmitStatsHandler merges an incremental click report and returns the
// full updated stats record.
func (h *GameHandler) SubmitStatsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve user for stats submit")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Clicks          int64 `json:"clicks"`
		Combo           int64 `json:"combo"`
		SessionDuration int64 `json:"sessionDuration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid stats payload")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := h.Game.SubmitStats(r.Context(), user, req.Clicks, req.Combo)
	if err != nil {
		log.WithError(err).Error("Stats submit failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Analytics.TrackEvent(r.Context(), user.ID, models.EventStatsUpdated, bson.M{
		"clicks":          req.Clicks,
		"combo":           req.Combo,
		"sessionDuration": req.SessionDuration,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   updated,
	})
}

// GetProfileHandler returns the user record (credential excluded by the
// model's json tags) plus the user's event counts grouped by type.
func (h *GameHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve user for profile")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	counts, err := h.Analytics.CountByUser(r.Context(), user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate profile events")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if counts == nil {
		counts = []models.EventCount{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"stats": counts,
	})
}

// UpdatePreferencesHandler replaces the preferences record wholesale.
// Fields omitted from the body decode as zero values and overwrite what
// was stored.
func (h *GameHandler) UpdatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve user for preferences update")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		log.WithError(err).Warn("Invalid preferences payload")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	saved, err := h.Users.UpdatePreferences(r.Context(), user.ID, prefs)
	if err != nil {
		log.WithError(err).Error("Preferences update failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Analytics.TrackEvent(r.Context(), user.ID, models.EventPreferencesUpdated, bson.M{
		"theme":         saved.Theme,
		"effects":       saved.Effects,
		"notifications": saved.Notifications,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"preferences": saved,
	})
}

// LeaderboardHandler returns the top players by click count. Public.
func (h *GameHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Game.Leaderboard(r.Context())
	if err != nil {
		log.WithError(err).Error("Leaderboard query failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}
