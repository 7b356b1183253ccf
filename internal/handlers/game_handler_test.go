package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lord-Boros/the-forbidden-button/internal/achievements"
	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	jwtutil "github.com/Lord-Boros/the-forbidden-button/pkg/jwt"
	"github.com/Lord-Boros/the-forbidden-button/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameEnv() (*GameHandler, *fakeUserStore, *fakeEventStore) {
	store := newFakeUserStore()
	events := &fakeEventStore{}
	handler := NewGameHandler(
		services.NewUserService(store),
		services.NewGameService(store),
		services.NewAnalyticsService(events),
	)
	return handler, store, events
}

// authedRequest builds a request carrying verified claims for the user,
// as the auth middleware would after token verification.
func authedRequest(method, path, body string, user *models.User) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	claims := &jwtutil.Claims{UserID: user.ID.Hex(), Email: user.Email}
	return req.WithContext(middleware.WithUser(req.Context(), claims))
}

func TestCheckAchievementsHandlerFreshUser(t *testing.T) {
	handler, store, events := newGameEnv()
	user := store.seed(&models.User{Email: "a@x.com"})

	req := authedRequest(http.MethodPost, "/api/check-achievements", `{"clicks":1,"combo":1}`, user)
	rr := httptest.NewRecorder()

	handler.CheckAchievementsHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		NewAchievements []achievements.Achievement `json:"newAchievements"`
		TotalPoints     int64                      `json:"totalPoints"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.NewAchievements, 1)
	assert.Equal(t, achievements.FirstClick, resp.NewAchievements[0].ID)
	assert.Equal(t, int64(10), resp.TotalPoints)

	assert.Contains(t, events.typesSeen(), models.EventAchievementUnlocked)
}

func TestCheckAchievementsHandlerNothingNew(t *testing.T) {
	handler, store, events := newGameEnv()
	user := store.seed(&models.User{Email: "a@x.com"})

	req := authedRequest(http.MethodPost, "/api/check-achievements", `{"clicks":2,"combo":3}`, user)
	rr := httptest.NewRecorder()

	handler.CheckAchievementsHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// Empty set still returns a JSON array, and no unlock event fires.
	assert.Contains(t, rr.Body.String(), `"newAchievements":[]`)
	assert.NotContains(t, events.typesSeen(), models.EventAchievementUnlocked)
}

func TestSubmitStatsHandler(t *testing.T) {
	handler, store, events := newGameEnv()
	user := store.seed(&models.User{Email: "a@x.com"})

	req := authedRequest(http.MethodPost, "/api/stats", `{"clicks":5,"combo":7,"sessionDuration":120}`, user)
	rr := httptest.NewRecorder()

	handler.SubmitStatsHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool         `json:"success"`
		Stats   models.Stats `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Stats.Clicks)
	assert.Equal(t, int64(7), resp.Stats.HighestCombo)
	require.Len(t, resp.Stats.ClicksPerDay, 1)

	// STATS_UPDATED fires unconditionally.
	assert.Equal(t, []string{models.EventStatsUpdated}, events.typesSeen())
}

func TestGetProfileHandlerHidesCredential(t *testing.T) {
	handler, store, events := newGameEnv()
	user := store.seed(&models.User{
		Email:          "a@x.com",
		HashedPassword: "$2a$10$secret-hash-material",
	})
	events.events = append(events.events, &models.AnalyticsEvent{
		EventType: models.EventUserLogin,
		UserID:    user.ID,
	})

	req := authedRequest(http.MethodGet, "/api/profile", "", user)
	rr := httptest.NewRecorder()

	handler.GetProfileHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.NotContains(t, body, "secret-hash-material")

	var resp struct {
		User  models.User         `json:"user"`
		Stats []models.EventCount `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "a@x.com", resp.User.Email)
	require.Len(t, resp.Stats, 1)
	assert.Equal(t, models.EventUserLogin, resp.Stats[0].EventType)
	assert.Equal(t, int64(1), resp.Stats[0].Count)
}

func TestUpdatePreferencesHandlerOverwritesOmittedFields(t *testing.T) {
	handler, store, _ := newGameEnv()
	user := store.seed(&models.User{
		Email:       "a@x.com",
		Preferences: models.DefaultPreferences(),
	})

	// Only the theme is sent; effects and notifications decode as false
	// and the wholesale PUT stores exactly that.
	req := authedRequest(http.MethodPut, "/api/preferences", `{"theme":"dark"}`, user)
	rr := httptest.NewRecorder()

	handler.UpdatePreferencesHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success     bool               `json:"success"`
		Preferences models.Preferences `json:"preferences"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "dark", resp.Preferences.Theme)
	assert.False(t, resp.Preferences.Effects)
	assert.False(t, resp.Preferences.Notifications)
}

func TestLeaderboardHandler(t *testing.T) {
	handler, store, _ := newGameEnv()
	for i := 0; i < 15; i++ {
		store.top = append(store.top, models.LeaderboardEntry{
			Email: "u@x.com",
			Stats: models.LeaderboardStats{Clicks: int64(500 - i)},
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rr := httptest.NewRecorder()

	handler.LeaderboardHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []models.LeaderboardEntry
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
	assert.Len(t, entries, 10)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Stats.Clicks, entries[i].Stats.Clicks)
	}
}

func TestGameHandlersRejectMissingIdentity(t *testing.T) {
	handler, _, _ := newGameEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/stats", strings.NewReader(`{"clicks":1}`))
	rr := httptest.NewRecorder()

	handler.SubmitStatsHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
