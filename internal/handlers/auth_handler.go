package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lord-Boros/the-forbidden-button/internal/config"
	"github.com/Lord-Boros/the-forbidden-button/internal/models"
	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	jwtutil "github.com/Lord-Boros/the-forbidden-button/pkg/jwt"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	Users     *services.UserService
	Analytics *services.AnalyticsService
	Config    *config.Config
}

func NewAuthHandler(users *services.UserService, analytics *services.AnalyticsService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Users:     users,
		Analytics: analytics,
		Config:    cfg,
	}
}

// RegisterHandler creates an account and returns a token plus the public
// profile fields. The credential never leaves the server.
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode registration request")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.Users.RegisterUser(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		log.WithError(err).Warn("Registration failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Analytics.TrackEvent(r.Context(), user.ID, models.EventUserRegistered, bson.M{"email": user.Email})

	log.WithField("userID", user.ID.Hex()).Info("User registered")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

// LoginHandler verifies credentials and returns a fresh token.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.Users.Login(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"email": credentials.Email,
			"error": err,
		}).Warn("Authentication failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Analytics.TrackEvent(r.Context(), user.ID, models.EventUserLogin, bson.M{"sessionCount": user.Stats.SessionCount})

	log.WithField("userID", user.ID.Hex()).Info("User logged in")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}
