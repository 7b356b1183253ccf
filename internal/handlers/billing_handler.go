package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	log "github.com/sirupsen/logrus"
)

// BillingHandler handles the premium subscription endpoint.
type BillingHandler struct {
	Billing *services.BillingService
}

func NewBillingHandler(billing *services.BillingService) *BillingHandler {
	return &BillingHandler{Billing: billing}
}

// SubscribeHandler forwards the payment token to the processor and marks
// the target user premium. The user id comes from the body, not a
// bearer token.
func (h *BillingHandler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token  services.CardToken `json:"token"`
		UserID string             `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode subscribe request")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.Billing.Subscribe(r.Context(), req.UserID, req.Token); err != nil {
		log.WithFields(log.Fields{
			"userID": req.UserID,
			"error":  err,
		}).Error("Subscription failed")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
