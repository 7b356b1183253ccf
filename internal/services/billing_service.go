package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CardToken is the payment-method token forwarded by the client.
type CardToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SubscriptionInfo reports what the processor created.
type SubscriptionInfo struct {
	CustomerID     string
	SubscriptionID string
	PeriodEnd      time.Time
}

// PaymentProcessor is the external billing service. billing.StripeClient
// implements it.
type PaymentProcessor interface {
	CreateSubscription(ctx context.Context, card CardToken) (*SubscriptionInfo, error)
}

// BillingService upgrades accounts to premium after the processor
// confirms a subscription. There is no idempotency guard: re-posting the
// same token creates another downstream subscription.
type BillingService struct {
	store     UserStore
	processor PaymentProcessor
}

func NewBillingService(store UserStore, processor PaymentProcessor) *BillingService {
	return &BillingService{store: store, processor: processor}
}

// Subscribe creates the downstream subscription and marks the user
// premium until the reported billing-period end. A processor success
// followed by a failed local save leaves the two sides inconsistent;
// there is no compensation step.
func (s *BillingService) Subscribe(ctx context.Context, userID string, card CardToken) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %v", err)
	}

	sub, err := s.processor.CreateSubscription(ctx, card)
	if err != nil {
		logrus.WithError(err).Error("Payment processor rejected subscription")
		return fmt.Errorf("failed to create subscription: %v", err)
	}

	err = s.store.UpdateUser(ctx, objID, bson.M{
		"is_premium":     true,
		"premium_expiry": sub.PeriodEnd,
		"updated_at":     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark user premium: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID":         userID,
		"subscriptionID": sub.SubscriptionID,
		"periodEnd":      sub.PeriodEnd,
	}).Info("User upgraded to premium")
	return nil
}
