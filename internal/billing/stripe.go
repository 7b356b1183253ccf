// Package billing implements the payment processor against Stripe.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/customer"
	"github.com/stripe/stripe-go/v78/subscription"
)

// StripeClient creates billing customers and subscriptions via the Stripe
// API.
type StripeClient struct {
	priceID string
}

// NewStripeClient sets the API key process-wide and returns a client
// bound to the configured price.
func NewStripeClient(secretKey, priceID string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{priceID: priceID}
}

// CreateSubscription creates a customer from the card token and attaches
// an active subscription, reporting the current billing-period end.
func (c *StripeClient) CreateSubscription(ctx context.Context, card services.CardToken) (*services.SubscriptionInfo, error) {
	custParams := &stripe.CustomerParams{
		Email:  stripe.String(card.Email),
		Source: stripe.String(card.ID),
	}
	custParams.Context = ctx

	cust, err := customer.New(custParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %v", err)
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(cust.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(c.priceID)},
		},
	}
	subParams.Context = ctx

	sub, err := subscription.New(subParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"customerID":     cust.ID,
		"subscriptionID": sub.ID,
	}).Info("Stripe subscription created")

	return &services.SubscriptionInfo{
		CustomerID:     cust.ID,
		SubscriptionID: sub.ID,
		PeriodEnd:      time.Unix(sub.CurrentPeriodEnd, 0),
	}, nil
}
