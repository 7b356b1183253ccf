package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	"github.com/sirupsen/logrus"
)

// PremiumExpirySweeper demotes users whose premium period has ended. The
// subscription flow only ever sets the expiry; this job is what enforces
// it.
type PremiumExpirySweeper struct {
	store services.UserStore
}

func NewPremiumExpirySweeper(store services.UserStore) *PremiumExpirySweeper {
	return &PremiumExpirySweeper{store: store}
}

// Run clears the premium flag on every account past its expiry.
func (s *PremiumExpirySweeper) Run(ctx context.Context) error {
	demoted, err := s.store.ClearExpiredPremium(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("premium expiry sweep failed: %v", err)
	}

	if demoted > 0 {
		logrus.WithField("demoted", demoted).Info("Premium expiry sweep completed")
	}
	return nil
}
