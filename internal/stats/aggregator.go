// Package stats merges incremental click reports into a user's cumulative
// and per-day stats record.
package stats

import (
	"time"

	"github.com/Lord-Boros/the-forbidden-button/internal/models"
)

// Apply merges one incremental report into s. The per-day bucket is keyed
// by the server-local calendar day of now; at most one bucket exists per
// day. A session spanning midnight books all its clicks to the day active
// when the call is made.
func Apply(s *models.Stats, clicksDelta, combo int64, now time.Time) {
	s.Clicks += clicksDelta
	if combo > s.HighestCombo {
		s.HighestCombo = combo
	}

	// Stored dates may come back from the database in UTC; compare
	// calendar days in the caller's zone, not raw instants.
	today := Midnight(now)
	for i := range s.ClicksPerDay {
		if Midnight(s.ClicksPerDay[i].Date.In(now.Location())).Equal(today) {
			s.ClicksPerDay[i].Count += clicksDelta
			return
		}
	}
	s.ClicksPerDay = append(s.ClicksPerDay, models.DailyClicks{Date: today, Count: clicksDelta})
}

// Midnight truncates t to midnight in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
