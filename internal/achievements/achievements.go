// Package achievements holds the fixed achievement catalog and the pure
// evaluation logic that decides which entries a stats report unlocks.
package achievements

// Achievement is one immutable catalog entry.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int64  `json:"points"`
}

// Catalog ids.
const (
	FirstClick  = "first_click"
	SpeedDemon  = "speed_demon"
	Persistent  = "persistent"
	ComboMaster = "combo_master"
	PremiumUser = "premium_user"
	AdDestroyer = "ad_destroyer"
)

// Catalog is the full achievement set in declaration order. Grants are
// appended in this order. Only first_click, persistent and combo_master
// have evaluation rules; the other three entries are catalog data with no
// trigger wired yet.
var Catalog = []Achievement{
	{ID: FirstClick, Name: "First Click", Description: "Click the button for the first time", Points: 10},
	{ID: SpeedDemon, Name: "Speed Demon", Description: "Click 10 times in 5 seconds", Points: 50},
	{ID: Persistent, Name: "Persistent Clicker", Description: "Reach 100 clicks", Points: 100},
	{ID: ComboMaster, Name: "Combo Master", Description: "Achieve a 20x combo", Points: 200},
	{ID: PremiumUser, Name: "Premium Supporter", Description: "Subscribe to premium features", Points: 500},
	{ID: AdDestroyer, Name: "Ad Destroyer", Description: "Remove all ads through achievements", Points: 300},
}

var byID = func() map[string]Achievement {
	m := make(map[string]Achievement, len(Catalog))
	for _, a := range Catalog {
		m[a.ID] = a
	}
	return m
}()

// ByID looks up a catalog entry by its stable id.
func ByID(id string) (Achievement, bool) {
	a, ok := byID[id]
	return a, ok
}

// Evaluate returns the catalog entries newly satisfied by the reported
// activity, in catalog order, excluding ids already in the unlocked set.
// clicks is the total click count after this update; combo is the streak
// reported with it. Re-evaluating the same snapshot against an unchanged
// unlocked set yields an empty result.
func Evaluate(unlocked map[string]bool, clicks, combo int64) []Achievement {
	var newOnes []Achievement

	if clicks == 1 && !unlocked[FirstClick] {
		newOnes = append(newOnes, byID[FirstClick])
	}
	if clicks >= 100 && !unlocked[Persistent] {
		newOnes = append(newOnes, byID[Persistent])
	}
	if combo >= 20 && !unlocked[ComboMaster] {
		newOnes = append(newOnes, byID[ComboMaster])
	}

	return newOnes
}

// Points sums the point values of the given entries.
func Points(entries []Achievement) int64 {
	var sum int64
	for _, a := range entries {
		sum += a.Points
	}
	return sum
}
