package engine

import (
	"math"
	"time"

	"keyquest/internal/storage"
)

const (
	// XPPerLevel is the flat per-level XP requirement: level = xp/1000 + 1.
	XPPerLevel = 1000

	// BoostMultiplier scales lesson XP while a boost window is active.
	BoostMultiplier = 1.5

	// BoostDuration is added per purchased boost, extending from the later
	// of now and the current window end.
	BoostDuration = 10 * time.Minute
)

// LevelForXP derives the level from total XP. Level is never stored
// independently: it is recomputed on every XP change.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// BoostActive reports whether the boost window covers now.
func BoostActive(b storage.XPBoosts, now time.Time) bool {
	if b.ActiveUntil == "" {
		return false
	}
	until, err := time.Parse(time.RFC3339, b.ActiveUntil)
	if err != nil {
		return false
	}
	return now.Before(until)
}

// BoostedXP applies the multiplier to a base award when a boost is active,
// rounding to the nearest integer.
func BoostedXP(base int, b storage.XPBoosts, now time.Time) int {
	if !BoostActive(b, now) {
		return base
	}
	return int(math.Round(float64(base) * BoostMultiplier))
}

// ExtendBoost adds one boost purchase: the window grows by BoostDuration
// starting from max(now, activeUntil), so buying early never shortens an
// active boost.
func ExtendBoost(b storage.XPBoosts, now time.Time) storage.XPBoosts {
	start := now
	if b.ActiveUntil != "" {
		if until, err := time.Parse(time.RFC3339, b.ActiveUntil); err == nil && until.After(now) {
			start = until
		}
	}
	return storage.XPBoosts{
		Count:       b.Count + 1,
		ActiveUntil: start.Add(BoostDuration).Format(time.RFC3339),
	}
}
