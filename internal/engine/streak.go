package engine

import "time"

// DateLayout is the calendar-day format used for streak and quest stamps.
const DateLayout = "2006-01-02"

// nextStreak computes the streak transition for a completion happening
// "today":
//
//   - same calendar day as the last completion: unchanged;
//   - the day immediately after: +1;
//   - a gap of two or more days: one freeze is consumed to preserve the
//     streak, or the streak resets to 1 when none is available;
//   - very first completion ever: 1.
func nextStreak(streak, freezes int, lastCompleted string, now time.Time) (int, int) {
	today := now.Format(DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)

	switch {
	case lastCompleted == today:
		// Already counted today.
	case lastCompleted == yesterday:
		streak++
	case lastCompleted == "":
		streak = 1
	case streak > 0 && freezes > 0:
		freezes--
	default:
		streak = 1
	}
	if streak == 0 {
		streak = 1
	}
	return streak, freezes
}
