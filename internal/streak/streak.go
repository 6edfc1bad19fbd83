// Package streak holds the one place where day-difference arithmetic is
// allowed. All other packages must derive streaks through Compute.
package streak

import "ieltslearn/internal/domain"

// Compute derives the new streak count after a qualifying action on the
// day `today`, given the stored count and the date of the previous
// qualifying action.
//
//   - lastActive absent: 1 (first-ever qualifying action)
//   - same day: current, unchanged (already active today)
//   - next day: current + 1
//   - gap of more than one day: 1 (today's action starts a new streak)
//   - clock moved backward: current, unchanged
//
// Pure function, no I/O.
func Compute(current int, lastActive, today domain.DayKey) int {
	if lastActive.IsZero() {
		return 1
	}
	switch diff := domain.DaysBetween(lastActive, today); {
	case diff == 0:
		return current
	case diff == 1:
		return current + 1
	case diff > 1:
		return 1
	default:
		return current
	}
}
