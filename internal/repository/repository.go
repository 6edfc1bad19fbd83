package repository

import "ieltslearn/internal/domain"

// Store is the capability contract both backing stores satisfy so the
// ledger stays implementation-agnostic. Absent records are not errors:
// ReadGoal returns GoalUnset, ReadProgress returns nil, ReadStreakState
// returns the zero state.
type Store interface {
	ReadGoal() (domain.Goal, error)
	WriteGoal(goal domain.Goal) error

	// ReadProgress returns nil when no record exists for the day.
	ReadProgress(day domain.DayKey) (*domain.Progress, error)
	// WriteProgress merges the partial update into the day's record.
	// Fields not supplied in the update are preserved.
	WriteProgress(day domain.DayKey, update domain.ProgressUpdate) error

	ReadStreakState() (domain.StreakState, error)
	WriteStreakState(state domain.StreakState) error

	ReadAllProgress() (map[domain.DayKey]domain.Progress, error)
}

// ProfileStore is the extra capability of the remote (account-scoped)
// store. The local store has no profile; its scope is the device itself.
type ProfileStore interface {
	// ReadProfile returns nil when no profile document exists yet.
	ReadProfile() (*domain.Profile, error)
	// WriteProfile merges the partial update at the field level.
	WriteProfile(update domain.ProfileUpdate) error
}
