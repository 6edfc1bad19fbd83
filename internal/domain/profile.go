package domain

import "time"

// Account identifies a signed-in user. ID is opaque to the ledger; the
// remote store uses it to scope all reads and writes.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Profile is the remote-scope user document: account fields plus the goal
// and streak mirrored for the account. Created on first goal-set, updated
// on every qualifying action.
type Profile struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	DailyGoal   Goal
	Streak      int
	LastActive  DayKey
	CreatedAt   time.Time
}

// ProfileUpdate is a partial profile write. Nil fields are preserved;
// remote writes merge at the field level, never replace the document.
type ProfileUpdate struct {
	Email       *string
	DisplayName *string
	PhotoURL    *string
	DailyGoal   *Goal
	Streak      *int
	LastActive  *DayKey
}
