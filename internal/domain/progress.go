package domain

// Progress is one day's activity record. Once created it is only ever
// extended or flipped to true; the flags never go back to false. Word ids
// are the one exception: they support removal (unmark).
type Progress struct {
	Date             DayKey
	CompletedWordIDs []string
	PodcastListened  bool
	QuizCompleted    bool
}

// HasWord reports whether wordID was marked learned on this day.
func (p Progress) HasWord(wordID string) bool {
	for _, id := range p.CompletedWordIDs {
		if id == wordID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so snapshots never alias stored slices.
func (p Progress) Clone() Progress {
	out := p
	if p.CompletedWordIDs != nil {
		out.CompletedWordIDs = append([]string(nil), p.CompletedWordIDs...)
	}
	return out
}

// ProgressUpdate is a partial progress record. Nil fields are left
// untouched by the store; set fields replace the stored value. Stores must
// merge, never destructively overwrite unsupplied fields.
type ProgressUpdate struct {
	CompletedWordIDs *[]string
	PodcastListened  *bool
	QuizCompleted    *bool
}

// Apply merges the update into an existing record for the given day.
func (u ProgressUpdate) Apply(existing *Progress, day DayKey) Progress {
	merged := Progress{Date: day}
	if existing != nil {
		merged = existing.Clone()
		merged.Date = day
	}
	if u.CompletedWordIDs != nil {
		merged.CompletedWordIDs = append([]string(nil), (*u.CompletedWordIDs)...)
	}
	if u.PodcastListened != nil {
		merged.PodcastListened = *u.PodcastListened
	}
	if u.QuizCompleted != nil {
		merged.QuizCompleted = *u.QuizCompleted
	}
	return merged
}

// StreakState is the stored streak counter together with the date of the
// last qualifying action. Count is the number of consecutive active days
// ending at LastActive. The zero value means "no activity yet".
type StreakState struct {
	Count      int
	LastActive DayKey
}
