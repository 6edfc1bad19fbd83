package domain

// Snapshot is the fully-materialized view of all ledger-managed state,
// published to consumers after each successful mutation. It is a value
// copy: consumers can hold it across ledger operations without observing
// later writes.
type Snapshot struct {
	DailyGoal    Goal
	Progress     map[DayKey]Progress
	Streak       int
	TodayKey     DayKey
	HasOnboarded bool
}

// TodayProgress returns today's record, or an empty record for today when
// none exists yet.
func (s Snapshot) TodayProgress() Progress {
	if p, ok := s.Progress[s.TodayKey]; ok {
		return p
	}
	return Progress{Date: s.TodayKey}
}

// WordsLearnedToday returns how many words were marked learned today.
func (s Snapshot) WordsLearnedToday() int {
	return len(s.TodayProgress().CompletedWordIDs)
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Progress = make(map[DayKey]Progress, len(s.Progress))
	for k, v := range s.Progress {
		out.Progress[k] = v.Clone()
	}
	return out
}
