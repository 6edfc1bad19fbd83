package testutil

import (
	"sync"
	"time"

	"ieltslearn/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FixedClock returns a clock pinned to midday of the given day key.
func FixedClock(day domain.DayKey) func() time.Time {
	t := day.Time().Add(12 * time.Hour)
	return func() time.Time { return t }
}

// MemStore is an in-memory Store + ProfileStore with real merge
// semantics, for exercising ledger behavior end to end without SQL.
type MemStore struct {
	mu sync.Mutex

	Goal        domain.Goal
	ProgressMap map[domain.DayKey]domain.Progress
	Streak      domain.StreakState
	Profile     *domain.Profile

	// FailWith makes every operation fail when set.
	FailWith error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{ProgressMap: make(map[domain.DayKey]domain.Progress)}
}

func (m *MemStore) ReadGoal() (domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return domain.GoalUnset, m.FailWith
	}
	return m.Goal, nil
}

func (m *MemStore) WriteGoal(goal domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Goal = goal
	return nil
}

func (m *MemStore) ReadProgress(day domain.DayKey) (*domain.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	p, ok := m.ProgressMap[day]
	if !ok {
		return nil, nil
	}
	clone := p.Clone()
	return &clone, nil
}

func (m *MemStore) WriteProgress(day domain.DayKey, update domain.ProgressUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	var existing *domain.Progress
	if p, ok := m.ProgressMap[day]; ok {
		existing = &p
	}
	m.ProgressMap[day] = update.Apply(existing, day)
	return nil
}

func (m *MemStore) ReadStreakState() (domain.StreakState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return domain.StreakState{}, m.FailWith
	}
	return m.Streak, nil
}

func (m *MemStore) WriteStreakState(state domain.StreakState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Streak = state
	return nil
}

func (m *MemStore) ReadAllProgress() (map[domain.DayKey]domain.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	out := make(map[domain.DayKey]domain.Progress, len(m.ProgressMap))
	for k, v := range m.ProgressMap {
		out[k] = v.Clone()
	}
	return out, nil
}

func (m *MemStore) ReadProfile() (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if m.Profile == nil {
		return nil, nil
	}
	clone := *m.Profile
	return &clone, nil
}

func (m *MemStore) WriteProfile(update domain.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.Profile == nil {
		m.Profile = &domain.Profile{}
	}
	if update.Email != nil {
		m.Profile.Email = *update.Email
	}
	if update.DisplayName != nil {
		m.Profile.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		m.Profile.PhotoURL = *update.PhotoURL
	}
	if update.DailyGoal != nil {
		m.Profile.DailyGoal = *update.DailyGoal
	}
	if update.Streak != nil {
		m.Profile.Streak = *update.Streak
	}
	if update.LastActive != nil {
		m.Profile.LastActive = *update.LastActive
	}
	return nil
}
