package testutil

import (
	"ieltslearn/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock for repository.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ReadGoal() (domain.Goal, error) {
	args := m.Called()
	return args.Get(0).(domain.Goal), args.Error(1)
}

func (m *MockStore) WriteGoal(goal domain.Goal) error {
	args := m.Called(goal)
	return args.Error(0)
}

func (m *MockStore) ReadProgress(day domain.DayKey) (*domain.Progress, error) {
	args := m.Called(day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockStore) WriteProgress(day domain.DayKey, update domain.ProgressUpdate) error {
	args := m.Called(day, update)
	return args.Error(0)
}

func (m *MockStore) ReadStreakState() (domain.StreakState, error) {
	args := m.Called()
	return args.Get(0).(domain.StreakState), args.Error(1)
}

func (m *MockStore) WriteStreakState(state domain.StreakState) error {
	args := m.Called(state)
	return args.Error(0)
}

func (m *MockStore) ReadAllProgress() (map[domain.DayKey]domain.Progress, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.DayKey]domain.Progress), args.Error(1)
}

// MockProfileStore is a mock for repository.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) ReadProfile() (*domain.Profile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileStore) WriteProfile(update domain.ProfileUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}
