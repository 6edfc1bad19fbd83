package sqlite

import (
	"testing"

	"ieltslearn/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *KVStore {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewKVStore(db, "chat-1", zap.NewNop())
}

func TestKVStore_GoalRoundTrip(t *testing.T) {
	store := newTestStore(t)

	goal, err := store.ReadGoal()
	assert.NoError(t, err)
	assert.Equal(t, domain.GoalUnset, goal)

	require.NoError(t, store.WriteGoal(domain.Goal(20)))

	goal, err = store.ReadGoal()
	assert.NoError(t, err)
	assert.Equal(t, domain.Goal(20), goal)

	// Overwrite, not append
	require.NoError(t, store.WriteGoal(domain.Goal(30)))

	goal, err = store.ReadGoal()
	assert.NoError(t, err)
	assert.Equal(t, domain.Goal(30), goal)
}

func TestKVStore_ReadProgress_Absent(t *testing.T) {
	store := newTestStore(t)

	progress, err := store.ReadProgress("2024-01-02")

	assert.NoError(t, err)
	assert.Nil(t, progress)
}

func TestKVStore_WriteProgress_MergesFields(t *testing.T) {
	store := newTestStore(t)

	ids := []string{"1", "2"}
	listened := true

	require.NoError(t, store.WriteProgress("2024-01-02", domain.ProgressUpdate{CompletedWordIDs: &ids}))
	require.NoError(t, store.WriteProgress("2024-01-02", domain.ProgressUpdate{PodcastListened: &listened}))

	progress, err := store.ReadProgress("2024-01-02")

	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, []string{"1", "2"}, progress.CompletedWordIDs)
	assert.True(t, progress.PodcastListened)
	assert.False(t, progress.QuizCompleted)
}

func TestKVStore_WriteProgress_OtherDaysUntouched(t *testing.T) {
	store := newTestStore(t)

	dayOne := []string{"1"}
	dayTwo := []string{"2", "3"}

	require.NoError(t, store.WriteProgress("2024-01-01", domain.ProgressUpdate{CompletedWordIDs: &dayOne}))
	require.NoError(t, store.WriteProgress("2024-01-02", domain.ProgressUpdate{CompletedWordIDs: &dayTwo}))

	progress, err := store.ReadProgress("2024-01-01")

	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, []string{"1"}, progress.CompletedWordIDs)
}

func TestKVStore_StreakRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state, err := store.ReadStreakState()
	assert.NoError(t, err)
	assert.Equal(t, domain.StreakState{}, state)

	require.NoError(t, store.WriteStreakState(domain.StreakState{Count: 6, LastActive: "2024-01-02"}))

	state, err = store.ReadStreakState()
	assert.NoError(t, err)
	assert.Equal(t, domain.StreakState{Count: 6, LastActive: "2024-01-02"}, state)
}

func TestKVStore_ReadAllProgress(t *testing.T) {
	store := newTestStore(t)

	ids := []string{"1"}
	listened := true
	completed := true

	require.NoError(t, store.WriteProgress("2024-01-01", domain.ProgressUpdate{CompletedWordIDs: &ids}))
	require.NoError(t, store.WriteProgress("2024-01-01", domain.ProgressUpdate{QuizCompleted: &completed}))
	// A day that only ever saw a podcast flag still gets a record
	require.NoError(t, store.WriteProgress("2024-01-02", domain.ProgressUpdate{PodcastListened: &listened}))

	all, err := store.ReadAllProgress()

	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, domain.Progress{
		Date:             "2024-01-01",
		CompletedWordIDs: []string{"1"},
		QuizCompleted:    true,
	}, all["2024-01-01"])
	assert.Equal(t, domain.Progress{
		Date:            "2024-01-02",
		PodcastListened: true,
	}, all["2024-01-02"])
}

func TestKVStore_NamespaceIsolation(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	first := NewKVStore(db, "chat-1", zap.NewNop())
	second := NewKVStore(db, "chat-2", zap.NewNop())

	require.NoError(t, first.WriteGoal(domain.Goal(10)))

	goal, err := second.ReadGoal()
	assert.NoError(t, err)
	assert.Equal(t, domain.GoalUnset, goal)

	ids := []string{"1"}
	require.NoError(t, first.WriteProgress("2024-01-02", domain.ProgressUpdate{CompletedWordIDs: &ids}))

	progress, err := second.ReadProgress("2024-01-02")
	assert.NoError(t, err)
	assert.Nil(t, progress)
}

func TestKVStore_CorruptValuesTreatedAsEmpty(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewKVStore(db, "chat-1", zap.NewNop())

	seed := func(key, value string) {
		_, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, "chat-1/"+key, value)
		require.NoError(t, err)
	}
	seed(keyDailyGoal, "not a number")
	seed(keyCompletedWords, "{broken json")
	seed(keyStreak, "NaN")

	goal, err := store.ReadGoal()
	assert.NoError(t, err)
	assert.Equal(t, domain.GoalUnset, goal)

	progress, err := store.ReadProgress("2024-01-02")
	assert.NoError(t, err)
	assert.Nil(t, progress)

	state, err := store.ReadStreakState()
	assert.NoError(t, err)
	assert.Equal(t, 0, state.Count)

	// The next write repairs the corrupt key
	ids := []string{"1"}
	require.NoError(t, store.WriteProgress("2024-01-02", domain.ProgressUpdate{CompletedWordIDs: &ids}))

	progress, err = store.ReadProgress("2024-01-02")
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, []string{"1"}, progress.CompletedWordIDs)
}
