package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressUpdate_Apply(t *testing.T) {
	listened := true
	words := []string{"3"}

	tests := []struct {
		name     string
		existing *Progress
		update   ProgressUpdate
		expected Progress
	}{
		{
			name:     "empty update on absent record creates empty record",
			existing: nil,
			update:   ProgressUpdate{},
			expected: Progress{Date: "2024-01-02"},
		},
		{
			name:     "flag update preserves existing word ids",
			existing: &Progress{Date: "2024-01-02", CompletedWordIDs: []string{"1", "2"}},
			update:   ProgressUpdate{PodcastListened: &listened},
			expected: Progress{
				Date:             "2024-01-02",
				CompletedWordIDs: []string{"1", "2"},
				PodcastListened:  true,
			},
		},
		{
			name: "word ids update preserves existing flags",
			existing: &Progress{
				Date:            "2024-01-02",
				PodcastListened: true,
				QuizCompleted:   true,
			},
			update: ProgressUpdate{CompletedWordIDs: &words},
			expected: Progress{
				Date:             "2024-01-02",
				CompletedWordIDs: []string{"3"},
				PodcastListened:  true,
				QuizCompleted:    true,
			},
		},
		{
			name:     "supplied fields replace stored values",
			existing: &Progress{Date: "2024-01-02", CompletedWordIDs: []string{"1", "2"}},
			update:   ProgressUpdate{CompletedWordIDs: &words},
			expected: Progress{Date: "2024-01-02", CompletedWordIDs: []string{"3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.update.Apply(tt.existing, "2024-01-02")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProgressUpdate_ApplyDoesNotAliasInput(t *testing.T) {
	ids := []string{"1"}
	update := ProgressUpdate{CompletedWordIDs: &ids}

	result := update.Apply(nil, "2024-01-02")
	ids[0] = "mutated"

	assert.Equal(t, []string{"1"}, result.CompletedWordIDs)
}

func TestProgress_HasWord(t *testing.T) {
	p := Progress{CompletedWordIDs: []string{"1", "7"}}

	assert.True(t, p.HasWord("1"))
	assert.True(t, p.HasWord("7"))
	assert.False(t, p.HasWord("2"))
	assert.False(t, Progress{}.HasWord("1"))
}

func TestProgress_CloneIsIndependent(t *testing.T) {
	p := Progress{Date: "2024-01-02", CompletedWordIDs: []string{"1"}}
	clone := p.Clone()
	clone.CompletedWordIDs[0] = "mutated"

	assert.Equal(t, []string{"1"}, p.CompletedWordIDs)
}

func TestSnapshot_TodayProgress(t *testing.T) {
	snap := Snapshot{
		TodayKey: "2024-01-02",
		Progress: map[DayKey]Progress{
			"2024-01-01": {Date: "2024-01-01", CompletedWordIDs: []string{"1"}},
		},
	}

	// Absent today yields an empty record for today
	today := snap.TodayProgress()
	assert.Equal(t, DayKey("2024-01-02"), today.Date)
	assert.Empty(t, today.CompletedWordIDs)
	assert.Equal(t, 0, snap.WordsLearnedToday())

	snap.Progress["2024-01-02"] = Progress{Date: "2024-01-02", CompletedWordIDs: []string{"1", "2"}}
	assert.Equal(t, 2, snap.WordsLearnedToday())
}

func TestGoal_Valid(t *testing.T) {
	assert.True(t, Goal(10).Valid())
	assert.True(t, Goal(20).Valid())
	assert.True(t, Goal(30).Valid())
	assert.False(t, GoalUnset.Valid())
	assert.False(t, Goal(15).Valid())
	assert.False(t, Goal(-10).Valid())
}
