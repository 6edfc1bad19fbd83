package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"ieltslearn/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStore_ReadGoal(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedGoal  domain.Goal
		expectedError bool
	}{
		{
			name:         "goal set",
			mockRows:     sqlmock.NewRows([]string{"daily_goal"}).AddRow(20),
			expectedGoal: domain.Goal(20),
		},
		{
			name:         "goal column is null",
			mockRows:     sqlmock.NewRows([]string{"daily_goal"}).AddRow(nil),
			expectedGoal: domain.GoalUnset,
		},
		{
			name:         "profile row absent",
			mockError:    sql.ErrNoRows,
			expectedGoal: domain.GoalUnset,
		},
		{
			name:          "query error",
			mockError:     errors.New("connection refused"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			store := NewStore(db, "tg-123")

			query := "SELECT daily_goal FROM users WHERE uid = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("tg-123").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("tg-123").WillReturnRows(tt.mockRows)
			}

			goal, err := store.ReadGoal()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedGoal, goal)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_WriteGoal(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	mock.ExpectExec("INSERT INTO users").
		WithArgs("tg-123", 10).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteGoal(domain.Goal(10))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadProgress(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.Progress
		expectedError bool
	}{
		{
			name: "record present",
			mockRows: sqlmock.NewRows([]string{"date", "completed_word_ids", "podcast_listened", "quiz_completed"}).
				AddRow("2024-01-02", "{1,2}", true, false),
			expected: &domain.Progress{
				Date:             "2024-01-02",
				CompletedWordIDs: []string{"1", "2"},
				PodcastListened:  true,
			},
		},
		{
			name:      "record absent",
			mockError: sql.ErrNoRows,
			expected:  nil,
		},
		{
			name:          "query error",
			mockError:     errors.New("connection refused"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			store := NewStore(db, "tg-123")

			query := "SELECT date, completed_word_ids, podcast_listened, quiz_completed"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("tg-123", "2024-01-02").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("tg-123", "2024-01-02").WillReturnRows(tt.mockRows)
			}

			progress, err := store.ReadProgress("2024-01-02")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, progress)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_WriteProgress_WordsOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	ids := []string{"1", "2"}

	// Only the supplied column appears in the upsert's SET clause
	mock.ExpectExec("INSERT INTO progress \\(uid, date, completed_word_ids\\).*DO UPDATE SET completed_word_ids = EXCLUDED.completed_word_ids").
		WithArgs("tg-123", "2024-01-02", pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteProgress("2024-01-02", domain.ProgressUpdate{CompletedWordIDs: &ids})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteProgress_FlagOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	listened := true

	mock.ExpectExec("INSERT INTO progress \\(uid, date, podcast_listened\\).*DO UPDATE SET podcast_listened = EXCLUDED.podcast_listened").
		WithArgs("tg-123", "2024-01-02", true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteProgress("2024-01-02", domain.ProgressUpdate{PodcastListened: &listened})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteProgress_EmptyUpdateCreatesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	// No supplied fields: the row is created but an existing one is untouched
	mock.ExpectExec("INSERT INTO progress \\(uid, date\\).*DO NOTHING").
		WithArgs("tg-123", "2024-01-02").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteProgress("2024-01-02", domain.ProgressUpdate{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadStreakState(t *testing.T) {
	tests := []struct {
		name      string
		mockRows  *sqlmock.Rows
		mockError error
		expected  domain.StreakState
	}{
		{
			name: "state present",
			mockRows: sqlmock.NewRows([]string{"streak", "last_active_date"}).
				AddRow(5, "2024-01-01"),
			expected: domain.StreakState{Count: 5, LastActive: "2024-01-01"},
		},
		{
			name: "null columns",
			mockRows: sqlmock.NewRows([]string{"streak", "last_active_date"}).
				AddRow(nil, nil),
			expected: domain.StreakState{},
		},
		{
			name:      "profile row absent",
			mockError: sql.ErrNoRows,
			expected:  domain.StreakState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			store := NewStore(db, "tg-123")

			query := "SELECT streak, last_active_date FROM users WHERE uid = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("tg-123").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("tg-123").WillReturnRows(tt.mockRows)
			}

			state, err := store.ReadStreakState()

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, state)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_WriteStreakState(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	mock.ExpectExec("INSERT INTO users").
		WithArgs("tg-123", 6, "2024-01-02").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteStreakState(domain.StreakState{Count: 6, LastActive: "2024-01-02"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadAllProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	rows := sqlmock.NewRows([]string{"date", "completed_word_ids", "podcast_listened", "quiz_completed"}).
		AddRow("2024-01-01", "{1}", true, true).
		AddRow("2024-01-02", "{2,3}", false, false)

	mock.ExpectQuery("SELECT date, completed_word_ids, podcast_listened, quiz_completed").
		WithArgs("tg-123").
		WillReturnRows(rows)

	progress, err := store.ReadAllProgress()

	assert.NoError(t, err)
	assert.Len(t, progress, 2)
	assert.Equal(t, domain.Progress{
		Date:             "2024-01-01",
		CompletedWordIDs: []string{"1"},
		PodcastListened:  true,
		QuizCompleted:    true,
	}, progress["2024-01-01"])
	assert.Equal(t, []string{"2", "3"}, progress["2024-01-02"].CompletedWordIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"uid", "email", "display_name", "photo_url",
		"daily_goal", "streak", "last_active_date", "created_at",
	}).AddRow("tg-123", "user@example.com", "Test User", nil, 20, 5, "2024-01-01", createdAt)

	mock.ExpectQuery("SELECT uid, email, display_name, photo_url").
		WithArgs("tg-123").
		WillReturnRows(rows)

	profile, err := store.ReadProfile()

	assert.NoError(t, err)
	assert.Equal(t, &domain.Profile{
		UID:         "tg-123",
		Email:       "user@example.com",
		DisplayName: "Test User",
		DailyGoal:   domain.Goal(20),
		Streak:      5,
		LastActive:  "2024-01-01",
		CreatedAt:   createdAt,
	}, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadProfile_Absent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	mock.ExpectQuery("SELECT uid, email, display_name, photo_url").
		WithArgs("tg-123").
		WillReturnError(sql.ErrNoRows)

	profile, err := store.ReadProfile()

	assert.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteProfile_PartialUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	count := 6
	lastActive := domain.DayKey("2024-01-02")

	// Only streak and last_active_date are supplied; other columns are
	// absent from the statement entirely
	mock.ExpectExec("INSERT INTO users \\(uid, streak, last_active_date\\).*DO UPDATE SET streak = EXCLUDED.streak, last_active_date = EXCLUDED.last_active_date").
		WithArgs("tg-123", 6, "2024-01-02").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteProfile(domain.ProfileUpdate{Streak: &count, LastActive: &lastActive})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteProfile_EmptyUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewStore(db, "tg-123")

	mock.ExpectExec("INSERT INTO users \\(uid\\).*DO NOTHING").
		WithArgs("tg-123").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.WriteProfile(domain.ProfileUpdate{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
