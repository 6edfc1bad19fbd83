package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"ieltslearn/internal/domain"

	"github.com/lib/pq"
)

// Store implements repository.Store and repository.ProfileStore over
// Postgres, scoped to one account. All rows are keyed by the opaque
// account id captured at construction.
type Store struct {
	db  *sql.DB
	uid string
}

// NewStore creates a remote store bound to the given account.
func NewStore(db *sql.DB, uid string) *Store {
	return &Store{db: db, uid: uid}
}

// ReadGoal returns the account's daily goal, GoalUnset when no profile
// exists or no goal was chosen yet.
func (s *Store) ReadGoal() (domain.Goal, error) {
	var goal sql.NullInt64
	query := `SELECT daily_goal FROM users WHERE uid = $1`
	err := s.db.QueryRow(query, s.uid).Scan(&goal)

	if err == sql.ErrNoRows {
		return domain.GoalUnset, nil
	}
	if err != nil {
		return domain.GoalUnset, err
	}
	if !goal.Valid {
		return domain.GoalUnset, nil
	}
	return domain.Goal(goal.Int64), nil
}

// WriteGoal persists the daily goal, creating the profile row if needed.
func (s *Store) WriteGoal(goal domain.Goal) error {
	query := `
		INSERT INTO users (uid, daily_goal)
		VALUES ($1, $2)
		ON CONFLICT (uid)
		DO UPDATE SET daily_goal = EXCLUDED.daily_goal
	`
	_, err := s.db.Exec(query, s.uid, int(goal))
	return err
}

// ReadProgress returns the account's record for one day, nil when absent.
func (s *Store) ReadProgress(day domain.DayKey) (*domain.Progress, error) {
	var p domain.Progress
	var ids pq.StringArray
	query := `
		SELECT date, completed_word_ids, podcast_listened, quiz_completed
		FROM progress
		WHERE uid = $1 AND date = $2
	`
	err := s.db.QueryRow(query, s.uid, string(day)).Scan(
		&p.Date, &ids, &p.PodcastListened, &p.QuizCompleted,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.CompletedWordIDs = []string(ids)
	return &p, nil
}

// WriteProgress upserts the day's record, updating only the supplied
// fields so concurrent writers of different fields cannot clobber each
// other. An empty update still creates the (empty) row.
func (s *Store) WriteProgress(day domain.DayKey, update domain.ProgressUpdate) error {
	cols := []string{"uid", "date"}
	args := []interface{}{s.uid, string(day)}

	if update.CompletedWordIDs != nil {
		cols = append(cols, "completed_word_ids")
		args = append(args, pq.Array(*update.CompletedWordIDs))
	}
	if update.PodcastListened != nil {
		cols = append(cols, "podcast_listened")
		args = append(args, *update.PodcastListened)
	}
	if update.QuizCompleted != nil {
		cols = append(cols, "quiz_completed")
		args = append(args, *update.QuizCompleted)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var sets []string
	for _, col := range cols[2:] {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO progress (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(sets) == 0 {
		query += " ON CONFLICT (uid, date) DO NOTHING"
	} else {
		query += fmt.Sprintf(" ON CONFLICT (uid, date) DO UPDATE SET %s", strings.Join(sets, ", "))
	}

	_, err := s.db.Exec(query, args...)
	return err
}

// ReadStreakState returns the streak counter stored on the profile row.
func (s *Store) ReadStreakState() (domain.StreakState, error) {
	var count sql.NullInt64
	var lastActive sql.NullString
	query := `SELECT streak, last_active_date FROM users WHERE uid = $1`
	err := s.db.QueryRow(query, s.uid).Scan(&count, &lastActive)

	if err == sql.ErrNoRows {
		return domain.StreakState{}, nil
	}
	if err != nil {
		return domain.StreakState{}, err
	}

	state := domain.StreakState{}
	if count.Valid {
		state.Count = int(count.Int64)
	}
	if lastActive.Valid {
		state.LastActive = domain.DayKey(lastActive.String)
	}
	return state, nil
}

// WriteStreakState persists the streak counter on the profile row.
func (s *Store) WriteStreakState(state domain.StreakState) error {
	query := `
		INSERT INTO users (uid, streak, last_active_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid)
		DO UPDATE SET streak = EXCLUDED.streak, last_active_date = EXCLUDED.last_active_date
	`
	_, err := s.db.Exec(query, s.uid, state.Count, string(state.LastActive))
	return err
}

// ReadAllProgress bulk-fetches every per-day record for the account.
func (s *Store) ReadAllProgress() (map[domain.DayKey]domain.Progress, error) {
	query := `
		SELECT date, completed_word_ids, podcast_listened, quiz_completed
		FROM progress
		WHERE uid = $1
		ORDER BY date
	`
	rows, err := s.db.Query(query, s.uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.DayKey]domain.Progress)
	for rows.Next() {
		var p domain.Progress
		var ids pq.StringArray
		if err := rows.Scan(&p.Date, &ids, &p.PodcastListened, &p.QuizCompleted); err != nil {
			return nil, err
		}
		p.CompletedWordIDs = []string(ids)
		out[p.Date] = p
	}
	return out, rows.Err()
}
