package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"ieltslearn/internal/domain"
)

// ReadProfile returns the account's profile document, nil when the
// account has never stored anything.
func (s *Store) ReadProfile() (*domain.Profile, error) {
	var p domain.Profile
	var email, displayName, photoURL, lastActive sql.NullString
	var goal, count sql.NullInt64
	query := `
		SELECT uid, email, display_name, photo_url, daily_goal, streak, last_active_date, created_at
		FROM users
		WHERE uid = $1
	`
	err := s.db.QueryRow(query, s.uid).Scan(
		&p.UID, &email, &displayName, &photoURL, &goal, &count, &lastActive, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Email = email.String
	p.DisplayName = displayName.String
	p.PhotoURL = photoURL.String
	if goal.Valid {
		p.DailyGoal = domain.Goal(goal.Int64)
	}
	if count.Valid {
		p.Streak = int(count.Int64)
	}
	if lastActive.Valid {
		p.LastActive = domain.DayKey(lastActive.String)
	}
	return &p, nil
}

// WriteProfile upserts the profile row, updating only the supplied
// fields. Unsupplied fields on an existing row are preserved.
func (s *Store) WriteProfile(update domain.ProfileUpdate) error {
	cols := []string{"uid"}
	args := []interface{}{s.uid}

	add := func(col string, value interface{}) {
		cols = append(cols, col)
		args = append(args, value)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.DisplayName != nil {
		add("display_name", *update.DisplayName)
	}
	if update.PhotoURL != nil {
		add("photo_url", *update.PhotoURL)
	}
	if update.DailyGoal != nil {
		add("daily_goal", int(*update.DailyGoal))
	}
	if update.Streak != nil {
		add("streak", *update.Streak)
	}
	if update.LastActive != nil {
		add("last_active_date", string(*update.LastActive))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var sets []string
	for _, col := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		"INSERT INTO users (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	if len(sets) == 0 {
		query += " ON CONFLICT (uid) DO NOTHING"
	} else {
		query += fmt.Sprintf(" ON CONFLICT (uid) DO UPDATE SET %s", strings.Join(sets, ", "))
	}

	_, err := s.db.Exec(query, args...)
	return err
}
