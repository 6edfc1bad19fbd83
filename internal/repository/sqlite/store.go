package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"ieltslearn/internal/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Storage keys, one per persisted value. Scalars are stored as plain
// strings, the per-day records as JSON-encoded maps keyed by day key.
const (
	keyDailyGoal       = "daily_goal"
	keyCompletedWords  = "completed_words"
	keyPodcastListened = "podcast_listened"
	keyQuizCompleted   = "quiz_completed"
	keyLastActiveDate  = "last_active_date"
	keyStreak          = "streak"
)

// Open opens (creating if needed) the on-device key-value database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local store schema: %w", err)
	}

	return db, nil
}

// KVStore implements repository.Store over a namespaced key-value table.
// One namespace corresponds to one device-local scope; there is no
// account scoping here.
type KVStore struct {
	db     *sqlx.DB
	ns     string
	logger *zap.Logger
}

// NewKVStore creates a local store bound to the given namespace.
func NewKVStore(db *sqlx.DB, namespace string, logger *zap.Logger) *KVStore {
	return &KVStore{db: db, ns: namespace, logger: logger}
}

func (s *KVStore) fullKey(key string) string {
	if s.ns == "" {
		return key
	}
	return s.ns + "/" + key
}

func (s *KVStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, s.fullKey(key))
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *KVStore) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, s.fullKey(key), value)
	return err
}

// getJSONMap decodes a JSON map value. Corrupt data is not fatal: it is
// logged and treated as empty, so the next write repairs the key.
func getJSONMap[V any](s *KVStore, key string) (map[string]V, error) {
	raw, ok, err := s.get(key)
	if err != nil {
		return nil, err
	}
	out := map[string]V{}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("Corrupt value in local store, treating as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return map[string]V{}, nil
	}
	return out, nil
}

func setJSONMap[V any](s *KVStore, key string, m map[string]V) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.set(key, string(raw))
}

// ReadGoal returns the stored daily goal, GoalUnset when absent.
func (s *KVStore) ReadGoal() (domain.Goal, error) {
	raw, ok, err := s.get(keyDailyGoal)
	if err != nil || !ok {
		return domain.GoalUnset, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Warn("Corrupt daily goal in local store, treating as unset", zap.Error(err))
		return domain.GoalUnset, nil
	}
	return domain.Goal(n), nil
}

// WriteGoal persists the daily goal.
func (s *KVStore) WriteGoal(goal domain.Goal) error {
	return s.set(keyDailyGoal, strconv.Itoa(int(goal)))
}

// ReadProgress assembles one day's record from the three per-day maps.
// Returns nil when the day appears in none of them.
func (s *KVStore) ReadProgress(day domain.DayKey) (*domain.Progress, error) {
	words, err := getJSONMap[[]string](s, keyCompletedWords)
	if err != nil {
		return nil, err
	}
	podcasts, err := getJSONMap[bool](s, keyPodcastListened)
	if err != nil {
		return nil, err
	}
	quizzes, err := getJSONMap[bool](s, keyQuizCompleted)
	if err != nil {
		return nil, err
	}

	ids, hasWords := words[string(day)]
	podcast, hasPodcast := podcasts[string(day)]
	quiz, hasQuiz := quizzes[string(day)]
	if !hasWords && !hasPodcast && !hasQuiz {
		return nil, nil
	}

	return &domain.Progress{
		Date:             day,
		CompletedWordIDs: ids,
		PodcastListened:  podcast,
		QuizCompleted:    quiz,
	}, nil
}

// WriteProgress merges the partial update into the day's record. Only the
// maps backing supplied fields are rewritten.
func (s *KVStore) WriteProgress(day domain.DayKey, update domain.ProgressUpdate) error {
	if update.CompletedWordIDs != nil {
		words, err := getJSONMap[[]string](s, keyCompletedWords)
		if err != nil {
			return err
		}
		words[string(day)] = append([]string(nil), (*update.CompletedWordIDs)...)
		if err := setJSONMap(s, keyCompletedWords, words); err != nil {
			return err
		}
	}
	if update.PodcastListened != nil {
		podcasts, err := getJSONMap[bool](s, keyPodcastListened)
		if err != nil {
			return err
		}
		podcasts[string(day)] = *update.PodcastListened
		if err := setJSONMap(s, keyPodcastListened, podcasts); err != nil {
			return err
		}
	}
	if update.QuizCompleted != nil {
		quizzes, err := getJSONMap[bool](s, keyQuizCompleted)
		if err != nil {
			return err
		}
		quizzes[string(day)] = *update.QuizCompleted
		if err := setJSONMap(s, keyQuizCompleted, quizzes); err != nil {
			return err
		}
	}
	return nil
}

// ReadStreakState returns the stored streak counter and last active date.
func (s *KVStore) ReadStreakState() (domain.StreakState, error) {
	var state domain.StreakState

	raw, ok, err := s.get(keyStreak)
	if err != nil {
		return state, err
	}
	if ok {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			s.logger.Warn("Corrupt streak in local store, treating as zero", zap.Error(convErr))
		} else {
			state.Count = n
		}
	}

	raw, ok, err = s.get(keyLastActiveDate)
	if err != nil {
		return state, err
	}
	if ok && raw != "" {
		day, parseErr := domain.ParseDayKey(raw)
		if parseErr != nil {
			s.logger.Warn("Corrupt last active date in local store, treating as absent", zap.Error(parseErr))
		} else {
			state.LastActive = day
		}
	}

	return state, nil
}

// WriteStreakState persists the streak counter and last active date.
func (s *KVStore) WriteStreakState(state domain.StreakState) error {
	if err := s.set(keyStreak, strconv.Itoa(state.Count)); err != nil {
		return err
	}
	return s.set(keyLastActiveDate, string(state.LastActive))
}

// ReadAllProgress returns every stored day's record, assembled from the
// union of day keys across the three maps.
func (s *KVStore) ReadAllProgress() (map[domain.DayKey]domain.Progress, error) {
	words, err := getJSONMap[[]string](s, keyCompletedWords)
	if err != nil {
		return nil, err
	}
	podcasts, err := getJSONMap[bool](s, keyPodcastListened)
	if err != nil {
		return nil, err
	}
	quizzes, err := getJSONMap[bool](s, keyQuizCompleted)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.DayKey]domain.Progress)
	ensure := func(day string) domain.Progress {
		if p, ok := out[domain.DayKey(day)]; ok {
			return p
		}
		return domain.Progress{Date: domain.DayKey(day)}
	}
	for day, ids := range words {
		p := ensure(day)
		p.CompletedWordIDs = ids
		out[domain.DayKey(day)] = p
	}
	for day, listened := range podcasts {
		p := ensure(day)
		p.PodcastListened = listened
		out[domain.DayKey(day)] = p
	}
	for day, completed := range quizzes {
		p := ensure(day)
		p.QuizCompleted = completed
		out[domain.DayKey(day)] = p
	}
	return out, nil
}
