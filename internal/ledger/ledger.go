// Package ledger implements the daily progress ledger: the single owner
// of the read-modify-write sequence for progress records and streak
// state. UI surfaces never touch storage directly; they invoke ledger
// actions and observe the published snapshots.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"ieltslearn/internal/domain"
	"ieltslearn/internal/repository"
	"ieltslearn/internal/streak"

	"go.uber.org/zap"
)

// Action identifies a mutation kind, used to configure which actions
// qualify for streak updates.
type Action string

const (
	ActionGoalSet         Action = "goal_set"
	ActionWordLearned     Action = "word_learned"
	ActionPodcastListened Action = "podcast_listened"
	ActionQuizCompleted   Action = "quiz_completed"
)

// DefaultQualifyingActions returns the product's streak rules: podcast,
// quiz and goal-set advance the streak; word-learning alone does not.
func DefaultQualifyingActions() map[Action]bool {
	return map[Action]bool{
		ActionGoalSet:         true,
		ActionPodcastListened: true,
		ActionQuizCompleted:   true,
	}
}

var (
	// ErrInvalidGoal is returned for a goal outside the selectable set.
	ErrInvalidGoal = errors.New("daily goal must be 10, 20 or 30")
	// ErrClosed is returned by operations on a ledger whose scope was
	// torn down (sign-in/sign-out). Callers should retry on the ledger
	// for the new scope.
	ErrClosed = errors.New("ledger is closed")
)

// Config assembles a ledger for one scope. Store is required; Profiles
// and Account are set only for the remote (signed-in) scope. A nil
// Qualifying falls back to DefaultQualifyingActions, a nil Now to
// time.Now.
type Config struct {
	Store      repository.Store
	Profiles   repository.ProfileStore
	Account    *domain.Account
	Qualifying map[Action]bool
	Now        func() time.Time
	Logger     *zap.Logger
}

// Ledger orchestrates one scope's progress state. Operations serialize on
// an internal mutex, so two concurrent mutations cannot interleave their
// read-modify-write sequences. A ledger is bound to its store for life;
// scope changes build a new ledger instead of rebinding this one.
type Ledger struct {
	store      repository.Store
	profiles   repository.ProfileStore
	account    *domain.Account
	qualifying map[Action]bool
	now        func() time.Time
	logger     *zap.Logger

	mu      sync.Mutex
	snap    domain.Snapshot
	closed  bool
	subs    map[int]chan domain.Snapshot
	nextSub int
}

// New creates a ledger for one scope.
func New(cfg Config) *Ledger {
	qualifying := cfg.Qualifying
	if qualifying == nil {
		qualifying = DefaultQualifyingActions()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		store:      cfg.Store,
		profiles:   cfg.Profiles,
		account:    cfg.Account,
		qualifying: qualifying,
		now:        now,
		logger:     logger,
		snap:       domain.Snapshot{Progress: map[domain.DayKey]domain.Progress{}},
		subs:       make(map[int]chan domain.Snapshot),
	}
}

func (l *Ledger) today() domain.DayKey {
	return domain.DayKeyOf(l.now())
}

// Initialize loads the scope's full state and publishes the first
// snapshot. The effective streak is recomputed on every load, so a stale
// counter is corrected even when the user merely opens the app after a
// gap: an absent last-active date yields 0, otherwise the streak
// calculator projects what the next qualifying action would store.
func (l *Ledger) Initialize() (domain.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return domain.Snapshot{}, ErrClosed
	}

	today := l.today()

	goal, err := l.store.ReadGoal()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read goal: %w", err)
	}
	progress, err := l.store.ReadAllProgress()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read progress: %w", err)
	}
	state, err := l.store.ReadStreakState()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read streak state: %w", err)
	}

	effective := 0
	if !state.LastActive.IsZero() {
		effective = streak.Compute(state.Count, state.LastActive, today)
	}
	if progress == nil {
		progress = map[domain.DayKey]domain.Progress{}
	}

	l.snap = domain.Snapshot{
		DailyGoal:    goal,
		Progress:     progress,
		Streak:       effective,
		TodayKey:     today,
		HasOnboarded: goal.IsSet(),
	}
	l.publishLocked()
	return l.snap.Clone(), nil
}

// SetDailyGoal persists the chosen goal and unconditionally restarts the
// streak at day one. For the remote scope it also upserts the account
// profile and creates today's (empty) progress record.
func (l *Ledger) SetDailyGoal(goal domain.Goal) error {
	if !goal.Valid() {
		return ErrInvalidGoal
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	today := l.today()

	if err := l.store.WriteGoal(goal); err != nil {
		return l.abort("write goal", err)
	}
	if err := l.store.WriteStreakState(domain.StreakState{Count: 1, LastActive: today}); err != nil {
		return l.abort("write streak state", err)
	}
	if l.profiles != nil {
		count := 1
		update := domain.ProfileUpdate{
			DailyGoal:  &goal,
			Streak:     &count,
			LastActive: &today,
		}
		if l.account != nil {
			update.Email = &l.account.Email
			update.DisplayName = &l.account.DisplayName
			update.PhotoURL = &l.account.PhotoURL
		}
		if err := l.profiles.WriteProfile(update); err != nil {
			return l.abort("write profile", err)
		}
		if err := l.store.WriteProgress(today, domain.ProgressUpdate{}); err != nil {
			return l.abort("initialize progress record", err)
		}
		if _, ok := l.snap.Progress[today]; !ok {
			l.snap.Progress[today] = domain.Progress{Date: today}
		}
	}

	l.snap.DailyGoal = goal
	l.snap.Streak = 1
	l.snap.TodayKey = today
	l.snap.HasOnboarded = true
	l.publishLocked()
	return nil
}

// MarkWordLearned adds a word to today's learned set. Idempotent: a word
// already in the set causes no store write, no streak change and no
// publish.
func (l *Ledger) MarkWordLearned(wordID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	today := l.today()

	existing, err := l.store.ReadProgress(today)
	if err != nil {
		return l.abort("read progress", err)
	}
	if existing != nil && existing.HasWord(wordID) {
		return nil
	}

	var ids []string
	if existing != nil {
		ids = append(ids, existing.CompletedWordIDs...)
	}
	ids = append(ids, wordID)

	update := domain.ProgressUpdate{CompletedWordIDs: &ids}
	if err := l.store.WriteProgress(today, update); err != nil {
		return l.abort("write progress", err)
	}

	newStreak := l.snap.Streak
	if l.qualifying[ActionWordLearned] {
		count, err := l.advanceStreakLocked(today)
		if err != nil {
			return err
		}
		newStreak = count
	}

	l.snap.Progress[today] = update.Apply(existing, today)
	l.snap.TodayKey = today
	l.snap.Streak = newStreak
	l.publishLocked()
	return nil
}

// UnmarkWordLearned removes a word from today's learned set. Idempotent;
// never affects the streak.
func (l *Ledger) UnmarkWordLearned(wordID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	today := l.today()

	existing, err := l.store.ReadProgress(today)
	if err != nil {
		return l.abort("read progress", err)
	}
	if existing == nil || !existing.HasWord(wordID) {
		return nil
	}

	ids := make([]string, 0, len(existing.CompletedWordIDs))
	for _, id := range existing.CompletedWordIDs {
		if id != wordID {
			ids = append(ids, id)
		}
	}

	update := domain.ProgressUpdate{CompletedWordIDs: &ids}
	if err := l.store.WriteProgress(today, update); err != nil {
		return l.abort("write progress", err)
	}
	l.snap.Progress[today] = update.Apply(existing, today)
	l.snap.TodayKey = today
	l.publishLocked()
	return nil
}

// MarkPodcastListened flips today's podcast flag. The flag is monotonic:
// once true the call is a no-op for both the record and the streak.
func (l *Ledger) MarkPodcastListened() error {
	return l.markFlag(ActionPodcastListened,
		func(p *domain.Progress) bool { return p.PodcastListened },
		func(u *domain.ProgressUpdate, v *bool) { u.PodcastListened = v },
	)
}

// MarkQuizCompleted flips today's quiz flag, with the same contract as
// MarkPodcastListened.
func (l *Ledger) MarkQuizCompleted() error {
	return l.markFlag(ActionQuizCompleted,
		func(p *domain.Progress) bool { return p.QuizCompleted },
		func(u *domain.ProgressUpdate, v *bool) { u.QuizCompleted = v },
	)
}

func (l *Ledger) markFlag(
	action Action,
	isSet func(*domain.Progress) bool,
	set func(*domain.ProgressUpdate, *bool),
) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	today := l.today()

	existing, err := l.store.ReadProgress(today)
	if err != nil {
		return l.abort("read progress", err)
	}
	if existing != nil && isSet(existing) {
		return nil
	}

	truthy := true
	update := domain.ProgressUpdate{}
	set(&update, &truthy)
	if err := l.store.WriteProgress(today, update); err != nil {
		return l.abort("write progress", err)
	}

	newStreak := l.snap.Streak
	if l.qualifying[action] {
		count, err := l.advanceStreakLocked(today)
		if err != nil {
			return err
		}
		newStreak = count
	}

	l.snap.Progress[today] = update.Apply(existing, today)
	l.snap.TodayKey = today
	l.snap.Streak = newStreak
	l.publishLocked()
	return nil
}

// advanceStreakLocked applies the streak side effect of a qualifying
// action and returns the resulting count. An action within the same day
// never double-counts: the stored state is left untouched when
// lastActive is already today.
func (l *Ledger) advanceStreakLocked(today domain.DayKey) (int, error) {
	state, err := l.store.ReadStreakState()
	if err != nil {
		return 0, l.abort("read streak state", err)
	}
	if state.LastActive == today {
		return state.Count, nil
	}

	next := streak.Compute(state.Count, state.LastActive, today)
	if err := l.store.WriteStreakState(domain.StreakState{Count: next, LastActive: today}); err != nil {
		return 0, l.abort("write streak state", err)
	}
	if l.profiles != nil {
		update := domain.ProfileUpdate{Streak: &next, LastActive: &today}
		if err := l.profiles.WriteProfile(update); err != nil {
			return 0, l.abort("write profile", err)
		}
	}
	return next, nil
}

// abort logs a failed storage step and surfaces it to the caller. The
// in-memory snapshot keeps its pre-operation value for the untouched
// fields and nothing is published.
func (l *Ledger) abort(step string, err error) error {
	l.logger.Warn("Ledger operation aborted",
		zap.String("step", step),
		zap.Error(err),
	)
	return fmt.Errorf("failed to %s: %w", step, err)
}
