// Package reminder nudges every active chat once a day so users keep
// their streaks going.
package reminder

import (
	"fmt"
	"time"

	"ieltslearn/internal/service"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// ReminderText is the daily nudge message.
const ReminderText = "Time for your daily words! Don't break your streak."

// Notifier delivers a reminder to one chat.
type Notifier interface {
	SendReminder(chatID int64, text string) error
}

// Reminder schedules the daily nudge.
type Reminder struct {
	scheduler *gocron.Scheduler
	sessions  *service.SessionManager
	notifier  Notifier
	hour      int
	logger    *zap.Logger
}

// New creates a reminder firing daily at the given local hour.
func New(sessions *service.SessionManager, notifier Notifier, hour int, logger *zap.Logger) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(time.Local),
		sessions:  sessions,
		notifier:  notifier,
		hour:      hour,
		logger:    logger,
	}
}

// Start schedules the job and runs the scheduler in the background.
func (r *Reminder) Start() error {
	at := fmt.Sprintf("%02d:00", r.hour)
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.run); err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}
	r.scheduler.StartAsync()
	r.logger.Info("Daily reminder scheduled", zap.String("at", at))
	return nil
}

// Stop terminates the scheduler.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) run() {
	chats := r.sessions.Chats()
	r.logger.Info("Sending daily reminders", zap.Int("chats", len(chats)))

	for _, chatID := range chats {
		if err := r.notifier.SendReminder(chatID, ReminderText); err != nil {
			r.logger.Warn("Failed to send reminder",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
}
