package handler

import (
	"fmt"
	"strconv"
	"strings"

	"ieltslearn/internal/domain"
	"ieltslearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start: onboarding for new chats, the main menu
// for everyone else.
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Sender().ID

	h.logger.Info("Chat opened the bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	if !snap.HasOnboarded {
		return h.render(c,
			"👋 Welcome to IELTS Learn!\n\nHow many words do you want to learn per day?",
			goalMarkup(),
		)
	}

	return h.render(c, mainMenuText(s, snap), mainMenuMarkup())
}

func mainMenuText(s *service.Session, snap domain.Snapshot) string {
	var b strings.Builder
	b.WriteString("🏠 Main menu\n\n")
	fmt.Fprintf(&b, "🔥 Streak: %d days\n", snap.Streak)
	fmt.Fprintf(&b, "📖 Today: %d/%d words\n", snap.WordsLearnedToday(), int(snap.DailyGoal))
	if s.SignedIn() {
		b.WriteString("\nSigned in — progress syncs to your account.")
	} else {
		b.WriteString("\nUse /login <password> to sync progress across devices.")
	}
	return b.String()
}

// handleGoalPick persists the chosen daily goal (onboarding, re-runnable)
func (h *Handler) handleGoalPick(c tele.Context, data string) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	n, err := strconv.Atoi(strings.TrimPrefix(data, "goal_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown goal"})
	}

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	if err := s.Ledger.SetDailyGoal(domain.Goal(n)); err != nil {
		h.logger.Error("Failed to set daily goal",
			zap.Int64("chat_id", chatID),
			zap.Int("goal", n),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save your goal, try again"})
	}

	text := fmt.Sprintf("🎯 Goal set: %d words a day. Day 1 of your streak starts now!", n)
	return h.render(c, text, mainMenuMarkup())
}

// handleLogin handles /login <password>
func (h *Handler) handleLogin(c tele.Context) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	cred := service.Credential{
		ChatID:      chatID,
		Password:    strings.TrimSpace(c.Message().Payload),
		DisplayName: strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName),
	}
	if cred.Password == "" {
		return c.Send("Usage: /login <password>")
	}

	s, err := h.sessions.SignIn(cred)
	if err != nil {
		if err == service.ErrBadCredentials {
			return c.Send("❌ Wrong password.")
		}
		h.logger.Error("Sign-in failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	if !snap.HasOnboarded {
		return c.Send(
			"✅ Signed in!\n\nHow many words do you want to learn per day?",
			goalMarkup(),
		)
	}
	return c.Send("✅ Signed in! Your progress now syncs to your account.", mainMenuMarkup())
}

// handleLogout handles /logout
func (h *Handler) handleLogout(c tele.Context) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := h.sessions.SignOut(chatID); err != nil {
		h.logger.Error("Sign-out failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return c.Send(errorText)
	}
	return c.Send("👋 Signed out. Progress is now stored on this device only.", mainMenuMarkup())
}
