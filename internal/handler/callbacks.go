package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified,
// just acknowledge the callback. Otherwise acknowledge and return the error
// so the caller can send a new message instead.
func (h *Handler) handleEditError(err error, c tele.Context, chatID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("chat_id", chatID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", chatID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// render edits the message behind a callback, or sends a new one for a
// command. Falls back to sending when the edit fails.
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleCallback routes dynamic callback data (goal picks, word toggles,
// quiz answers)
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("chat_id", c.Sender().ID),
	)

	switch callback.Unique {
	case "words":
		return h.handleWords(c)
	case "quiz":
		return h.handleQuiz(c)
	case "podcast":
		return h.handlePodcast(c)
	case "progress":
		return h.handleProgress(c)
	case "podcast_done":
		return h.handlePodcastDone(c)
	case "main_menu":
		return h.handleStart(c)
	}

	switch {
	case strings.HasPrefix(data, "goal_"):
		return h.handleGoalPick(c, data)
	case strings.HasPrefix(data, "word_"):
		return h.handleWordToggle(c, data)
	case strings.HasPrefix(data, "ans_"):
		return h.handleQuizAnswer(c, data)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
