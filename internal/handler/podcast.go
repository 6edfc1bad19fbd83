package handler

import (
	"fmt"
	"time"

	"ieltslearn/internal/content"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handlePodcast shows today's episode.
func (h *Handler) handlePodcast(c tele.Context) error {
	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	episode := content.TodayPodcast(h.podcasts, time.Now())
	if episode == nil {
		return h.render(c, "No podcast available today.", mainMenuMarkup())
	}

	snap := s.Ledger.Snapshot()
	text := fmt.Sprintf(
		"🎧 %s (%s)\n\n%s\n\n%s",
		episode.Title, episode.Duration, episode.Description, episode.AudioURL,
	)

	markup := &tele.ReplyMarkup{}
	if snap.TodayProgress().PodcastListened {
		text += "\n\n✅ Listened today"
		markup.Inline(markup.Row(btnMainMenu))
	} else {
		markup.Inline(
			markup.Row(btnPodcastDone),
			markup.Row(btnMainMenu),
		)
	}
	return h.render(c, text, markup)
}

// handlePodcastDone marks today's podcast listened.
func (h *Handler) handlePodcastDone(c tele.Context) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	if err := s.Ledger.MarkPodcastListened(); err != nil {
		h.logger.Error("Failed to mark podcast listened",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save, try again"})
	}

	snap := s.Ledger.Snapshot()
	text := fmt.Sprintf("✅ Nice! Podcast done for today.\n🔥 Streak: %d days", snap.Streak)
	return h.render(c, text, mainMenuMarkup())
}
