package handler

import (
	"fmt"
	"strings"

	"ieltslearn/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleWords shows the word list with learn/unlearn toggles.
func (h *Handler) handleWords(c tele.Context) error {
	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	text, markup := h.wordsView(snap)
	return h.render(c, text, markup)
}

// wordsView builds the word screen from a snapshot: a progress line plus
// one toggle button per word, checked for words already learned today.
func (h *Handler) wordsView(snap domain.Snapshot) (string, *tele.ReplyMarkup) {
	today := snap.TodayProgress()

	var b strings.Builder
	fmt.Fprintf(&b, "📖 Today's words — %d/%d learned\n\n", len(today.CompletedWordIDs), int(snap.DailyGoal))
	b.WriteString("Tap a word to mark it learned, tap again to unmark.")

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, w := range h.library.Words() {
		label := "☐ " + w.Word
		if today.HasWord(w.ID) {
			label = "✅ " + w.Word
		}
		rows = append(rows, markup.Row(markup.Data(label, "word_"+w.ID)))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return b.String(), markup
}

// handleWordToggle marks or unmarks one word for today.
func (h *Handler) handleWordToggle(c tele.Context, data string) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	wordID := strings.TrimPrefix(data, "word_")
	word := h.library.ByID(wordID)
	if word == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	if snap.TodayProgress().HasWord(wordID) {
		err = s.Ledger.UnmarkWordLearned(wordID)
	} else {
		err = s.Ledger.MarkWordLearned(wordID)
	}
	if err != nil {
		h.logger.Error("Failed to toggle word",
			zap.Int64("chat_id", chatID),
			zap.String("word_id", wordID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save, try again"})
	}

	text, markup := h.wordsView(s.Ledger.Snapshot())
	return h.render(c, text, markup)
}
