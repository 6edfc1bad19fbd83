package handler

import (
	"fmt"
	"strconv"
	"strings"

	"ieltslearn/internal/content"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const quizLength = 5

// quizRun is one chat's in-flight quiz.
type quizRun struct {
	Questions []content.QuizQuestion
	Current   int
	Correct   int
}

func (h *Handler) quizRunFor(chatID int64) *quizRun {
	h.quizMux.RLock()
	defer h.quizMux.RUnlock()
	return h.quizzes[chatID]
}

func (h *Handler) setQuizRun(chatID int64, run *quizRun) {
	h.quizMux.Lock()
	defer h.quizMux.Unlock()
	if run == nil {
		delete(h.quizzes, chatID)
		return
	}
	h.quizzes[chatID] = run
}

// handleQuiz starts (or restarts) today's quiz.
func (h *Handler) handleQuiz(c tele.Context) error {
	chatID := c.Sender().ID

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	if snap.TodayProgress().QuizCompleted {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnMainMenu))
		return h.render(c, "✅ You already completed today's quiz. Come back tomorrow!", markup)
	}

	run := &quizRun{
		Questions: content.BuildQuiz(h.rng, h.library.Words(), quizLength),
	}
	if len(run.Questions) == 0 {
		return h.render(c, "No quiz available today.", mainMenuMarkup())
	}
	h.setQuizRun(chatID, run)

	text, markup := quizQuestionView(run)
	return h.render(c, text, markup)
}

func quizQuestionView(run *quizRun) (string, *tele.ReplyMarkup) {
	q := run.Questions[run.Current]

	var b strings.Builder
	fmt.Fprintf(&b, "❓ Question %d/%d\n\n%s", run.Current+1, len(run.Questions), q.Question)

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i, opt := range q.Options {
		data := fmt.Sprintf("ans_%d_%d", run.Current, i)
		rows = append(rows, markup.Row(markup.Data(opt, data)))
	}
	markup.Inline(rows...)

	return b.String(), markup
}

// handleQuizAnswer records one answer and advances the quiz; the last
// answer completes it and feeds the result into the ledger.
func (h *Handler) handleQuizAnswer(c tele.Context, data string) error {
	chatID := c.Sender().ID

	lock := h.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	run := h.quizRunFor(chatID)
	if run == nil {
		return c.Respond(&tele.CallbackResponse{Text: "No quiz in progress"})
	}

	parts := strings.Split(strings.TrimPrefix(data, "ans_"), "_")
	if len(parts) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Bad answer"})
	}
	qIdx, err1 := strconv.Atoi(parts[0])
	optIdx, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || qIdx != run.Current {
		// Stale tap on an already-answered question
		return c.Respond()
	}

	q := run.Questions[qIdx]
	if optIdx == q.CorrectIndex {
		run.Correct++
	}
	run.Current++

	if run.Current < len(run.Questions) {
		text, markup := quizQuestionView(run)
		return h.render(c, text, markup)
	}

	// Quiz finished
	h.setQuizRun(chatID, nil)

	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}
	if err := s.Ledger.MarkQuizCompleted(); err != nil {
		h.logger.Error("Failed to mark quiz completed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Could not save your result, try again"})
	}

	snap := s.Ledger.Snapshot()
	text := fmt.Sprintf(
		"🎉 Quiz complete!\n\nScore: %d/%d\n🔥 Streak: %d days",
		run.Correct, len(run.Questions), snap.Streak,
	)
	return h.render(c, text, mainMenuMarkup())
}
