package handler

import (
	"fmt"
	"sort"
	"strings"

	"ieltslearn/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleProgress shows the progress dashboard.
func (h *Handler) handleProgress(c tele.Context) error {
	s, err := h.session(c)
	if err != nil {
		return c.Send(errorText)
	}

	snap := s.Ledger.Snapshot()
	today := snap.TodayProgress()

	var b strings.Builder
	b.WriteString("🔥 Your progress\n\n")
	fmt.Fprintf(&b, "Streak: %d day streak\n\n", snap.Streak)
	fmt.Fprintf(&b, "Today (%s):\n", snap.TodayKey)
	fmt.Fprintf(&b, "  📖 Words: %d/%d\n", len(today.CompletedWordIDs), int(snap.DailyGoal))
	fmt.Fprintf(&b, "  🎧 Podcast: %s\n", checkmark(today.PodcastListened))
	fmt.Fprintf(&b, "  ❓ Quiz: %s\n", checkmark(today.QuizCompleted))

	if history := recentDays(snap.Progress, snap.TodayKey, 7); len(history) > 0 {
		b.WriteString("\nLast days:\n")
		for _, line := range history {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\nCome back every day to keep your streak and reach your word goal!")

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))
	return h.render(c, b.String(), markup)
}

func checkmark(done bool) string {
	if done {
		return "✅"
	}
	return "—"
}

// recentDays renders up to limit past days (newest first), skipping today.
// Day keys sort chronologically as strings.
func recentDays(progress map[domain.DayKey]domain.Progress, today domain.DayKey, limit int) []string {
	var days []domain.DayKey
	for day := range progress {
		if day != today {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	if len(days) > limit {
		days = days[:limit]
	}

	lines := make([]string, 0, len(days))
	for _, day := range days {
		p := progress[day]
		lines = append(lines, fmt.Sprintf("  %s — 📖 %d  🎧 %s  ❓ %s",
			day, len(p.CompletedWordIDs), checkmark(p.PodcastListened), checkmark(p.QuizCompleted)))
	}
	return lines
}
