package handler

import (
	"math/rand"
	"sync"
	"time"

	"ieltslearn/internal/content"
	"ieltslearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const errorText = "Something went wrong. Please try again."

// Handler manages all bot interactions
type Handler struct {
	bot      *tele.Bot
	sessions *service.SessionManager
	library  *content.Library
	podcasts []content.Podcast
	logger   *zap.Logger
	rng      *rand.Rand

	// Per-chat quiz runs (in-memory state machine)
	quizzes map[int64]*quizRun
	quizMux sync.RWMutex

	// Per-chat locks so rapid taps cannot interleave ledger mutations
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	sessions *service.SessionManager,
	library *content.Library,
	podcasts []content.Podcast,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		sessions:      sessions,
		library:       library,
		podcasts:      podcasts,
		logger:        logger,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		quizzes:       make(map[int64]*quizRun),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/login", h.handleLogin)
	h.bot.Handle("/logout", h.handleLogout)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnWords, h.handleWords)
	h.bot.Handle(&btnQuiz, h.handleQuiz)
	h.bot.Handle(&btnPodcast, h.handlePodcast)
	h.bot.Handle(&btnProgress, h.handleProgress)
	h.bot.Handle(&btnPodcastDone, h.handlePodcastDone)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// chatLock returns the serialization lock for a chat, creating it on
// first use. Held across each ledger mutation triggered from a callback.
func (h *Handler) chatLock(chatID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[chatID] = lock
	}
	return lock
}

// session resolves the chat's active session, logging failures.
func (h *Handler) session(c tele.Context) (*service.Session, error) {
	s, err := h.sessions.Session(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to resolve session",
			zap.Int64("chat_id", c.Sender().ID),
			zap.Error(err),
		)
	}
	return s, err
}

// SendReminder implements reminder.Notifier.
func (h *Handler) SendReminder(chatID int64, text string) error {
	_, err := h.bot.Send(&tele.Chat{ID: chatID}, text)
	return err
}

// Inline keyboard buttons
var (
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📖 Today's words",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "❓ Quiz",
	}
	btnPodcast = tele.Btn{
		Unique: "podcast",
		Text:   "🎧 Podcast",
	}
	btnProgress = tele.Btn{
		Unique: "progress",
		Text:   "🔥 Progress",
	}
	btnPodcastDone = tele.Btn{
		Unique: "podcast_done",
		Text:   "✅ Mark as listened",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnWords),
		menu.Row(btnQuiz, btnPodcast),
		menu.Row(btnProgress),
	)
	return menu
}

// goalMarkup returns the onboarding goal picker
func goalMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("10 words", "goal_10"),
			markup.Data("20 words", "goal_20"),
			markup.Data("30 words", "goal_30"),
		),
	)
	return markup
}
