package middleware

import (
	"ieltslearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SessionMiddleware makes sure every update reaches handlers with a
// resolvable session: the chat's ledger is lazily created (local scope)
// on first contact, and storage failures are absorbed here instead of
// crashing handlers.
func SessionMiddleware(sessions *service.SessionManager, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			if _, err := sessions.Session(sender.ID); err != nil {
				logger.Error("Failed to prepare session in middleware",
					zap.Int64("chat_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			return next(c)
		}
	}
}
