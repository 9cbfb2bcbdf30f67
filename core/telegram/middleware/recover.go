package middleware

import (
	"runtime/debug"

	"github.com/m3rciful/storebot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing.
// Callback-originated updates still receive a best-effort acknowledgement so the
// user is never left with a spinning button.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				if c.Callback() != nil {
					_ = c.Respond(&tele.CallbackResponse{Text: "Erro ao processar ação. Tente novamente."})
				}
			}
		}()
		return next(c)
	}
}
