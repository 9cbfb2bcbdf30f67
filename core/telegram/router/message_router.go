package router

import (
	"time"

	tg "github.com/m3rciful/storebot/core/telegram"
	"github.com/m3rciful/storebot/core/telegram/commands"
	"github.com/m3rciful/storebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Dialog captures free-text input for users that are mid-conversation,
// for example awaiting a custom donation amount.
type Dialog interface {
	InDialog(userID int64) bool
	DialogHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for plain text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the handler for plain text routing. Dialog capture wins
// over command lookup so that a user typing "/carrinho" mid-donation still
// gets the donation prompt resolved first by the dialog handler.
func TextRoute(dialog Dialog, reg *tg.Registry, opts TextOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if dialog != nil && c.Sender() != nil && dialog.InDialog(c.Sender().ID) {
			return handleWithSummary(c, "dialog", start, "", "", func() error {
				return dialog.DialogHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := textCommand(reg, text); ok {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// textCommand resolves bare text to a registered command handler.
// Admin-only commands are excluded here: their gate lives on the slash
// route, and bare text must never slip past it.
func textCommand(reg *tg.Registry, text string) (string, commands.Command, bool) {
	key, cmd, ok := reg.LookupCommand(text)
	if !ok || cmd.Handler == nil || cmd.AdminOnly {
		return "", commands.Command{}, false
	}
	return key, cmd, true
}
