// Package bot wires the storefront services to Telegram handlers.
package bot

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"

	tg "github.com/m3rciful/storebot/core/telegram"
	"github.com/m3rciful/storebot/core/telegram/commands"
	"github.com/m3rciful/storebot/core/telegram/router"
	tgsender "github.com/m3rciful/storebot/core/telegram/sender"
	"github.com/m3rciful/storebot/store/cart"
	"github.com/m3rciful/storebot/store/catalog"
	"github.com/m3rciful/storebot/store/donation"
	"github.com/m3rciful/storebot/store/session"

	tele "gopkg.in/telebot.v4"
)

// App is the assembled storefront bot.
type App struct {
	cfg       *Config
	sessions  *session.Store
	catalog   catalog.Reader
	carts     *cart.Service
	donations *donation.Service

	startedAt  time.Time
	dispatcher atomic.Pointer[tgsender.Dispatcher]
}

// New builds the application on top of a connected database.
func New(cfg *Config, db *sqlx.DB) *App {
	reader := catalog.NewPostgresReader(db)
	return NewWithReader(cfg, reader)
}

// NewWithReader builds the application with an explicit catalog reader.
// Tests use it with catalog.MemoryReader.
func NewWithReader(cfg *Config, reader catalog.Reader) *App {
	sessions := session.NewStore()
	return &App{
		cfg:       cfg,
		sessions:  sessions,
		catalog:   reader,
		carts:     cart.NewService(sessions, reader),
		donations: donation.NewService(sessions, cfg.Donation.PresetsCents),
		startedAt: time.Now(),
	}
}

// Registry builds the command and callback registry for this app.
func (a *App) Registry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler: a.handleStart, Description: "Iniciar conversa",
	})
	reg.RegisterCommand("/produtos", commands.Command{
		Handler: a.handleProducts, Description: "Listar produtos",
	})
	reg.RegisterCommand("/ver", commands.Command{
		Handler: a.handleView, Description: "Ver detalhes de um produto",
	})
	reg.RegisterCommand("/adicionar", commands.Command{
		Handler: a.handleAdd, Description: "Adicionar produto ao carrinho",
	})
	reg.RegisterCommand("/remover", commands.Command{
		Handler: a.handleRemove, Description: "Remover produto do carrinho",
	})
	reg.RegisterCommand("/carrinho", commands.Command{
		Handler: a.handleCart, Description: "Ver seu carrinho",
	})
	reg.RegisterCommand("/finalizar", commands.Command{
		Handler: a.handleCheckout, Description: "Finalizar compra (simulação)",
	})
	reg.RegisterCommand("/doar", commands.Command{
		Handler: a.handleDonate, Description: "Fazer uma doação",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler: a.handleHelp, Description: "Mostrar esta ajuda", Aliases: []string{"ajuda"},
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler: a.handleStatus, Description: "Diagnóstico do bot", AdminOnly: true, Hidden: true,
	})

	_ = reg.RegisterCallback(cbShopProducts, a.cbProducts)
	_ = reg.RegisterCallback(cbShopCart, a.cbCart)
	_ = reg.RegisterCallback(cbProductView, a.cbProductView)
	_ = reg.RegisterCallback(cbCartAdd, a.cbCartAdd)
	_ = reg.RegisterCallback(cbCartRemoveOne, a.cbCartRemoveOne)
	_ = reg.RegisterCallback(cbCartCheckout, a.cbCartCheckout)
	_ = reg.RegisterCallback(cbDonateMenu, a.cbDonateMenu)
	_ = reg.RegisterCallback(cbDonatePreset, a.cbDonatePreset)
	_ = reg.RegisterCallback(cbDonateCustom, a.cbDonateCustom)

	return reg
}

// TelegramRunOptions assembles everything RunTelegram needs: registry,
// middleware chain, and the command/callback/text routes.
func (a *App) TelegramRunOptions() tg.RunOptions {
	reg := a.Registry()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(a, reg, router.TextOptions{}))

	return tg.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.dispatcher.Store(rt.Dispatcher)
			return nil
		},
	}
}

// InDialog reports whether the user's next text message is captured by
// an open dialog instead of command routing.
func (a *App) InDialog(userID int64) bool {
	return a.donations.Awaiting(userID)
}

// DialogHandler resolves the open dialog for the sending user.
func (a *App) DialogHandler(c tele.Context) error {
	return a.handleDonationText(c)
}

var _ router.Dialog = (*App)(nil)
