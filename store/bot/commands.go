package bot

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m3rciful/storebot/core/buildinfo"
	"github.com/m3rciful/storebot/core/telegram/format"
	"github.com/m3rciful/storebot/core/telegram/helpers"
	"github.com/m3rciful/storebot/store/cart"
	"github.com/m3rciful/storebot/store/catalog"

	tele "gopkg.in/telebot.v4"
)

func userID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}

func parseIDArg(c tele.Context) (int64, bool) {
	args := c.Args()
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (a *App) handleStart(c tele.Context) error {
	var first string
	if u := c.Sender(); u != nil {
		first = u.FirstName
	}
	text, markup := welcomeView(first)
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleProducts(c tele.Context) error {
	return a.renderProductList(c, false)
}

func (a *App) renderProductList(c tele.Context, edit bool) error {
	ctx := helpers.BuildContext(c)
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	text, markup := productListView(products)
	if edit {
		return helpers.EditOrSendMD(c, text, markup)
	}
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleView(c tele.Context) error {
	id, ok := parseIDArg(c)
	if !ok {
		return helpers.SendMD(c, "Uso: `/ver <ID_DO_PRODUTO>` (ex: `/ver 1`)")
	}

	ctx := helpers.BuildContext(c)
	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return helpers.SendText(c, fmt.Sprintf("Produto com ID %d não encontrado.", id))
		}
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	return a.sendProduct(c, p)
}

// sendProduct shows the detail card, as a photo with caption when the
// product has an image and as plain Markdown otherwise.
func (a *App) sendProduct(c tele.Context, p catalog.Product) error {
	text, markup := productView(p)
	if p.Image != nil && *p.Image != "" {
		return helpers.SendPhotoMD(c, *p.Image, text, markup)
	}
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleAdd(c tele.Context) error {
	id, ok := parseIDArg(c)
	if !ok {
		return helpers.SendMD(c, "Uso: `/adicionar <ID_DO_PRODUTO>` (ex: `/adicionar 1`)")
	}

	ctx := helpers.BuildContext(c)
	p, _, err := a.carts.Add(ctx, userID(c), id)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			return helpers.SendText(c, fmt.Sprintf("Produto com ID %d não encontrado.", id))
		}
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	return helpers.SendText(c, fmt.Sprintf("✅ '%s' adicionado ao carrinho.", p.Name))
}

func (a *App) handleRemove(c tele.Context) error {
	id, ok := parseIDArg(c)
	if !ok {
		return helpers.SendMD(c, "Uso: `/remover <ID_DO_PRODUTO>` (ex: `/remover 1`)")
	}

	ctx := helpers.BuildContext(c)
	p, qty, err := a.carts.RemoveOne(ctx, userID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			return helpers.SendText(c, fmt.Sprintf("Produto com ID %d não existe na loja.", id))
		case errors.Is(err, cart.ErrNotInCart):
			return helpers.SendText(c, fmt.Sprintf("'%s' não está no seu carrinho.", p.Name))
		}
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	if qty == 0 {
		return helpers.SendText(c, fmt.Sprintf("🗑️ '%s' removido completamente do carrinho.", p.Name))
	}
	return helpers.SendText(c, fmt.Sprintf("➖ Uma unidade de '%s' removida. Restantes: %d.", p.Name, qty))
}

func (a *App) handleCart(c tele.Context) error {
	return a.renderCart(c, false)
}

func (a *App) renderCart(c tele.Context, edit bool) error {
	ctx := helpers.BuildContext(c)
	sum, err := a.carts.Summary(ctx, userID(c))
	if err != nil {
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	text, markup := cartView(sum)
	if edit {
		return helpers.EditOrSendMD(c, text, markup)
	}
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleCheckout(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	sum, err := a.carts.Checkout(ctx, userID(c))
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			text, markup := emptyCheckoutView()
			return helpers.SendMD(c, text, markup)
		}
		return helpers.SendText(c, "Catálogo indisponível no momento. Tente novamente.")
	}
	text, markup := checkoutView(sum)
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleDonate(c tele.Context) error {
	text, markup := donationMenuView(a.donations.Presets())
	return helpers.SendMD(c, text, markup)
}

func (a *App) handleHelp(c tele.Context) error {
	return helpers.SendMD(c, helpText)
}

func (a *App) handleStatus(c tele.Context) error {
	uptime := time.Since(a.startedAt).Round(time.Second)
	var sendErrors uint64
	if d := a.dispatcher.Load(); d != nil {
		sendErrors = d.ErrorCount()
	}
	text := fmt.Sprintf(
		"⚙️ **Status**\n\n"+
			"Versão: `%s` (%s)\n"+
			"Uptime: %s\n"+
			"Sessões ativas: %d\n"+
			"Falhas de envio: %d",
		format.EscapeMarkdown(buildinfo.Version), buildinfo.Commit,
		uptime, a.sessions.Len(), sendErrors,
	)
	return helpers.SendMD(c, text)
}
