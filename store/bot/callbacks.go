package bot

import (
	"errors"
	"fmt"

	"github.com/m3rciful/storebot/core/telegram/callbacks"
	"github.com/m3rciful/storebot/core/telegram/helpers"
	"github.com/m3rciful/storebot/store/cart"
	"github.com/m3rciful/storebot/store/catalog"

	tele "gopkg.in/telebot.v4"
)

func (a *App) cbProducts(c tele.Context) error {
	_ = helpers.Respond(c, "")
	return a.renderProductList(c, true)
}

func (a *App) cbCart(c tele.Context) error {
	_ = helpers.Respond(c, "")
	return a.renderCart(c, true)
}

func (a *App) cbProductView(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.RespondAlert(c, "ID de produto inválido.")
	}

	ctx := helpers.BuildContext(c)
	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return helpers.RespondAlert(c, "Produto não encontrado.")
		}
		return helpers.RespondAlert(c, "Catálogo indisponível no momento.")
	}

	_ = helpers.Respond(c, "")
	return a.sendProduct(c, p)
}

func (a *App) cbCartAdd(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.RespondAlert(c, "ID de produto inválido.")
	}

	ctx := helpers.BuildContext(c)
	p, _, err := a.carts.Add(ctx, userID(c), id)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			return helpers.RespondAlert(c, "Produto não mais disponível.")
		}
		return helpers.RespondAlert(c, "Catálogo indisponível no momento.")
	}
	return helpers.Respond(c, fmt.Sprintf("✅ '%s' adicionado!", p.Name))
}

func (a *App) cbCartRemoveOne(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.RespondAlert(c, "ID de produto inválido.")
	}

	ctx := helpers.BuildContext(c)
	p, qty, err := a.carts.RemoveOne(ctx, userID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrProductNotFound):
			// Stale button for a product that left the catalog; the line is gone now.
			_ = helpers.RespondAlert(c, "Produto não encontrado. Removido do carrinho se estava lá.")
			return a.renderCart(c, true)
		case errors.Is(err, cart.ErrNotInCart):
			_ = helpers.RespondAlert(c, fmt.Sprintf("'%s' não está no carrinho.", p.Name))
			return a.renderCart(c, true)
		}
		return helpers.RespondAlert(c, "Catálogo indisponível no momento.")
	}
	if qty == 0 {
		_ = helpers.Respond(c, fmt.Sprintf("🗑️ '%s' removido completamente.", p.Name))
	} else {
		_ = helpers.Respond(c, fmt.Sprintf("➖ Uma unidade de '%s' removida.", p.Name))
	}
	return a.renderCart(c, true)
}

func (a *App) cbCartCheckout(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	sum, err := a.carts.Checkout(ctx, userID(c))
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			_ = helpers.Respond(c, "")
			text, markup := emptyCheckoutView()
			return helpers.EditOrSendMD(c, text, markup)
		}
		return helpers.RespondAlert(c, "Catálogo indisponível no momento.")
	}

	_ = helpers.Respond(c, "Pedido finalizado!")
	text, markup := checkoutView(sum)
	return helpers.EditOrSendMD(c, text, markup)
}

func (a *App) cbDonateMenu(c tele.Context) error {
	_ = helpers.Respond(c, "")
	text, markup := donationMenuView(a.donations.Presets())
	return helpers.EditOrSendMD(c, text, markup)
}

func (a *App) cbDonatePreset(c tele.Context) error {
	cents, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.RespondAlert(c, "Erro ao processar doação.")
	}

	// Amount validation lives in the donation service.
	ctx := helpers.BuildContext(c)
	if err := a.donations.Donate(ctx, userID(c), cents); err != nil {
		return helpers.RespondAlert(c, "Erro ao processar doação.")
	}

	_ = helpers.Respond(c, "Doação processada! Obrigado! 💖")
	text, markup := donationThanksView(cents)
	return helpers.EditOrSendMD(c, text, markup)
}

func (a *App) cbDonateCustom(c tele.Context) error {
	_ = helpers.Respond(c, "")
	ctx := helpers.BuildContext(c)
	a.donations.BeginCustom(ctx, userID(c))
	return helpers.SendMD(c, customDonationPrompt)
}
