package bot

import (
	"errors"

	"github.com/m3rciful/storebot/core/telegram/helpers"
	"github.com/m3rciful/storebot/store/donation"

	tele "gopkg.in/telebot.v4"
)

// handleDonationText consumes free text while the user is in the
// awaiting-donation dialog. Invalid input keeps the dialog open so the
// user can correct the value.
func (a *App) handleDonationText(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	cents, err := a.donations.FinalizeCustom(ctx, userID(c), c.Text())
	if err != nil {
		switch {
		case errors.Is(err, donation.ErrNotPositive):
			return helpers.SendText(c, "❌ Por favor, digite um valor maior que 0. (ex: 25 para R$ 25,00)")
		case errors.Is(err, donation.ErrInvalidAmount):
			return helpers.SendText(c, "❌ Valor inválido! Digite apenas números. (ex: 25 para R$ 25,00)")
		}
		return err
	}

	text, markup := donationThanksView(cents)
	return helpers.SendMD(c, text, markup)
}
