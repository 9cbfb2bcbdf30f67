package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/storebot/core/telegram/format"
	"github.com/m3rciful/storebot/core/telegram/keyboard"
	"github.com/m3rciful/storebot/store/cart"
	"github.com/m3rciful/storebot/store/catalog"

	tele "gopkg.in/telebot.v4"
)

// Callback keys registered by the storefront. The payload (after '|')
// carries the product id or preset amount where applicable.
const (
	cbShopProducts  = "shop_products"
	cbShopCart      = "shop_cart"
	cbProductView   = "product_view"
	cbCartAdd       = "cart_add"
	cbCartRemoveOne = "cart_remove_one"
	cbCartCheckout  = "cart_checkout"
	cbDonateMenu    = "donate_menu"
	cbDonatePreset  = "donate_preset"
	cbDonateCustom  = "donate_custom"
)

func idPayload(id int64) string {
	return strconv.FormatInt(id, 10)
}

// priceLabel renders amounts for button labels with a decimal comma,
// e.g. "R$ 5,00". Message bodies keep the dot form of format.Price.
func priceLabel(cents int64) string {
	return strings.Replace(format.PriceCents(cents), ".", ",", 1)
}

func welcomeView(firstName string) (string, *tele.ReplyMarkup) {
	name := strings.TrimSpace(firstName)
	text := "Olá! Bem-vindo(a) à Loja Virtual. Use os botões ou comandos."
	if name != "" {
		text = fmt.Sprintf("Olá %s! Bem-vindo(a) à Loja Virtual. Use os botões ou comandos.", format.EscapeMarkdown(name))
	}
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🛍️ Ver Produtos", Unique: cbShopProducts},
		{Text: "🛒 Meu Carrinho", Unique: cbShopCart},
		{Text: "💝 Fazer Doação", Unique: cbDonateMenu},
	})
	return text, markup
}

func productListView(products []catalog.Product) (string, *tele.ReplyMarkup) {
	if len(products) == 0 {
		return "Nenhum produto disponível no momento.", nil
	}

	var b strings.Builder
	b.WriteString("🛍️ **Nossos Produtos:**\n\n")
	buttons := make([]keyboard.InlineBtn, 0, len(products))
	for _, p := range products {
		fmt.Fprintf(&b, "🆔 `%d`: **%s** - %s\n", p.ID, format.EscapeMarkdown(p.Name), format.Price(p.Price))
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%s (%s)", p.Name, format.Price(p.Price)),
			Unique: cbProductView,
			Data:   idPayload(p.ID),
		})
	}

	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	keyboard.AppendRow(markup, keyboard.InlineBtn{Text: "🛒 Ver Carrinho", Unique: cbShopCart})
	return b.String(), markup
}

func productView(p catalog.Product) (string, *tele.ReplyMarkup) {
	text := fmt.Sprintf("🖼️ **%s**\n\n%s\n\n💰 **Preço:** %s\n🆔: `%d`",
		format.EscapeMarkdown(p.Name),
		format.EscapeMarkdown(format.DerefString(p.Description, "Sem descrição.")),
		format.Price(p.Price),
		p.ID,
	)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➕ Adicionar ao Carrinho", Unique: cbCartAdd, Data: idPayload(p.ID)},
		{Text: "🛍️ Voltar aos Produtos", Unique: cbShopProducts},
		{Text: "🛒 Ver Carrinho", Unique: cbShopCart},
	})
	return text, markup
}

func cartView(sum cart.Summary) (string, *tele.ReplyMarkup) {
	if sum.Empty() {
		markup := keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "🛍️ Ver Produtos", Unique: cbShopProducts},
		})
		return "Seu carrinho está vazio. 🛒", markup
	}

	var b strings.Builder
	b.WriteString("🛒 **Seu Carrinho:**\n\n")
	rows := make([][]keyboard.InlineBtn, 0, len(sum.Lines)+3)
	for _, line := range sum.Lines {
		if line.Unavailable {
			fmt.Fprintf(&b, "🔹 Produto ID %d (indisponível) (x%d)\n", line.ProductID, line.Qty)
			continue
		}
		fmt.Fprintf(&b, "🔹 %s (x%d) - %s\n",
			format.EscapeMarkdown(line.Product.Name), line.Qty, format.Price(line.Subtotal))
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("➖ Remover 1 %s", line.Product.Name),
			Unique: cbCartRemoveOne,
			Data:   idPayload(line.ProductID),
		}})
	}
	fmt.Fprintf(&b, "\n💰 **Total: %s**", format.Price(sum.Total))

	rows = append(rows,
		[]keyboard.InlineBtn{{Text: "🛍️ Continuar Comprando", Unique: cbShopProducts}},
		[]keyboard.InlineBtn{{Text: "✅ Finalizar Compra", Unique: cbCartCheckout}},
		[]keyboard.InlineBtn{{Text: "💝 Fazer Doação", Unique: cbDonateMenu}},
	)
	return b.String(), keyboard.InlineButtonsRows(rows...)
}

func checkoutView(sum cart.Summary) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	b.WriteString("📄 **Resumo do Pedido:**\n")
	for _, line := range sum.Lines {
		if line.Unavailable {
			continue
		}
		fmt.Fprintf(&b, "  - %s (x%d) - %s\n",
			format.EscapeMarkdown(line.Product.Name), line.Qty, format.Price(line.Subtotal))
	}
	fmt.Fprintf(&b, "\n💸 **Total a Pagar: %s**\n\n", format.Price(sum.Total))
	b.WriteString("Obrigado por comprar! 🎉\n")
	b.WriteString("(Simulação de pedido concluído. Nenhum pagamento real processado.)\n")
	b.WriteString("Seu carrinho foi esvaziado.")

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🛍️ Comprar Novamente", Unique: cbShopProducts},
	})
	return b.String(), markup
}

func emptyCheckoutView() (string, *tele.ReplyMarkup) {
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🛍️ Ver Produtos", Unique: cbShopProducts},
	})
	return "Seu carrinho está vazio para finalizar.", markup
}

func donationMenuView(presetsCents []int64) (string, *tele.ReplyMarkup) {
	text := "💝 **Obrigado por considerar uma doação!**\n\nEscolha um valor ou digite um valor personalizado:\n"

	buttons := make([]keyboard.InlineBtn, 0, len(presetsCents)+2)
	for _, cents := range presetsCents {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   priceLabel(cents),
			Unique: cbDonatePreset,
			Data:   idPayload(cents),
		})
	}
	buttons = append(buttons,
		keyboard.InlineBtn{Text: "💰 Outro valor", Unique: cbDonateCustom},
		keyboard.InlineBtn{Text: "🔙 Voltar", Unique: cbShopProducts},
	)
	return text, keyboard.InlineButtons(buttons)
}

func donationThanksView(cents int64) (string, *tele.ReplyMarkup) {
	text := fmt.Sprintf(
		"💖 **Obrigado pela generosa doação!**\n\n"+
			"Valor doado: **%s**\n\n"+
			"(Simulação de pagamento concluído. Nenhum pagamento real processado.)\n\n"+
			"Sua doação ajuda muito! 🙏",
		format.PriceCents(cents),
	)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "💝 Fazer outra doação", Unique: cbDonateMenu},
		{Text: "🛍️ Ver Produtos", Unique: cbShopProducts},
	})
	return text, markup
}

const customDonationPrompt = "💰 **Digite o valor desejado:**\n\nEx: 25 (para R$ 25,00)\nEx: 50.50 (para R$ 50,50)"

const helpText = "🤖 **Comandos:**\n" +
	"/start - Iniciar conversa\n" +
	"/produtos - Listar produtos\n" +
	"/ver `<ID>` - Ver detalhes de um produto\n" +
	"/adicionar `<ID>` - Adicionar produto ao carrinho\n" +
	"/remover `<ID>` - Remover produto do carrinho\n" +
	"/carrinho - Ver seu carrinho\n" +
	"/finalizar - Finalizar compra (simulação)\n" +
	"/doar - Fazer uma doação\n" +
	"/help - Mostrar esta ajuda"
