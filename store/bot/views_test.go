package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/store/cart"
	"github.com/m3rciful/storebot/store/catalog"
)

func strp(s string) *string { return &s }

func TestProductListViewEmpty(t *testing.T) {
	text, markup := productListView(nil)
	assert.Equal(t, "Nenhum produto disponível no momento.", text)
	assert.Nil(t, markup)
}

func TestProductListViewGrid(t *testing.T) {
	text, markup := productListView([]catalog.Product{
		{ID: 1, Name: "Camiseta Tech", Price: 59.90},
		{ID: 2, Name: "Caneca Dev", Price: 35.00},
		{ID: 3, Name: "Boné Hacker", Price: 45.00},
	})

	assert.Contains(t, text, "🛍️ **Nossos Produtos:**")
	assert.Contains(t, text, "🆔 `1`: **Camiseta Tech** - R$ 59.90")
	assert.Contains(t, text, "🆔 `3`: **Boné Hacker** - R$ 45.00")

	require.NotNil(t, markup)
	// two product buttons per row plus the trailing cart row
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Len(t, markup.InlineKeyboard[1], 1)
	assert.Equal(t, "🛒 Ver Carrinho", markup.InlineKeyboard[2][0].Text)
}

func TestProductListViewEscapesMarkdown(t *testing.T) {
	text, _ := productListView([]catalog.Product{
		{ID: 1, Name: "Camiseta *promo*", Price: 10},
	})
	assert.Contains(t, text, `Camiseta \*promo\*`)
}

func TestProductViewWithAndWithoutDescription(t *testing.T) {
	text, markup := productView(catalog.Product{
		ID: 2, Name: "Caneca Dev", Price: 35.00,
		Description: strp("Caneca de cerâmica para seu café ou chá."),
	})
	assert.Contains(t, text, "🖼️ **Caneca Dev**")
	assert.Contains(t, text, "Caneca de cerâmica")
	assert.Contains(t, text, "💰 **Preço:** R$ 35.00")
	assert.Contains(t, text, "🆔: `2`")
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 3)

	text, _ = productView(catalog.Product{ID: 9, Name: "Misterioso", Price: 1})
	assert.Contains(t, text, "Sem descrição.")
}

func TestCartViewEmpty(t *testing.T) {
	text, markup := cartView(cart.Summary{})
	assert.Equal(t, "Seu carrinho está vazio. 🛒", text)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "🛍️ Ver Produtos", markup.InlineKeyboard[0][0].Text)
}

func TestCartViewLinesAndTotal(t *testing.T) {
	sum := cart.Summary{
		Lines: []cart.Line{
			{ProductID: 1, Product: catalog.Product{ID: 1, Name: "Camiseta Tech", Price: 59.90}, Qty: 2, Subtotal: 119.80},
			{ProductID: 2, Product: catalog.Product{ID: 2, Name: "Caneca Dev", Price: 35.00}, Qty: 1, Subtotal: 35.00},
		},
		Units: 3,
		Total: 154.80,
	}

	text, markup := cartView(sum)
	assert.Contains(t, text, "🔹 Camiseta Tech (x2) - R$ 119.80")
	assert.Contains(t, text, "🔹 Caneca Dev (x1) - R$ 35.00")
	assert.Contains(t, text, "💰 **Total: R$ 154.80**")

	require.NotNil(t, markup)
	// one remove row per line + continue + checkout + donation
	require.Len(t, markup.InlineKeyboard, 5)
	assert.Equal(t, "➖ Remover 1 Camiseta Tech", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "✅ Finalizar Compra", markup.InlineKeyboard[3][0].Text)
}

func TestCartViewUnavailableLine(t *testing.T) {
	sum := cart.Summary{
		Lines: []cart.Line{
			{ProductID: 1, Product: catalog.Product{ID: 1, Name: "Camiseta Tech", Price: 59.90}, Qty: 1, Subtotal: 59.90},
			{ProductID: 7, Qty: 2, Unavailable: true},
		},
		Units: 1,
		Total: 59.90,
	}

	text, markup := cartView(sum)
	assert.Contains(t, text, "🔹 Produto ID 7 (indisponível) (x2)")
	assert.Contains(t, text, "💰 **Total: R$ 59.90**")

	// no remove button for the unavailable line
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 4)
	assert.Equal(t, "➖ Remover 1 Camiseta Tech", markup.InlineKeyboard[0][0].Text)
}

func TestCheckoutView(t *testing.T) {
	sum := cart.Summary{
		Lines: []cart.Line{
			{ProductID: 4, Product: catalog.Product{ID: 4, Name: "Caderno Coder", Price: 69.90}, Qty: 1, Subtotal: 69.90},
		},
		Units: 1,
		Total: 69.90,
	}

	text, markup := checkoutView(sum)
	assert.Contains(t, text, "📄 **Resumo do Pedido:**")
	assert.Contains(t, text, "  - Caderno Coder (x1) - R$ 69.90")
	assert.Contains(t, text, "💸 **Total a Pagar: R$ 69.90**")
	assert.Contains(t, text, "Seu carrinho foi esvaziado.")
	require.NotNil(t, markup)
	assert.Equal(t, "🛍️ Comprar Novamente", markup.InlineKeyboard[0][0].Text)
}

func TestDonationMenuView(t *testing.T) {
	text, markup := donationMenuView([]int64{500, 1000, 2500, 5000})
	assert.Contains(t, text, "💝 **Obrigado por considerar uma doação!**")

	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 6)
	assert.Equal(t, "R$ 5,00", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "R$ 50,00", markup.InlineKeyboard[3][0].Text)
	assert.Equal(t, "💰 Outro valor", markup.InlineKeyboard[4][0].Text)
	assert.Equal(t, "🔙 Voltar", markup.InlineKeyboard[5][0].Text)
}

func TestDonationThanksView(t *testing.T) {
	text, markup := donationThanksView(2550)
	assert.Contains(t, text, "Valor doado: **R$ 25.50**")
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
}

func TestWelcomeViewEscapesName(t *testing.T) {
	text, markup := welcomeView("Ana_Maria")
	assert.Contains(t, text, `Ana\_Maria`)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 3)

	text, _ = welcomeView("")
	assert.Equal(t, "Olá! Bem-vindo(a) à Loja Virtual. Use os botões ou comandos.", text)
}
