package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{"nil", nil, "", ""},
		{"unique set", &tele.Callback{Unique: "cart_add", Data: "12"}, "cart_add", "12"},
		{"encoded data", &tele.Callback{Data: "\\fproduct_view|3"}, "product_view", "3"},
		{"key only", &tele.Callback{Data: "\\fshop_cart"}, "shop_cart", ""},
		{"payload with pipe", &tele.Callback{Data: "\\fdonate_preset|2500"}, "donate_preset", "2500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, payload := Decode(tc.cb)
			if key != tc.key {
				t.Fatalf("key = %q, want %q", key, tc.key)
			}
			if payload != tc.payload {
				t.Fatalf("payload = %q, want %q", payload, tc.payload)
			}
		})
	}
}
