package router

import (
	"testing"

	tg "github.com/m3rciful/storebot/core/telegram"
	"github.com/m3rciful/storebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestTextCommandSkipsAdminOnly(t *testing.T) {
	nop := func(c tele.Context) error { return nil }

	reg := tg.NewRegistry()
	reg.RegisterCommand("/help", commands.Command{
		Handler: nop, Description: "help", Aliases: []string{"ajuda"},
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler: nop, Description: "status", AdminOnly: true, Hidden: true,
	})

	cases := []struct {
		name string
		text string
		key  string
		ok   bool
	}{
		{"bare word", "help", "/help", true},
		{"slash form", "/help", "/help", true},
		{"alias", "ajuda", "/help", true},
		{"admin-only bare word", "status", "", false},
		{"admin-only slash form", "/status", "", false},
		{"unknown", "nope", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, cmd, ok := textCommand(reg, tc.text)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if key != tc.key {
				t.Fatalf("key = %q, want %q", key, tc.key)
			}
			if ok && cmd.Handler == nil {
				t.Fatal("resolved command has nil handler")
			}
		})
	}
}
