// Package session keeps per-user conversational state in memory.
// State is scoped to the user id, so the same user shares one cart
// across private and group chats.
package session

// DialogState marks whether the user is mid-conversation.
type DialogState int

const (
	// DialogIdle means free text goes through normal command routing.
	DialogIdle DialogState = iota
	// DialogAwaitingDonation means the next text message is parsed as a
	// custom donation amount.
	DialogAwaitingDonation
)

// Session is the full per-user state: the cart (product id -> quantity)
// plus the current dialog flag.
type Session struct {
	Cart   map[int64]int
	Dialog DialogState
}

// CartSize returns the total number of units across all cart lines.
func (s Session) CartSize() int {
	total := 0
	for _, qty := range s.Cart {
		total += qty
	}
	return total
}

func (s Session) clone() Session {
	out := Session{Dialog: s.Dialog, Cart: make(map[int64]int, len(s.Cart))}
	for id, qty := range s.Cart {
		out.Cart[id] = qty
	}
	return out
}
