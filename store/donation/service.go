// Package donation implements the two-step donation flow: preset buttons
// for fixed amounts plus free-text capture of a custom value.
package donation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/m3rciful/storebot/core/logger"
	"github.com/m3rciful/storebot/store/session"
)

var (
	// ErrInvalidAmount is returned when the text is not a number.
	ErrInvalidAmount = errors.New("donation: invalid amount")
	// ErrNotPositive is returned for zero or negative amounts.
	ErrNotPositive = errors.New("donation: amount must be positive")
)

// DefaultPresetsCents are the fixed donation buttons, in cents.
var DefaultPresetsCents = []int64{500, 1000, 2500, 5000}

// Service manages the donation dialog state for each user.
type Service struct {
	sessions *session.Store
	presets  []int64
}

// NewService builds a donation service. Empty presets fall back to the defaults.
func NewService(sessions *session.Store, presetsCents []int64) *Service {
	if len(presetsCents) == 0 {
		presetsCents = DefaultPresetsCents
	}
	return &Service{sessions: sessions, presets: presetsCents}
}

// Presets returns the preset amounts in cents, in display order.
func (s *Service) Presets() []int64 {
	out := make([]int64, len(s.presets))
	copy(out, s.presets)
	return out
}

// BeginCustom puts the user into the awaiting-amount dialog. The next
// text message from this user is parsed as a donation amount.
func (s *Service) BeginCustom(ctx context.Context, userID int64) {
	s.sessions.Update(userID, func(sess *session.Session) {
		sess.Dialog = session.DialogAwaitingDonation
	})
	logger.Info(ctx, "store.donation", "donation.custom.begin",
		slog.Int64("user_id", userID),
	)
}

// Cancel leaves the awaiting-amount dialog without donating.
func (s *Service) Cancel(userID int64) {
	s.sessions.Update(userID, func(sess *session.Session) {
		sess.Dialog = session.DialogIdle
	})
}

// Awaiting reports whether the user is mid-dialog.
func (s *Service) Awaiting(userID int64) bool {
	return s.sessions.Get(userID).Dialog == session.DialogAwaitingDonation
}

// maxAmountCents bounds custom donations so the cents value always fits
// in an int64. ParseFloat happily accepts "inf", "nan" and values beyond
// the int64 range, all of which must read as invalid input.
const maxAmountCents = float64(1 << 62)

// ParseAmount converts user text into cents. Both "25,50" and "25.50"
// are accepted; fractions of a cent are truncated, matching how the
// amount is quoted back to the user.
func ParseAmount(text string) (int64, error) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", ".")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidAmount
	}
	if value <= 0 {
		return 0, ErrNotPositive
	}
	cents := value * 100
	if cents > maxAmountCents {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

// FinalizeCustom parses the captured text and completes the dialog.
// The dialog only closes on success; invalid input keeps the user in
// the dialog so they can try again.
func (s *Service) FinalizeCustom(ctx context.Context, userID int64, text string) (int64, error) {
	cents, err := ParseAmount(text)
	if err != nil {
		logger.Warn(ctx, "store.donation", "donation.custom.invalid",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return 0, err
	}

	s.sessions.Update(userID, func(sess *session.Session) {
		sess.Dialog = session.DialogIdle
	})

	logger.Info(ctx, "store.donation", "donation.custom.done",
		slog.Int64("user_id", userID),
		slog.Int64("amount_cents", cents),
	)
	return cents, nil
}

// Donate records a preset donation. Presets skip the dialog entirely.
func (s *Service) Donate(ctx context.Context, userID, cents int64) error {
	if cents <= 0 {
		return ErrNotPositive
	}
	logger.Info(ctx, "store.donation", "donation.preset.done",
		slog.Int64("user_id", userID),
		slog.Int64("amount_cents", cents),
	)
	return nil
}
