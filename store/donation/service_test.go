package donation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/store/session"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cents int64
		err   error
	}{
		{name: "integer", text: "25", cents: 2500},
		{name: "dot decimal", text: "25.50", cents: 2550},
		{name: "comma decimal", text: "25,50", cents: 2550},
		{name: "sub-cent truncated", text: "25.999", cents: 2599},
		{name: "surrounding spaces", text: "  10 ", cents: 1000},
		{name: "not a number", text: "abc", err: ErrInvalidAmount},
		{name: "empty", text: "", err: ErrInvalidAmount},
		{name: "nan", text: "nan", err: ErrInvalidAmount},
		{name: "nan mixed case", text: "NaN", err: ErrInvalidAmount},
		{name: "infinity", text: "inf", err: ErrInvalidAmount},
		{name: "negative infinity", text: "-inf", err: ErrInvalidAmount},
		{name: "overflows int64 cents", text: "1e300", err: ErrInvalidAmount},
		{name: "zero", text: "0", err: ErrNotPositive},
		{name: "negative", text: "-5", err: ErrNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, err := ParseAmount(tt.text)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, cents)
		})
	}
}

func TestCustomDialogLifecycle(t *testing.T) {
	sessions := session.NewStore()
	svc := NewService(sessions, nil)
	ctx := context.Background()

	assert.False(t, svc.Awaiting(42))

	svc.BeginCustom(ctx, 42)
	assert.True(t, svc.Awaiting(42))

	cents, err := svc.FinalizeCustom(ctx, 42, "25,50")
	require.NoError(t, err)
	assert.Equal(t, int64(2550), cents)
	assert.False(t, svc.Awaiting(42))
}

func TestInvalidInputKeepsDialogOpen(t *testing.T) {
	sessions := session.NewStore()
	svc := NewService(sessions, nil)
	ctx := context.Background()

	svc.BeginCustom(ctx, 42)

	_, err := svc.FinalizeCustom(ctx, 42, "abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.True(t, svc.Awaiting(42))

	_, err = svc.FinalizeCustom(ctx, 42, "-1")
	assert.ErrorIs(t, err, ErrNotPositive)
	assert.True(t, svc.Awaiting(42))
}

func TestCancelLeavesDialog(t *testing.T) {
	sessions := session.NewStore()
	svc := NewService(sessions, nil)

	svc.BeginCustom(context.Background(), 42)
	svc.Cancel(42)
	assert.False(t, svc.Awaiting(42))
}

func TestPresetsDefaultAndCustom(t *testing.T) {
	sessions := session.NewStore()

	svc := NewService(sessions, nil)
	assert.Equal(t, []int64{500, 1000, 2500, 5000}, svc.Presets())

	svc = NewService(sessions, []int64{100, 200})
	assert.Equal(t, []int64{100, 200}, svc.Presets())
}

func TestDonatePreset(t *testing.T) {
	sessions := session.NewStore()
	svc := NewService(sessions, nil)
	ctx := context.Background()

	require.NoError(t, svc.Donate(ctx, 42, 500))
	assert.ErrorIs(t, svc.Donate(ctx, 42, 0), ErrNotPositive)
}
