package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsDonationPresets(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123456:TEST"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{500, 1000, 2500, 5000}, cfg.Donation.PresetsCents)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
	assert.Same(t, &cfg.Core, cfg.CoreConfig())
}

func TestLoadRejectsNonPositivePreset(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123456:TEST"
donation:
  presets_cents: [500, 0]
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  run_mode: longpoll
`)

	_, err := Load(path)
	assert.Error(t, err)
}
