package bot

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/storebot/core/config"
	coredatabase "github.com/m3rciful/storebot/core/database"
	"github.com/m3rciful/storebot/store/donation"
)

// DonationConfig tunes the donation flow.
type DonationConfig struct {
	// PresetsCents lists the fixed donation buttons, in cents.
	PresetsCents []int64 `yaml:"presets_cents" envconfig:"DONATION_PRESETS_CENTS"`
}

// Config aggregates everything the storefront bot needs to run.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Donation DonationConfig      `yaml:"donation"`
}

// CoreConfig returns the embedded reusable-core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads the YAML config file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if len(cfg.Donation.PresetsCents) == 0 {
		cfg.Donation.PresetsCents = donation.DefaultPresetsCents
	}
	for _, cents := range cfg.Donation.PresetsCents {
		if cents <= 0 {
			return nil, fmt.Errorf("donation.presets_cents values must be > 0, got %d", cents)
		}
	}
	return &cfg, nil
}
