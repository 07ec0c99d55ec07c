// Package config holds the diagnostic's TOML configuration. Defaults match
// the virtual gamepad the mapping layer creates; a config file only needs to
// state what differs.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Device DeviceConfig `toml:"device"`
	Match  MatchConfig  `toml:"match"`
	Sample SampleConfig `toml:"sample"`
	Watch  WatchConfig  `toml:"watch"`
}

// DeviceConfig selects the query backend: "auto", "winmm" or "sdl".
type DeviceConfig struct {
	Backend string `toml:"backend"`
}

// MatchConfig drives test-device identification.
type MatchConfig struct {
	NamePatterns []string `toml:"name_patterns"`
	VendorID     uint16   `toml:"vendor_id"`
	ProductID    uint16   `toml:"product_id"`
}

// SampleConfig supplies sampling defaults when positional arguments are
// absent.
type SampleConfig struct {
	Count   int `toml:"count"`
	DelayMs int `toml:"delay_ms"`
}

// WatchConfig configures the live watch feed.
type WatchConfig struct {
	ListenAddr string `toml:"listen_addr"`
	PollMs     int    `toml:"poll_ms"`
}

func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Backend: "auto",
		},
		Match: MatchConfig{
			NamePatterns: []string{"Test Gamepad", "vJoy"},
			VendorID:     0x1234,
			ProductID:    0xBEAD,
		},
		Sample: SampleConfig{
			Count:   10,
			DelayMs: 50,
		},
		Watch: WatchConfig{
			ListenAddr: ":8089",
			PollMs:     16,
		},
	}
}

// Load reads the config file at path over the defaults. An empty path or a
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
