package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// CatalogPath points at a card catalog override; empty means the built-in set.
	CatalogPath string `json:"catalog_path"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
	// SnapshotEnabled is a pointer so a config file that omits the key keeps
	// the enabled default instead of silently turning persistence off.
	SnapshotEnabled *bool `json:"snapshot_enabled"`
	TickRate        int   `json:"tick_rate"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetMaxPlayers returns the configured seat cap, or the default of 4.
func GetMaxPlayers() int {
	if cfg == nil || cfg.MaxPlayers <= 0 {
		return 4
	}
	return cfg.MaxPlayers
}

// GetMinPlayers returns the configured start floor, or the default of 2.
func GetMinPlayers() int {
	if cfg == nil || cfg.MinPlayers <= 0 {
		return 2
	}
	return cfg.MinPlayers
}

// GetTickRate returns the match loop tick rate, or the default of 1.
func GetTickRate() int {
	if cfg == nil || cfg.TickRate <= 0 {
		return 1
	}
	return cfg.TickRate
}

// SnapshotEnabled reports whether game state should be persisted to storage.
// Defaults to true when no config is loaded or the key is omitted.
func SnapshotEnabled() bool {
	if cfg == nil || cfg.SnapshotEnabled == nil {
		return true
	}
	return *cfg.SnapshotEnabled
}

// CatalogPath returns the configured catalog override path, or empty.
func CatalogPath() string {
	if cfg == nil {
		return ""
	}
	return cfg.CatalogPath
}
