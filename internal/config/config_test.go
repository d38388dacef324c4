package config

import (
	"encoding/json"
	"testing"
)

// withConfig swaps the package-level config for the duration of a test.
func withConfig(t *testing.T, c *GameConfig) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestDefaultsWithoutConfig(t *testing.T) {
	withConfig(t, nil)

	if got := GetMaxPlayers(); got != 4 {
		t.Fatalf("GetMaxPlayers() = %d, want 4", got)
	}
	if got := GetMinPlayers(); got != 2 {
		t.Fatalf("GetMinPlayers() = %d, want 2", got)
	}
	if got := GetTickRate(); got != 1 {
		t.Fatalf("GetTickRate() = %d, want 1", got)
	}
	if !SnapshotEnabled() {
		t.Fatalf("SnapshotEnabled() = false, want true")
	}
	if got := CatalogPath(); got != "" {
		t.Fatalf("CatalogPath() = %q, want empty", got)
	}
}

func TestSnapshotEnabledDefaults(t *testing.T) {
	boolPtr := func(v bool) *bool { return &v }

	tests := []struct {
		name string
		cfg  *GameConfig
		want bool
	}{
		{name: "NoConfig", cfg: nil, want: true},
		{name: "KeyOmitted", cfg: &GameConfig{MaxPlayers: 3}, want: true},
		{name: "ExplicitTrue", cfg: &GameConfig{SnapshotEnabled: boolPtr(true)}, want: true},
		{name: "ExplicitFalse", cfg: &GameConfig{SnapshotEnabled: boolPtr(false)}, want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			withConfig(t, test.cfg)
			if got := SnapshotEnabled(); got != test.want {
				t.Fatalf("SnapshotEnabled() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestPartialConfigKeepsSnapshotDefault(t *testing.T) {
	var c GameConfig
	if err := json.Unmarshal([]byte(`{"max_players":3,"tick_rate":5}`), &c); err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}
	withConfig(t, &c)

	if !SnapshotEnabled() {
		t.Fatalf("SnapshotEnabled() = false after partial config, want true")
	}
	if got := GetMaxPlayers(); got != 3 {
		t.Fatalf("GetMaxPlayers() = %d, want 3", got)
	}
	if got := GetTickRate(); got != 5 {
		t.Fatalf("GetTickRate() = %d, want 5", got)
	}
}

func TestZeroValuesFallBackToDefaults(t *testing.T) {
	withConfig(t, &GameConfig{})

	if got := GetMaxPlayers(); got != 4 {
		t.Fatalf("GetMaxPlayers() = %d, want 4", got)
	}
	if got := GetMinPlayers(); got != 2 {
		t.Fatalf("GetMinPlayers() = %d, want 2", got)
	}
	if got := GetTickRate(); got != 1 {
		t.Fatalf("GetTickRate() = %d, want 1", got)
	}
}
