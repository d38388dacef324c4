package nakama

import (
	"context"
	"fmt"

	"krono/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const gameStateCollection = "krono_games"

// NakamaStateStoreAdapter persists game snapshots as system-owned Nakama
// storage objects, one per match id.
type NakamaStateStoreAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStateStoreAdapter creates a new game state store adapter.
func NewNakamaStateStoreAdapter(nk runtime.NakamaModule) *NakamaStateStoreAdapter {
	return &NakamaStateStoreAdapter{nk: nk}
}

func (a *NakamaStateStoreAdapter) Save(ctx context.Context, matchID string, snapshot []byte) error {
	if matchID == "" {
		return fmt.Errorf("matchID is required")
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      gameStateCollection,
			Key:             matchID,
			Value:           string(snapshot),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to save game snapshot: %w", err)
	}
	return nil
}

func (a *NakamaStateStoreAdapter) Load(ctx context.Context, matchID string) ([]byte, error) {
	if matchID == "" {
		return nil, fmt.Errorf("matchID is required")
	}

	reads := []*runtime.StorageRead{
		{
			Collection: gameStateCollection,
			Key:        matchID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, fmt.Errorf("failed to load game snapshot: %w", err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	return []byte(objects[0].GetValue()), nil
}

var _ ports.GameStateStore = (*NakamaStateStoreAdapter)(nil)
