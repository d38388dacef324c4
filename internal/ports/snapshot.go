package ports

import "context"

// GameStateStore persists and recovers serialized game snapshots keyed by
// match id. Load returns (nil, nil) when no snapshot exists.
type GameStateStore interface {
	Save(ctx context.Context, matchID string, snapshot []byte) error
	Load(ctx context.Context, matchID string) ([]byte, error)
}
