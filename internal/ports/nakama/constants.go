package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameKrono is the authoritative match handler name registered with Nakama.
	MatchNameKrono = "krono_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame                 int64 = 1
	OpHandElimination           int64 = 2
	OpPlayHand                  int64 = 3
	OpBuyCard                   int64 = 4
	OpBackPrincess              int64 = 5
	OpSetSuccessionCard         int64 = 6
	OpDeclareCoronationCeremony int64 = 7
	OpEndTurn                   int64 = 8

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpPlayerLeft     int64 = 102
	OpGameStarted    int64 = 103
	OpStateUpdate    int64 = 104 // sent privately, per-viewer projection
	OpActionRejected int64 = 105
	OpGameEnded      int64 = 106
)

// Error codes carried by action_rejected events.
const (
	ErrCodeInternal        = 0
	ErrCodeIllegalAction   = 1
	ErrCodeInvalidArgument = 2
	ErrCodeCardNotFound    = 3
	ErrCodeInvalidCardKind = 4
	ErrCodeUnaffordable    = 5
)
