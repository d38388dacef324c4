package domain

// Kind identifies an action kind on the wire and in the awaiting-action queue.
type Kind string

const (
	KindInit                      Kind = "INIT"
	KindHandElimination           Kind = "HAND_ELIMINATION"
	KindPlayHand                  Kind = "PLAY_HAND"
	KindBuyCard                   Kind = "BUY_CARD"
	KindBackPrincess              Kind = "BACK_PRINCESS"
	KindSetSuccessionCard         Kind = "SET_SUCCESSION_CARD"
	KindDeclareCoronationCeremony Kind = "DECLARE_CORONATION_CEREMONY"
	KindEndTurn                   Kind = "END_TURN"
)

// Action is the closed set of game actions. The marker method seals the
// interface so the engine's dispatch switch stays exhaustive: adding a kind
// without a handler trips the ErrUnhandledAction default instead of silently
// doing nothing.
type Action interface {
	Kind() Kind
	// ActingPlayer identifies who submitted the action. The boundary resolves
	// identity before constructing the action; the engine never infers it.
	ActingPlayer() string

	isAction()
}

// Init starts a fresh game for the given player ids.
type Init struct {
	PlayerIDs []string
}

// HandElimination shapes a player's opening hand to the chosen coin count.
type HandElimination struct {
	PlayerID string
	Coin     int
}

// PlayHand plays a territory card from the turn player's hand.
type PlayHand struct {
	PlayerID string
	CardID   string
}

// BuyCard buys a market card into the turn player's discard pile.
type BuyCard struct {
	PlayerID string
	CardID   string
}

// BackPrincess claims a princess from the shared pool and forms the domain.
type BackPrincess struct {
	PlayerID string
	CardID   string
}

// SetSuccessionCard banks a succession card from hand into the domain.
type SetSuccessionCard struct {
	PlayerID string
	CardID   string
}

// DeclareCoronationCeremony declares the endgame trigger.
type DeclareCoronationCeremony struct {
	PlayerID string
}

// EndTurn finishes the turn player's turn and advances the turn pointer.
type EndTurn struct {
	PlayerID string
}

func (Init) Kind() Kind                      { return KindInit }
func (HandElimination) Kind() Kind           { return KindHandElimination }
func (PlayHand) Kind() Kind                  { return KindPlayHand }
func (BuyCard) Kind() Kind                   { return KindBuyCard }
func (BackPrincess) Kind() Kind              { return KindBackPrincess }
func (SetSuccessionCard) Kind() Kind         { return KindSetSuccessionCard }
func (DeclareCoronationCeremony) Kind() Kind { return KindDeclareCoronationCeremony }
func (EndTurn) Kind() Kind                   { return KindEndTurn }

func (Init) ActingPlayer() string                        { return "" }
func (a HandElimination) ActingPlayer() string           { return a.PlayerID }
func (a PlayHand) ActingPlayer() string                  { return a.PlayerID }
func (a BuyCard) ActingPlayer() string                   { return a.PlayerID }
func (a BackPrincess) ActingPlayer() string              { return a.PlayerID }
func (a SetSuccessionCard) ActingPlayer() string         { return a.PlayerID }
func (a DeclareCoronationCeremony) ActingPlayer() string { return a.PlayerID }
func (a EndTurn) ActingPlayer() string                   { return a.PlayerID }

func (Init) isAction()                      {}
func (HandElimination) isAction()           {}
func (PlayHand) isAction()                  {}
func (BuyCard) isAction()                   {}
func (BackPrincess) isAction()              {}
func (SetSuccessionCard) isAction()         {}
func (DeclareCoronationCeremony) isAction() {}
func (EndTurn) isAction()                   {}
