package domain

// Card is a single card instance. Instances are minted during setup and only
// ever move between zones afterwards; the instance id is globally unique and
// sortable by mint order.
type Card struct {
	InstanceID   string `json:"instanceId"`
	DefinitionID int    `json:"definitionId"`
}

// Domain is a player's formed holding: the backing princess, the territories
// fixed at formation, and the succession cards banked since.
type Domain struct {
	Princess        Card   `json:"princess"`
	Territories     []Card `json:"territories"`
	SuccessionCards []Card `json:"successionCards"`
}

// Player holds the per-player zones and turn resources.
type Player struct {
	ID                         string  `json:"id"`
	Hand                       []Card  `json:"hand"`
	DrawPile                   []Card  `json:"drawPile"`
	DiscardPile                []Card  `json:"discardPile"`
	PlayingCards               []Card  `json:"playingCards"`
	Domain                     *Domain `json:"domain,omitempty"`
	CurrentCoins               int     `json:"currentCoins"`
	LinkRemains                int     `json:"linkRemains"`
	SuccessionPoints           *int    `json:"successionPoints,omitempty"`
	CoronationCeremonyDeclared bool    `json:"coronationCeremonyDeclared"`
}

// AwaitingAction is one (player, action kind) legality token. The set of
// tokens is the sole gate deciding which submissions the engine accepts.
type AwaitingAction struct {
	PlayerID string `json:"playerId"`
	Kind     Kind   `json:"type"`
}

// State is the authoritative snapshot of one game. Every transition replaces
// it wholesale; two distinct State values never alias mutable substructure.
type State struct {
	Players         []Player         `json:"players"`
	Outskirts       []Card           `json:"outskirts"`
	SupplyPile      []Card           `json:"supplyPile"`
	CurseCards      []Card           `json:"curseCards"`
	PrincessCards   []Card           `json:"princessCards"`
	BasicMarket     []Card           `json:"basicMarket"`
	RandomMarket    []Card           `json:"randomMarket"`
	AwaitingActions []AwaitingAction `json:"awaitingActions"`
	TurnPlayerIndex int              `json:"turnPlayerIndex"`

	FirstCoronationCeremonyDeclaredPlayerIndex *int `json:"firstCoronationCeremonyDeclaredPlayerIndex,omitempty"`

	Overtime       bool   `json:"overtime"`
	WinnerPlayerID string `json:"winnerPlayerId,omitempty"`
}

// Initial returns the "no game" state.
func Initial() State {
	return State{
		Players:         []Player{},
		Outskirts:       []Card{},
		SupplyPile:      []Card{},
		CurseCards:      []Card{},
		PrincessCards:   []Card{},
		BasicMarket:     []Card{},
		RandomMarket:    []Card{},
		AwaitingActions: []AwaitingAction{},
	}
}

// Clone returns a deep copy sharing no mutable substructure with the receiver.
func (s State) Clone() State {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}
	out.Outskirts = cloneCards(s.Outskirts)
	out.SupplyPile = cloneCards(s.SupplyPile)
	out.CurseCards = cloneCards(s.CurseCards)
	out.PrincessCards = cloneCards(s.PrincessCards)
	out.BasicMarket = cloneCards(s.BasicMarket)
	out.RandomMarket = cloneCards(s.RandomMarket)
	out.AwaitingActions = append([]AwaitingAction{}, s.AwaitingActions...)
	if s.FirstCoronationCeremonyDeclaredPlayerIndex != nil {
		v := *s.FirstCoronationCeremonyDeclaredPlayerIndex
		out.FirstCoronationCeremonyDeclaredPlayerIndex = &v
	}
	return out
}

func (p Player) clone() Player {
	out := p
	out.Hand = cloneCards(p.Hand)
	out.DrawPile = cloneCards(p.DrawPile)
	out.DiscardPile = cloneCards(p.DiscardPile)
	out.PlayingCards = cloneCards(p.PlayingCards)
	if p.Domain != nil {
		d := Domain{
			Princess:        p.Domain.Princess,
			Territories:     cloneCards(p.Domain.Territories),
			SuccessionCards: cloneCards(p.Domain.SuccessionCards),
		}
		out.Domain = &d
	}
	if p.SuccessionPoints != nil {
		v := *p.SuccessionPoints
		out.SuccessionPoints = &v
	}
	return out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append([]Card{}, cards...)
}

// turnPlayer returns the player whose turn it is.
func (s *State) turnPlayer() *Player {
	return &s.Players[s.TurnPlayerIndex]
}

// playerByID returns the player with the given id, or nil.
func (s *State) playerByID(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}
