package domain

import (
	"fmt"
	"sort"

	"krono/internal/catalog"
)

// applyInit seeds a fresh game: a shuffled ten-card personal deck per player,
// the shared curse, princess and basic-market pools, and one outstanding
// HAND_ELIMINATION token per player.
func (e *Engine) applyInit(s *State, a Init) error {
	if len(s.Players) > 0 || len(s.AwaitingActions) > 0 {
		return fmt.Errorf("%w: game already initialized", ErrIllegalAction)
	}
	if len(a.PlayerIDs) < MinPlayers {
		return fmt.Errorf("%w: need at least %d players, got %d", ErrInvalidArgument, MinPlayers, len(a.PlayerIDs))
	}
	seen := make(map[string]bool, len(a.PlayerIDs))
	for _, id := range a.PlayerIDs {
		if id == "" {
			return fmt.Errorf("%w: empty player id", ErrInvalidArgument)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate player id %q", ErrInvalidArgument, id)
		}
		seen[id] = true
	}

	farming := e.catalog.ByKey(catalog.KeyFarmingVillage)
	maid := e.catalog.ByKey(catalog.KeyApprenticeMaid)
	curse := e.catalog.ByKey(catalog.KeyCurse)

	s.Players = make([]Player, 0, len(a.PlayerIDs))
	for _, id := range a.PlayerIDs {
		deck := make([]Card, 0, StartingTerritoryCount+StartingSuccessionCount)
		for i := 0; i < StartingTerritoryCount; i++ {
			deck = append(deck, e.mint(farming.ID))
		}
		for i := 0; i < StartingSuccessionCount; i++ {
			deck = append(deck, e.mint(maid.ID))
		}
		e.shuffleCards(deck)

		s.Players = append(s.Players, Player{
			ID:           id,
			Hand:         append([]Card{}, deck[:HandCardCount]...),
			DrawPile:     append([]Card{}, deck[HandCardCount:]...),
			DiscardPile:  []Card{},
			PlayingCards: []Card{},
			LinkRemains:  1,
		})
	}

	s.CurseCards = make([]Card, 0, len(a.PlayerIDs)*CurseCardCountPerPlayer)
	for i := 0; i < len(a.PlayerIDs)*CurseCardCountPerPlayer; i++ {
		s.CurseCards = append(s.CurseCards, e.mint(curse.ID))
	}

	s.PrincessCards = []Card{}
	for _, d := range e.catalog.ListByCategory(catalog.CategoryPrincess) {
		s.PrincessCards = append(s.PrincessCards, e.mint(d.ID))
	}

	s.BasicMarket = []Card{}
	for _, d := range e.catalog.BasicMarket() {
		for i := 0; i < d.MarketCount; i++ {
			s.BasicMarket = append(s.BasicMarket, e.mint(d.ID))
		}
	}

	s.RandomMarket = []Card{}
	s.SupplyPile = []Card{}
	s.Outskirts = []Card{}

	s.AwaitingActions = make([]AwaitingAction, 0, len(a.PlayerIDs))
	for _, id := range a.PlayerIDs {
		s.AwaitingActions = append(s.AwaitingActions, AwaitingAction{PlayerID: id, Kind: KindHandElimination})
	}
	return nil
}

// applyHandElimination repartitions a player's opening ten cards so the hand
// holds the chosen number of territory cards. Once every player has finished,
// the permanent turn order is fixed: a random shuffle followed by a stable
// sort on ascending territory-in-hand count.
func (e *Engine) applyHandElimination(s *State, a HandElimination, queueIdx int) error {
	if a.Coin < MinEliminationCoin || a.Coin > MaxEliminationCoin {
		return fmt.Errorf("%w: coin %d outside [%d,%d]", ErrInvalidArgument, a.Coin, MinEliminationCoin, MaxEliminationCoin)
	}

	p := s.playerByID(a.PlayerID)
	combined := append(append([]Card{}, p.Hand...), p.DrawPile...)
	var territories, others []Card
	for _, c := range combined {
		if e.isCategory(c, catalog.CategoryTerritory) {
			territories = append(territories, c)
		} else {
			others = append(others, c)
		}
	}

	tKeep := min(a.Coin, len(territories))
	oKeep := min(HandCardCount-a.Coin, len(others))
	p.Hand = append(append([]Card{}, territories[:tKeep]...), others[:oKeep]...)
	p.DrawPile = append(append([]Card{}, territories[tKeep:]...), others[oKeep:]...)

	s.AwaitingActions = append(s.AwaitingActions[:queueIdx], s.AwaitingActions[queueIdx+1:]...)

	if len(s.AwaitingActions) == 0 {
		e.rng.Shuffle(len(s.Players), func(i, j int) {
			s.Players[i], s.Players[j] = s.Players[j], s.Players[i]
		})
		sort.SliceStable(s.Players, func(i, j int) bool {
			return e.countCategory(s.Players[i].Hand, catalog.CategoryTerritory) <
				e.countCategory(s.Players[j].Hand, catalog.CategoryTerritory)
		})
		s.AwaitingActions = perTurnActions(s.turnPlayer())
	}
	return nil
}

func (e *Engine) countCategory(cards []Card, category catalog.Category) int {
	n := 0
	for _, c := range cards {
		if e.isCategory(c, category) {
			n++
		}
	}
	return n
}
