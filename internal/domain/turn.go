package domain

import (
	"fmt"

	"krono/internal/catalog"
)

func (e *Engine) applyPlayHand(s *State, a PlayHand) error {
	p := s.playerByID(a.PlayerID)
	if p.LinkRemains <= 0 {
		return fmt.Errorf("%w: no link remaining", ErrIllegalAction)
	}
	i := indexOfCard(p.Hand, a.CardID)
	if i < 0 {
		return fmt.Errorf("%w: %q not in hand", ErrCardNotFound, a.CardID)
	}
	c := p.Hand[i]
	def := e.def(c)
	if def.Category != catalog.CategoryTerritory {
		return fmt.Errorf("%w: %s is not a territory card", ErrInvalidCardKind, def.Key)
	}
	p.Hand = removeAt(p.Hand, i)
	p.PlayingCards = append(p.PlayingCards, c)
	p.LinkRemains += def.Link - 1
	p.CurrentCoins += def.Coin
	s.AwaitingActions = perTurnActions(p)
	return nil
}

func (e *Engine) applyBuyCard(s *State, a BuyCard) error {
	p := s.playerByID(a.PlayerID)
	zone := &s.BasicMarket
	i := indexOfCard(s.BasicMarket, a.CardID)
	if i < 0 {
		zone = &s.RandomMarket
		i = indexOfCard(s.RandomMarket, a.CardID)
	}
	if i < 0 {
		return fmt.Errorf("%w: %q is not for sale", ErrCardNotFound, a.CardID)
	}
	c := (*zone)[i]
	def := e.def(c)
	if p.CurrentCoins < def.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrUnaffordable, def.Key, def.Cost, p.CurrentCoins)
	}
	p.CurrentCoins -= def.Cost
	*zone = removeAt(*zone, i)
	p.DiscardPile = append(p.DiscardPile, c)
	s.AwaitingActions = []AwaitingAction{
		{PlayerID: p.ID, Kind: KindBuyCard},
		{PlayerID: p.ID, Kind: KindEndTurn},
	}
	return nil
}

// applyBackPrincess forms the player's domain: the bought princess plus the
// first territories played this turn, up to the domain limit.
func (e *Engine) applyBackPrincess(s *State, a BackPrincess) error {
	p := s.playerByID(a.PlayerID)
	i := indexOfCard(s.PrincessCards, a.CardID)
	if i < 0 {
		return fmt.Errorf("%w: %q is not an available princess", ErrCardNotFound, a.CardID)
	}
	princess := s.PrincessCards[i]
	def := e.def(princess)
	if p.CurrentCoins < def.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrUnaffordable, def.Key, def.Cost, p.CurrentCoins)
	}
	p.CurrentCoins -= def.Cost
	s.PrincessCards = removeAt(s.PrincessCards, i)

	territories := []Card{}
	remaining := make([]Card, 0, len(p.PlayingCards))
	for _, c := range p.PlayingCards {
		if len(territories) < DomainTerritoryLimit && e.isCategory(c, catalog.CategoryTerritory) {
			territories = append(territories, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	p.PlayingCards = remaining
	p.Domain = &Domain{
		Princess:        princess,
		Territories:     territories,
		SuccessionCards: []Card{},
	}
	s.AwaitingActions = []AwaitingAction{{PlayerID: p.ID, Kind: KindEndTurn}}
	return nil
}

func (e *Engine) applySetSuccessionCard(s *State, a SetSuccessionCard) error {
	p := s.playerByID(a.PlayerID)
	i := indexOfCard(p.Hand, a.CardID)
	if i < 0 {
		return fmt.Errorf("%w: %q not in hand", ErrCardNotFound, a.CardID)
	}
	c := p.Hand[i]
	def := e.def(c)
	if def.Category != catalog.CategorySuccession {
		return fmt.Errorf("%w: %s is not a succession card", ErrInvalidCardKind, def.Key)
	}
	p.Hand = removeAt(p.Hand, i)
	p.Domain.SuccessionCards = append(p.Domain.SuccessionCards, c)
	s.AwaitingActions = []AwaitingAction{
		{PlayerID: p.ID, Kind: KindSetSuccessionCard},
		{PlayerID: p.ID, Kind: KindEndTurn},
	}
	return nil
}

func (e *Engine) applyDeclareCoronationCeremony(s *State) error {
	p := s.turnPlayer()
	p.CoronationCeremonyDeclared = true
	if s.FirstCoronationCeremonyDeclaredPlayerIndex == nil {
		idx := s.TurnPlayerIndex
		s.FirstCoronationCeremonyDeclaredPlayerIndex = &idx
	}
	s.AwaitingActions = []AwaitingAction{{PlayerID: p.ID, Kind: KindEndTurn}}
	return nil
}

// applyEndTurn closes out the turn and hands play to the next eligible
// player. It returns true when the transition itself decided the winner: the
// turn coming back around to a sole declarant ends the game immediately.
func (e *Engine) applyEndTurn(s *State) (bool, error) {
	p := s.turnPlayer()
	p.DiscardPile = append(p.DiscardPile, p.PlayingCards...)
	p.DiscardPile = append(p.DiscardPile, p.Hand...)
	p.PlayingCards = []Card{}
	p.Hand = []Card{}
	p.LinkRemains = 1
	p.CurrentCoins = 0
	e.drawCards(p, HandCardCount)

	idx := (s.TurnPlayerIndex + 1) % len(s.Players)
	if s.Overtime {
		// Declared players sit out overtime. The scan is bounded so a
		// table where everyone has declared cannot loop forever.
		for i := 0; i < len(s.Players) && s.Players[idx].CoronationCeremonyDeclared; i++ {
			idx = (idx + 1) % len(s.Players)
		}
	}
	s.TurnPlayerIndex = idx
	next := s.turnPlayer()

	if next.CoronationCeremonyDeclared {
		declarants := 0
		for _, pl := range s.Players {
			if pl.CoronationCeremonyDeclared {
				declarants++
			}
		}
		if declarants == 1 {
			s.WinnerPlayerID = next.ID
			s.AwaitingActions = []AwaitingAction{}
			return true, nil
		}
		s.Overtime = true
	}
	s.AwaitingActions = perTurnActions(next)
	return false, nil
}

// drawCards moves up to n cards from the draw pile into the hand, reshuffling
// the discard pile back into the draw pile when it runs dry. Drawing stops
// early only when both piles are empty.
func (e *Engine) drawCards(p *Player, n int) {
	for i := 0; i < n; i++ {
		if len(p.DrawPile) == 0 {
			if len(p.DiscardPile) == 0 {
				return
			}
			p.DrawPile = p.DiscardPile
			p.DiscardPile = []Card{}
			e.shuffleCards(p.DrawPile)
		}
		p.Hand = append(p.Hand, p.DrawPile[0])
		p.DrawPile = p.DrawPile[1:]
	}
}

func indexOfCard(cards []Card, instanceID string) int {
	for i, c := range cards {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func removeAt(cards []Card, i int) []Card {
	return append(cards[:i:i], cards[i+1:]...)
}
