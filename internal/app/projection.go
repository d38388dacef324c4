package app

import "krono/internal/domain"

// PlayerView is one player as seen by a specific viewer. Hands and draw
// piles are hidden information: the viewer sees their own contents, everyone
// else's show as counts only.
type PlayerView struct {
	ID                         string         `json:"id"`
	Hand                       []domain.Card  `json:"hand,omitempty"`
	HandCount                  int            `json:"handCount"`
	DrawPile                   []domain.Card  `json:"drawPile,omitempty"`
	DrawPileCount              int            `json:"drawPileCount"`
	DiscardPile                []domain.Card  `json:"discardPile"`
	PlayingCards               []domain.Card  `json:"playingCards"`
	Domain                     *domain.Domain `json:"domain,omitempty"`
	CurrentCoins               int            `json:"currentCoins"`
	LinkRemains                int            `json:"linkRemains"`
	SuccessionPoints           *int           `json:"successionPoints,omitempty"`
	CoronationCeremonyDeclared bool           `json:"coronationCeremonyDeclared"`
}

// GameView is the full game as seen by one viewer. Shared zones are public
// except the curse pool and supply pile, which show as counts.
type GameView struct {
	Players         []PlayerView            `json:"players"`
	Outskirts       []domain.Card           `json:"outskirts"`
	SupplyPileCount int                     `json:"supplyPileCount"`
	CurseCardCount  int                     `json:"curseCardCount"`
	PrincessCards   []domain.Card           `json:"princessCards"`
	BasicMarket     []domain.Card           `json:"basicMarket"`
	RandomMarket    []domain.Card           `json:"randomMarket"`
	AwaitingActions []domain.AwaitingAction `json:"awaitingActions"`
	TurnPlayerIndex int                     `json:"turnPlayerIndex"`
	Overtime        bool                    `json:"overtime"`
	WinnerPlayerID  string                  `json:"winnerPlayerId,omitempty"`
}

// View projects the authoritative state into what viewerID is allowed to see.
func View(s domain.State, viewerID string) GameView {
	players := make([]PlayerView, 0, len(s.Players))
	for _, p := range s.Players {
		pv := PlayerView{
			ID:                         p.ID,
			HandCount:                  len(p.Hand),
			DrawPileCount:              len(p.DrawPile),
			DiscardPile:                p.DiscardPile,
			PlayingCards:               p.PlayingCards,
			Domain:                     p.Domain,
			CurrentCoins:               p.CurrentCoins,
			LinkRemains:                p.LinkRemains,
			SuccessionPoints:           p.SuccessionPoints,
			CoronationCeremonyDeclared: p.CoronationCeremonyDeclared,
		}
		if p.ID == viewerID {
			pv.Hand = p.Hand
			pv.DrawPile = p.DrawPile
		}
		players = append(players, pv)
	}
	return GameView{
		Players:         players,
		Outskirts:       s.Outskirts,
		SupplyPileCount: len(s.SupplyPile),
		CurseCardCount:  len(s.CurseCards),
		PrincessCards:   s.PrincessCards,
		BasicMarket:     s.BasicMarket,
		RandomMarket:    s.RandomMarket,
		AwaitingActions: s.AwaitingActions,
		TurnPlayerIndex: s.TurnPlayerIndex,
		Overtime:        s.Overtime,
		WinnerPlayerID:  s.WinnerPlayerID,
	}
}
