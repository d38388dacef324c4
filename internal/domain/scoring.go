package domain

// evaluate refreshes every player's succession points after a transition and
// applies the two endgame rules: during overtime the first player in seating
// order to reach the overtime threshold wins outright, otherwise a turn
// player reaching the ceremony threshold is offered the declaration. The two
// are exclusive; overtime closes the declaration window for good.
func (e *Engine) evaluate(s *State) {
	if len(s.Players) == 0 {
		return
	}
	for i := range s.Players {
		s.Players[i].SuccessionPoints = e.successionPoints(&s.Players[i])
	}
	if s.WinnerPlayerID != "" {
		return
	}

	if s.Overtime {
		for i := range s.Players {
			sp := s.Players[i].SuccessionPoints
			if sp != nil && *sp >= OvertimeWinnerRequirementPoints {
				s.WinnerPlayerID = s.Players[i].ID
				s.AwaitingActions = []AwaitingAction{}
				return
			}
		}
		// No new declarations once overtime has started.
		return
	}

	tp := s.turnPlayer()
	if tp.SuccessionPoints != nil &&
		*tp.SuccessionPoints >= CoronationCeremonyRequirementPoints &&
		!tp.CoronationCeremonyDeclared &&
		findAwaiting(s.AwaitingActions, tp.ID, KindDeclareCoronationCeremony) < 0 {
		s.AwaitingActions = append(s.AwaitingActions, AwaitingAction{
			PlayerID: tp.ID,
			Kind:     KindDeclareCoronationCeremony,
		})
	}
}

// successionPoints is nil until the player has formed a domain; afterwards it
// is the princess's value plus every banked succession card's value.
func (e *Engine) successionPoints(p *Player) *int {
	if p.Domain == nil {
		return nil
	}
	total := e.def(p.Domain.Princess).SuccessionPoint
	for _, c := range p.Domain.SuccessionCards {
		total += e.def(c).SuccessionPoint
	}
	return &total
}
