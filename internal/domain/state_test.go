package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestCloneSharesNoSubstructure(t *testing.T) {
	e := newTestEngine(17)
	s := startGame(t, e, 2, 3)
	grantDomain(e, &s.Players[0], 1)
	s = mustApply(t, e, s, EndTurn{PlayerID: s.turnPlayer().ID})

	c := s.Clone()
	c.Players[0].Hand[0].InstanceID = "mutated"
	c.Players[0].Domain.SuccessionCards[0].InstanceID = "mutated"
	c.BasicMarket[0].InstanceID = "mutated"
	c.AwaitingActions[0].PlayerID = "mutated"
	*c.Players[0].SuccessionPoints = -99

	if s.Players[0].Hand[0].InstanceID == "mutated" {
		t.Fatalf("clone aliases player hand")
	}
	if s.Players[0].Domain.SuccessionCards[0].InstanceID == "mutated" {
		t.Fatalf("clone aliases domain")
	}
	if s.BasicMarket[0].InstanceID == "mutated" {
		t.Fatalf("clone aliases market")
	}
	if s.AwaitingActions[0].PlayerID == "mutated" {
		t.Fatalf("clone aliases awaiting actions")
	}
	if *s.Players[0].SuccessionPoints == -99 {
		t.Fatalf("clone aliases succession points")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	e := newTestEngine(17)
	s := startGame(t, e, 2, 3)
	grantDomain(e, &s.Players[0], 2)
	s = mustApply(t, e, s, EndTurn{PlayerID: s.turnPlayer().ID})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(s, restored) {
		t.Fatalf("round trip changed state:\n got %+v\nwant %+v", restored, s)
	}
}

func TestStateJSONFieldNames(t *testing.T) {
	e := newTestEngine(17)
	s := startGame(t, e, 2, 3)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snapshot := string(data)

	for _, field := range []string{
		`"players"`,
		`"instanceId"`,
		`"definitionId"`,
		`"drawPile"`,
		`"discardPile"`,
		`"playingCards"`,
		`"currentCoins"`,
		`"linkRemains"`,
		`"awaitingActions"`,
		`"playerId"`,
		`"type"`,
		`"turnPlayerIndex"`,
		`"basicMarket"`,
		`"curseCards"`,
	} {
		if !strings.Contains(snapshot, field) {
			t.Fatalf("snapshot missing field %s:\n%s", field, snapshot)
		}
	}

	// Unset optionals stay out of the snapshot.
	for _, field := range []string{
		`"winnerPlayerId"`,
		`"firstCoronationCeremonyDeclaredPlayerIndex"`,
	} {
		if strings.Contains(snapshot, field) {
			t.Fatalf("snapshot should omit unset field %s", field)
		}
	}
}
