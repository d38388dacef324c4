package app

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestViewHidesOtherHands(t *testing.T) {
	s := newTestSession(7)
	st, _, err := s.Start([]string{"u1", "u2", "u3"})
	if err != nil {
		t.Fatalf("start error: %v", err)
	}

	v := View(st, "u2")
	if len(v.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(v.Players))
	}
	for _, pv := range v.Players {
		if pv.HandCount != 5 || pv.DrawPileCount != 5 {
			t.Fatalf("player %s counts = %d/%d, want 5/5", pv.ID, pv.HandCount, pv.DrawPileCount)
		}
		if pv.ID == "u2" {
			if len(pv.Hand) != 5 {
				t.Fatalf("viewer hand = %d, want 5", len(pv.Hand))
			}
			if len(pv.DrawPile) != 5 {
				t.Fatalf("viewer draw pile = %d, want 5", len(pv.DrawPile))
			}
		} else {
			if pv.Hand != nil {
				t.Fatalf("player %s hand leaked to viewer", pv.ID)
			}
			if pv.DrawPile != nil {
				t.Fatalf("player %s draw pile leaked to viewer", pv.ID)
			}
		}
	}

	if v.CurseCardCount != len(st.CurseCards) {
		t.Fatalf("curse count = %d, want %d", v.CurseCardCount, len(st.CurseCards))
	}
	if len(v.AwaitingActions) != len(st.AwaitingActions) {
		t.Fatalf("awaiting = %d, want %d", len(v.AwaitingActions), len(st.AwaitingActions))
	}
}

func TestViewSerializesWithoutHiddenZones(t *testing.T) {
	s := newTestSession(7)
	st, _, err := s.Start([]string{"u1", "u2"})
	if err != nil {
		t.Fatalf("start error: %v", err)
	}

	data, err := json.Marshal(View(st, "u1"))
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	body := string(data)

	// Exactly one draw pile serializes as a card list: the viewer's own.
	if got := strings.Count(body, `"drawPile":`); got != 1 {
		t.Fatalf("draw pile lists in view = %d, want 1:\n%s", got, body)
	}
	for _, field := range []string{`"drawPileCount"`, `"handCount"`, `"curseCardCount"`, `"supplyPileCount"`, `"basicMarket"`} {
		if !strings.Contains(body, field) {
			t.Fatalf("view missing field %s:\n%s", field, body)
		}
	}
}
