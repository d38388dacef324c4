package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"krono/internal/catalog"
	"krono/internal/domain"
)

func newTestSession(seed int64) *Session {
	n := 0
	engine := domain.NewEngine(catalog.Default(), rand.New(rand.NewSource(seed)), func() string {
		n++
		return fmt.Sprintf("card-%04d", n)
	})
	return NewSession(engine)
}

func TestStartEmitsPerPlayerViews(t *testing.T) {
	s := newTestSession(42)

	st, evs, err := s.Start([]string{"u1", "u2"})
	if err != nil {
		t.Fatalf("start error: %v", err)
	}
	if !s.Started() {
		t.Fatalf("session should be started")
	}
	if len(st.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(st.Players))
	}

	updates := 0
	for _, ev := range evs {
		if ev.Kind != EventStateUpdated {
			t.Fatalf("unexpected event kind %s", ev.Kind)
		}
		updates++
		if len(ev.Recipients) != 1 {
			t.Fatalf("state update recipients = %v, want exactly one", ev.Recipients)
		}
		view := ev.Payload.(GameView)
		for _, pv := range view.Players {
			if pv.ID == ev.Recipients[0] {
				if len(pv.Hand) == 0 {
					t.Fatalf("viewer %s cannot see own hand", pv.ID)
				}
			} else if pv.Hand != nil {
				t.Fatalf("viewer %s can see %s's hand", ev.Recipients[0], pv.ID)
			}
		}
	}
	if updates != 2 {
		t.Fatalf("state updates = %d, want 2", updates)
	}
}

func TestStartTwiceFails(t *testing.T) {
	s := newTestSession(42)
	if _, _, err := s.Start([]string{"u1", "u2"}); err != nil {
		t.Fatalf("start error: %v", err)
	}
	if _, _, err := s.Start([]string{"u1", "u2"}); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("err = %v, want ErrAlreadyStarted", err)
	}
}

func TestSubmitRequiresStart(t *testing.T) {
	s := newTestSession(42)
	if _, _, err := s.Submit(domain.EndTurn{PlayerID: "u1"}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("err = %v, want ErrNotStarted", err)
	}
}

func TestSubmitAdvancesOrLeavesStateUntouched(t *testing.T) {
	s := newTestSession(42)
	if _, _, err := s.Start([]string{"u1", "u2"}); err != nil {
		t.Fatalf("start error: %v", err)
	}

	before, _ := json.Marshal(s.State())
	if _, _, err := s.Submit(domain.EndTurn{PlayerID: "u1"}); !errors.Is(err, domain.ErrIllegalAction) {
		t.Fatalf("err = %v, want ErrIllegalAction", err)
	}
	after, _ := json.Marshal(s.State())
	if string(before) != string(after) {
		t.Fatalf("rejected action changed session state")
	}

	st, evs, err := s.Submit(domain.HandElimination{PlayerID: "u1", Coin: 3})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if len(st.AwaitingActions) != 1 {
		t.Fatalf("awaiting = %d, want 1 remaining elimination", len(st.AwaitingActions))
	}
	if len(evs) != 2 {
		t.Fatalf("events = %d, want one view per player", len(evs))
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestSession(42)
	if _, _, err := s.Start([]string{"u1", "u2"}); err != nil {
		t.Fatalf("start error: %v", err)
	}
	if _, _, err := s.Submit(domain.HandElimination{PlayerID: "u1", Coin: 2}); err != nil {
		t.Fatalf("submit error: %v", err)
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot error: %v", err)
	}

	restored := newTestSession(1)
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore error: %v", err)
	}
	if !restored.Started() {
		t.Fatalf("restored session should count as started")
	}
	if !reflect.DeepEqual(s.State(), restored.State()) {
		t.Fatalf("restored state differs from original")
	}

	// The restored session keeps accepting actions.
	if _, _, err := restored.Submit(domain.HandElimination{PlayerID: "u2", Coin: 3}); err != nil {
		t.Fatalf("submit on restored session: %v", err)
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "NotJSON", data: "not json"},
		{name: "NoPlayers", data: `{"players":[]}`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			s := newTestSession(1)
			if err := s.Restore([]byte(test.data)); err == nil {
				t.Fatalf("expected restore to fail")
			}
			if s.Started() {
				t.Fatalf("failed restore must not mark session started")
			}
		})
	}
}
