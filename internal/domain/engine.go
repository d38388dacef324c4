package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"krono/internal/catalog"
)

// Engine applies game actions to state values. Apply never mutates its input:
// each transition works on a deep copy and returns it, so callers holding the
// prior state never observe a partial update.
//
// The engine performs no I/O and holds no locks; its only entropy sources are
// the injected rng (setup shuffles, draw-pile reshuffles) and the instance-id
// source, both swappable for deterministic replay in tests.
type Engine struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
	newID   func() string
}

// NewEngine constructs an engine over the given card catalog. A nil rng gets
// a time-seeded default; a nil newID mints time-ordered UUIDs, which keeps
// instance ids sortable by creation.
func NewEngine(cat *catalog.Catalog, rng *rand.Rand, newID func() string) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if newID == nil {
		newID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	return &Engine{catalog: cat, rng: rng, newID: newID}
}

// Apply validates the action against the awaiting-action queue, runs the
// matching transition on a copy of the state, re-evaluates scoring and
// end-game rules, and returns the next state. On error the returned state is
// the zero value and the input state remains the authoritative one.
func (e *Engine) Apply(state State, action Action) (State, error) {
	next := state.Clone()

	// INIT is the only transition not gated by the queue; it requires a
	// fresh state instead.
	if init, ok := action.(Init); ok {
		if err := e.applyInit(&next, init); err != nil {
			return State{}, err
		}
		return next, nil
	}

	idx := findAwaiting(next.AwaitingActions, action.ActingPlayer(), action.Kind())
	if idx < 0 {
		return State{}, fmt.Errorf("%w: %s by player %q", ErrIllegalAction, action.Kind(), action.ActingPlayer())
	}

	var err error
	settled := false
	switch a := action.(type) {
	case HandElimination:
		err = e.applyHandElimination(&next, a, idx)
	case PlayHand:
		err = e.applyPlayHand(&next, a)
	case BuyCard:
		err = e.applyBuyCard(&next, a)
	case BackPrincess:
		err = e.applyBackPrincess(&next, a)
	case SetSuccessionCard:
		err = e.applySetSuccessionCard(&next, a)
	case DeclareCoronationCeremony:
		err = e.applyDeclareCoronationCeremony(&next)
	case EndTurn:
		settled, err = e.applyEndTurn(&next)
	default:
		err = fmt.Errorf("%w: %T", ErrUnhandledAction, action)
	}
	if err != nil {
		return State{}, err
	}

	// A settled transition already decided the winner and emptied the queue.
	if !settled {
		e.evaluate(&next)
	}
	return next, nil
}

// findAwaiting locates the legality token for (playerID, kind), or -1.
func findAwaiting(queue []AwaitingAction, playerID string, kind Kind) int {
	for i, a := range queue {
		if a.PlayerID == playerID && a.Kind == kind {
			return i
		}
	}
	return -1
}

// perTurnActions is the baseline queue for a player's turn. BACK_PRINCESS is
// offered until the domain exists, SET_SUCCESSION_CARD afterwards.
func perTurnActions(p *Player) []AwaitingAction {
	queue := []AwaitingAction{
		{PlayerID: p.ID, Kind: KindPlayHand},
		{PlayerID: p.ID, Kind: KindBuyCard},
		{PlayerID: p.ID, Kind: KindEndTurn},
	}
	if p.Domain != nil {
		queue = append(queue, AwaitingAction{PlayerID: p.ID, Kind: KindSetSuccessionCard})
	} else {
		queue = append(queue, AwaitingAction{PlayerID: p.ID, Kind: KindBackPrincess})
	}
	return queue
}

// mint creates a fresh card instance of the given definition.
func (e *Engine) mint(definitionID int) Card {
	return Card{InstanceID: e.newID(), DefinitionID: definitionID}
}

// def resolves a card's definition. Every definition id stored in state is
// validated to resolve when the instance is minted, so the lookup result is
// trusted here.
func (e *Engine) def(c Card) catalog.Definition {
	d, _ := e.catalog.Lookup(c.DefinitionID)
	return d
}

func (e *Engine) isCategory(c Card, category catalog.Category) bool {
	return e.def(c).Category == category
}

func (e *Engine) shuffleCards(cards []Card) {
	e.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}
