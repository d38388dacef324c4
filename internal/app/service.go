package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"krono/internal/domain"
)

var (
	ErrNotStarted     = errors.New("game not started")
	ErrAlreadyStarted = errors.New("game already started")
)

// Session owns the authoritative state of one running game and serializes all
// access to it. The engine does the rules work; the session adds locking,
// event fan-out and snapshot persistence on top.
type Session struct {
	mu      sync.Mutex
	engine  *domain.Engine
	state   domain.State
	started bool
}

// NewSession constructs a session around the given engine.
func NewSession(engine *domain.Engine) *Session {
	return &Session{
		engine: engine,
		state:  domain.Initial(),
	}
}

// Start initializes a new game for the given players, in seat order.
func (s *Session) Start(playerIDs []string) (domain.State, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return domain.State{}, nil, ErrAlreadyStarted
	}
	next, err := s.engine.Apply(s.state, domain.Init{PlayerIDs: playerIDs})
	if err != nil {
		return domain.State{}, nil, err
	}
	s.state = next
	s.started = true
	return next.Clone(), s.events(next), nil
}

// Submit routes a player action through the engine. On success the session's
// state advances and the returned events carry each player's refreshed view;
// on failure the state is unchanged.
func (s *Session) Submit(action domain.Action) (domain.State, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return domain.State{}, nil, ErrNotStarted
	}
	next, err := s.engine.Apply(s.state, action)
	if err != nil {
		return domain.State{}, nil, err
	}
	s.state = next
	return next.Clone(), s.events(next), nil
}

// State returns a copy of the current state.
func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Started reports whether Start has succeeded on this session.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Snapshot serializes the current state for persistence.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.state)
}

// Restore replaces the session state with a previously saved snapshot. A
// restored session counts as started.
func (s *Session) Restore(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st domain.State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("failed to unmarshal game snapshot: %w", err)
	}
	if len(st.Players) == 0 {
		return fmt.Errorf("invalid game snapshot: no players")
	}
	s.state = st
	s.started = true
	return nil
}

// events builds the per-player state updates for a transition, plus a
// broadcast game-ended event once a winner exists.
func (s *Session) events(st domain.State) []Event {
	events := make([]Event, 0, len(st.Players)+1)
	for _, p := range st.Players {
		events = append(events, Event{
			Kind:       EventStateUpdated,
			Payload:    View(st, p.ID),
			Recipients: []string{p.ID},
		})
	}
	if st.WinnerPlayerID != "" {
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{WinnerPlayerID: st.WinnerPlayerID},
		})
	}
	return events
}
