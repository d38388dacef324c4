package domain

import "errors"

// Rejection taxonomy. Every rejection is terminal for the submission and
// leaves the prior state untouched; the boundary maps these onto protocol
// failure responses.
var (
	// ErrIllegalAction rejects an action absent from the awaiting-action queue.
	ErrIllegalAction = errors.New("action not currently permitted")
	// ErrInvalidArgument rejects an action whose payload is out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCardNotFound rejects a card id absent from the searched zones.
	ErrCardNotFound = errors.New("card not found")
	// ErrInvalidCardKind rejects a card of the wrong category for the action.
	ErrInvalidCardKind = errors.New("invalid card kind")
	// ErrUnaffordable rejects a purchase whose cost exceeds available coins.
	ErrUnaffordable = errors.New("not enough coins")
	// ErrUnhandledAction guards the dispatch switch; unreachable while the
	// action set stays closed.
	ErrUnhandledAction = errors.New("unhandled action kind")
)
