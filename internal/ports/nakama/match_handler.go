package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"krono/internal/app"
	"krono/internal/catalog"
	"krono/internal/config"
	"krono/internal/domain"
	"krono/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label

	phaseLobby   = "lobby"
	phasePlaying = "playing"
	phaseEnded   = "ended"
)

// matchLabel is the JSON document Nakama indexes for match listing queries.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     []string                    `json:"seats"`      // User IDs, sized from config; empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                       `json:"tick"`       // Current tick of the match
	Phase     string                      `json:"phase"`      // lobby, playing or ended
	MatchID   string                      `json:"-"`          // Nakama match id, also the snapshot storage key
	Presences map[string]runtime.Presence `json:"-"`          // Map UserId -> Presence for targeted messaging
	Session   *app.Session                `json:"-"`          // Krono game session with the rules engine
	Store     ports.GameStateStore        `json:"-"`          // Snapshot persistence, nil when disabled
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

// seatOf returns the seat index occupied by userID, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// seatedPlayerIDs returns the occupied seats in seat order.
func (ms *MatchState) seatedPlayerIDs() []string {
	ids := make([]string, 0, len(ms.Seats))
	for _, seat := range ms.Seats {
		if seat != "" {
			ids = append(ids, seat)
		}
	}
	return ids
}

// findFirstOccupiedSeat returns the first occupied seat index or -1 if none exist.
func findFirstOccupiedSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" {
			return i
		}
	}
	return -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// lobbySnapshot is broadcast whenever seating changes.
type lobbySnapshot struct {
	Seats     []string `json:"seats"`
	OwnerSeat int      `json:"ownerSeat"`
	Phase     string   `json:"phase"`
}

// actionPayload is the client request body for all in-game action opcodes.
// EndTurn and the ceremony declaration send it empty.
type actionPayload struct {
	CardID string `json:"cardId,omitempty"`
	Coin   int    `json:"coin,omitempty"`
}

// actionRejectedPayload tells one client why its submission was refused.
type actionRejectedPayload struct {
	OpCode  int64  `json:"opCode"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type gameStartedPayload struct {
	PlayerIDs []string `json:"playerIds"`
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/krono_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	cat := catalog.Default()
	if path := config.CatalogPath(); path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			logger.Warn("MatchInit: Could not load catalog from %s, using built-in: %v", path, err)
		} else {
			cat = loaded
		}
	}

	state := &MatchState{
		Seats:     make([]string, config.GetMaxPlayers()),
		OwnerSeat: -1,
		Phase:     phaseLobby,
		Presences: make(map[string]runtime.Presence),
		Session:   app.NewSession(domain.NewEngine(cat, nil, nil)),
	}
	if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
		state.MatchID = matchID
	}
	if config.SnapshotEnabled() {
		state.Store = NewNakamaStateStoreAdapter(nk)
	}

	// A snapshot passed through match params resumes a previous game.
	if snap, ok := params["snapshot"].(string); ok && snap != "" {
		if err := state.Session.Restore([]byte(snap)); err != nil {
			logger.Error("MatchInit: Failed to restore snapshot: %v", err)
		} else {
			state.Phase = phasePlaying
			for i, p := range state.Session.State().Players {
				if i < len(state.Seats) {
					state.Seats[i] = p.ID
				}
			}
			logger.Info("MatchInit: Restored game for %d players.", state.GetOccupiedSeatCount())
		}
	}

	label := matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "krono",
		Phase: state.Phase,
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, config.GetTickRate(), string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnecting players keep their seat in a running game.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Phase != phaseLobby {
		return state, false, "Game already in progress"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
			logger.Debug("MatchJoin: User %s reconnected to seat %d.", p.GetUserId(), seat)
			// Refresh a reconnecting player with their private view.
			if matchState.Session.Started() {
				mh.sendStateUpdate(matchState, dispatcher, logger, p.GetUserId())
			}
			continue
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
		}
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" {
		matchState.OwnerSeat = findFirstOccupiedSeat(matchState.Seats)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger, OpPlayerJoined)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Seats are only freed in the lobby. A running game keeps the seat
		// so the player can reconnect.
		if matchState.Phase == phaseLobby {
			if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
				matchState.Seats[seat] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
			}
		}
	}

	if matchState.OwnerSeat < 0 || matchState.Seats[matchState.OwnerSeat] == "" ||
		matchState.Presences[matchState.Seats[matchState.OwnerSeat]] == nil {
		matchState.OwnerSeat = findFirstOccupiedSeat(matchState.Seats)
	}

	if len(matchState.Presences) == 0 {
		mh.saveSnapshot(ctx, matchState, logger)
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger, OpPlayerLeft)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpHandElimination, OpPlayHand, OpBuyCard, OpBackPrincess,
			OpSetSuccessionCard, OpDeclareCoronationCeremony, OpEndTurn:
			mh.handleAction(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, OpStartGame, ErrCodeIllegalAction, "only the match owner can start the game")
		return
	}

	playerIDs := state.seatedPlayerIDs()
	if len(playerIDs) < config.GetMinPlayers() {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", len(playerIDs), config.GetMinPlayers())
		mh.sendError(state, dispatcher, logger, senderID, OpStartGame, ErrCodeInvalidArgument, "not enough players to start")
		return
	}

	_, events, err := state.Session.Start(playerIDs)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, OpStartGame, errorCode(err), err.Error())
		return
	}

	state.Phase = phasePlaying
	mh.updateLabel(state, dispatcher, logger)

	startedBytes, _ := json.Marshal(gameStartedPayload{PlayerIDs: playerIDs})
	dispatcher.BroadcastMessage(OpGameStarted, startedBytes, nil, nil, true)

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.saveSnapshot(ctx, state, logger)

	logger.Info("StartGame: Game started with %d players.", len(playerIDs))
}

func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	opCode := msg.GetOpCode()

	var payload actionPayload
	if data := msg.GetData(); len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Warn("handleAction: Invalid payload from %s for opcode %d: %v", senderID, opCode, err)
			mh.sendError(state, dispatcher, logger, senderID, opCode, ErrCodeInvalidArgument, "invalid payload")
			return
		}
	}

	action, ok := actionFor(opCode, senderID, payload)
	if !ok {
		logger.Warn("handleAction: No action for opcode %d", opCode)
		return
	}

	next, events, err := state.Session.Submit(action)
	if err != nil {
		logger.Warn("handleAction: User %s action %s rejected: %v", senderID, action.Kind(), err)
		mh.sendError(state, dispatcher, logger, senderID, opCode, errorCode(err), err.Error())
		return
	}

	if next.WinnerPlayerID != "" {
		state.Phase = phaseEnded
		mh.updateLabel(state, dispatcher, logger)
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.saveSnapshot(ctx, state, logger)
}

// actionFor maps a client opcode and payload onto the domain action it
// requests. The sender is always the acting player.
func actionFor(opCode int64, senderID string, p actionPayload) (domain.Action, bool) {
	switch opCode {
	case OpHandElimination:
		return domain.HandElimination{PlayerID: senderID, Coin: p.Coin}, true
	case OpPlayHand:
		return domain.PlayHand{PlayerID: senderID, CardID: p.CardID}, true
	case OpBuyCard:
		return domain.BuyCard{PlayerID: senderID, CardID: p.CardID}, true
	case OpBackPrincess:
		return domain.BackPrincess{PlayerID: senderID, CardID: p.CardID}, true
	case OpSetSuccessionCard:
		return domain.SetSuccessionCard{PlayerID: senderID, CardID: p.CardID}, true
	case OpDeclareCoronationCeremony:
		return domain.DeclareCoronationCeremony{PlayerID: senderID}, true
	case OpEndTurn:
		return domain.EndTurn{PlayerID: senderID}, true
	}
	return nil, false
}

// errorCode maps rule errors onto the wire codes clients switch on.
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return ErrCodeInvalidArgument
	case errors.Is(err, domain.ErrCardNotFound):
		return ErrCodeCardNotFound
	case errors.Is(err, domain.ErrInvalidCardKind):
		return ErrCodeInvalidCardKind
	case errors.Is(err, domain.ErrUnaffordable):
		return ErrCodeUnaffordable
	case errors.Is(err, domain.ErrIllegalAction),
		errors.Is(err, app.ErrNotStarted),
		errors.Is(err, app.ErrAlreadyStarted):
		return ErrCodeIllegalAction
	}
	return ErrCodeInternal
}

// dispatchEvents fans session events out to clients. Targeted events go only
// to connected recipients; events with intended recipients who are all
// disconnected are dropped, never widened to a broadcast.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		var opCode int64
		switch ev.Kind {
		case app.EventStateUpdated:
			opCode = OpStateUpdate
		case app.EventGameEnded:
			opCode = OpGameEnded
		default:
			logger.Warn("Unknown event kind: %v", ev.Kind)
			continue
		}

		bytes, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
	}
}

// sendStateUpdate pushes one player's private projection to them.
func (mh *matchHandler) sendStateUpdate(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	bytes, err := json.Marshal(app.View(state.Session.State(), userID))
	if err != nil {
		logger.Error("Failed to marshal state view for %s: %v", userID, err)
		return
	}
	dispatcher.BroadcastMessage(OpStateUpdate, bytes, []runtime.Presence{presence}, nil, true)
}

// sendError sends an action_rejected event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, opCode int64, code int, message string) {
	bytes, err := json.Marshal(actionRejectedPayload{OpCode: opCode, Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal action_rejected: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpActionRejected, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64) {
	snapshot := lobbySnapshot{
		Seats:     state.Seats,
		OwnerSeat: state.OwnerSeat,
		Phase:     state.Phase,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal lobby snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label := matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "krono",
		Phase: state.Phase,
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) saveSnapshot(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil || state.MatchID == "" || !state.Session.Started() {
		return
	}
	snapshot, err := state.Session.Snapshot()
	if err != nil {
		logger.Error("saveSnapshot: Failed to serialize: %v", err)
		return
	}
	if err := state.Store.Save(ctx, state.MatchID, snapshot); err != nil {
		logger.Error("saveSnapshot: Failed to persist: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	if matchState, ok := state.(*MatchState); ok {
		mh.saveSnapshot(ctx, matchState, logger)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
