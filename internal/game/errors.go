package game

import "errors"

// Validation errors: the request itself is malformed. No state is mutated.
var (
	ErrUnknownPreset         = errors.New("unknown role preset")
	ErrPlayerCountOutOfRange = errors.New("player count outside preset range")
	ErrInvalidAction         = errors.New("action not available to this role")
	ErrInvalidTarget         = errors.New("invalid action target")
)

// State conflicts: the request is well formed but arrives in the wrong
// game state. No state is mutated.
var (
	ErrGameAlreadyActive = errors.New("room already has an active game")
	ErrNotHost           = errors.New("only the host may do this")
	ErrWrongPhase        = errors.New("not allowed in the current phase")
	ErrGameFull          = errors.New("game is full")
	ErrAlreadyJoined     = errors.New("player already joined")
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrDeadPlayer        = errors.New("dead players cannot act")
	ErrNoPotion          = errors.New("potion already used")
	ErrRepeatProtect     = errors.New("cannot protect the same player two nights in a row")
)

// Not-found errors.
var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotInGame    = errors.New("player is not in this game")
)
