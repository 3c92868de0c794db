package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"werewolf/internal/config"
	"werewolf/internal/engine"
	"werewolf/internal/game"
	"werewolf/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store    *store.MemoryStore
	ctrl     *engine.Controller
	cfg      *config.ServerConfig
	eventBus *EventBus
}

// New creates a handler and wires the event bus into the controller so
// SSE streams see engine events.
func New(s *store.MemoryStore, ctrl *engine.Controller, cfg *config.ServerConfig) *Handler {
	h := &Handler{
		store:    s,
		ctrl:     ctrl,
		cfg:      cfg,
		eventBus: NewEventBus(),
	}
	ctrl.SetNotifier(h.eventBus)
	return h
}

// EventBus fans engine events out to per-game SSE subscribers. It is the
// controller's Notifier.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan game.Event
}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan game.Event),
	}
}

// Subscribe subscribes to events for a game.
func (eb *EventBus) Subscribe(gameID string) chan game.Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan game.Event, 16)
	eb.subscribers[gameID] = append(eb.subscribers[gameID], ch)
	return ch
}

// Unsubscribe removes a subscription.
func (eb *EventBus) Unsubscribe(gameID string, ch chan game.Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[gameID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[gameID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

// Notify implements engine.Notifier. Slow subscribers drop events rather
// than block the engine.
func (eb *EventBus) Notify(gameID string, event game.Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[gameID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the engine's error taxonomy onto HTTP statuses:
// not-found 404, host violations 403, state conflicts 409, validation 400.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrNotInGame):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrGameAlreadyActive),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrDeadPlayer),
		errors.Is(err, game.ErrNoPotion),
		errors.Is(err, game.ErrRepeatProtect):
		status = http.StatusConflict
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
