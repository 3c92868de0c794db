package store

import (
	"sync"

	"werewolf/internal/game"
)

// MemoryStore holds every live game in memory. State is ephemeral; a
// process restart loses all games.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewMemoryStore creates an empty registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*game.Game),
	}
}

// AddGame registers a game, enforcing at most one non-ended game per
// room. The check and insert happen under one lock so two concurrent
// creates for the same room cannot both succeed.
func (s *MemoryStore) AddGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.games {
		if existing.RoomID == g.RoomID && existing.GetStatus() != game.StatusEnded {
			return game.ErrGameAlreadyActive
		}
	}

	s.games[g.ID] = g
	return nil
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(id string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g, nil
}

// GetGameByRoom retrieves the room's active (non-ended) game.
func (s *MemoryStore) GetGameByRoom(roomID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.games {
		if g.RoomID == roomID && g.GetStatus() != game.StatusEnded {
			return g, nil
		}
	}
	return nil, game.ErrGameNotFound
}

// DeleteGame removes a game from the registry.
func (s *MemoryStore) DeleteGame(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
}

// Count returns the number of registered games.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.games)
}
