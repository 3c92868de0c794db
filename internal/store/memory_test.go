package store

import (
	"errors"
	"testing"
	"time"

	"werewolf/internal/game"
)

func newLobby(roomID string) *game.Game {
	return game.NewGame(roomID, "host", game.Config{
		Preset:        "mini",
		MinPlayers:    6,
		MaxPlayers:    8,
		NightDuration: time.Minute,
		DayDuration:   time.Minute,
	})
}

func TestMemoryStore_AddAndGet(t *testing.T) {
	s := NewMemoryStore()
	g := newLobby("room-1")

	if err := s.AddGame(g); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 game, got %d", s.Count())
	}

	got, err := s.GetGame(g.ID)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if got != g {
		t.Error("GetGame returned a different game")
	}

	if _, err := s.GetGame("missing"); !errors.Is(err, game.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestMemoryStore_OneActiveGamePerRoom(t *testing.T) {
	s := NewMemoryStore()

	if err := s.AddGame(newLobby("room-1")); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	if err := s.AddGame(newLobby("room-1")); !errors.Is(err, game.ErrGameAlreadyActive) {
		t.Errorf("expected ErrGameAlreadyActive, got %v", err)
	}
	// A different room is unaffected.
	if err := s.AddGame(newLobby("room-2")); err != nil {
		t.Errorf("second room rejected: %v", err)
	}
}

func TestMemoryStore_EndedGameFreesRoom(t *testing.T) {
	if err := game.RegisterPreset("store_solo", game.Preset{
		MinPlayers: 1,
		MaxPlayers: 2,
		Roles:      []game.RoleType{game.RoleWerewolf},
	}); err != nil {
		t.Fatalf("RegisterPreset failed: %v", err)
	}

	s := NewMemoryStore()
	g := game.NewGame("room-1", "host", game.Config{
		Preset:        "store_solo",
		MinPlayers:    1,
		MaxPlayers:    2,
		NightDuration: time.Minute,
		DayDuration:   time.Minute,
	})
	g.AddPlayer("host", "Host")
	if err := s.AddGame(g); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}

	// A lone werewolf wins at first dawn, ending the game.
	epoch, err := g.Start("host")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, winner, _, ok := g.EndNight(epoch); !ok || winner != game.TeamWerewolf {
		t.Fatalf("expected werewolf win, ok=%v winner=%q", ok, winner)
	}

	// Once the game ends the room can host a fresh one.
	if err := s.AddGame(newLobby("room-1")); err != nil {
		t.Errorf("ended game must not block the room: %v", err)
	}
	if _, err := s.GetGame(g.ID); err != nil {
		t.Errorf("ended game must stay retrievable by ID: %v", err)
	}
}

func TestMemoryStore_GetGameByRoom(t *testing.T) {
	s := NewMemoryStore()
	g := newLobby("room-1")
	s.AddGame(g)

	got, err := s.GetGameByRoom("room-1")
	if err != nil {
		t.Fatalf("GetGameByRoom failed: %v", err)
	}
	if got.ID != g.ID {
		t.Error("wrong game returned for room")
	}

	if _, err := s.GetGameByRoom("empty-room"); !errors.Is(err, game.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestMemoryStore_DeleteGame(t *testing.T) {
	s := NewMemoryStore()
	g := newLobby("room-1")
	s.AddGame(g)

	s.DeleteGame(g.ID)
	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d", s.Count())
	}
	if _, err := s.GetGame(g.ID); !errors.Is(err, game.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound after delete, got %v", err)
	}
}
