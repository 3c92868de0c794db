package engine

import (
	"log"

	"werewolf/internal/config"
	"werewolf/internal/game"
	"werewolf/internal/store"
)

// Notifier receives engine events for the presentation layer. The engine
// never blocks on it; implementations must return quickly.
type Notifier interface {
	Notify(gameID string, event game.Event)
}

// Controller is the public façade of the game engine: lobby management,
// game start, submissions, forced end, and queries. It drives the phase
// clock and is the only writer of phase transitions.
type Controller struct {
	store    *store.MemoryStore
	clock    *PhaseClock
	cfg      *config.ServerConfig
	notifier Notifier
}

// New creates a controller around a registry and clock.
func New(s *store.MemoryStore, clock *PhaseClock, cfg *config.ServerConfig) *Controller {
	return &Controller{
		store: s,
		clock: clock,
		cfg:   cfg,
	}
}

// SetNotifier installs the event sink. Must be called before any game
// starts; a nil notifier is fine.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

func (c *Controller) notify(gameID string, e game.Event) {
	if c.notifier != nil {
		c.notifier.Notify(gameID, e)
	}
}

// CreateLobby creates a game in the lobby state and enrolls the host as
// its first player. A room holds at most one non-ended game.
func (c *Controller) CreateLobby(roomID, hostID, hostName, preset string) (*game.Game, error) {
	p, ok := game.GetPreset(preset)
	if !ok {
		return nil, game.ErrUnknownPreset
	}

	g := game.NewGame(roomID, hostID, game.Config{
		Preset:        preset,
		MinPlayers:    p.MinPlayers,
		MaxPlayers:    p.MaxPlayers,
		NightDuration: c.cfg.Game.NightDuration,
		DayDuration:   c.cfg.Game.DayDuration,
	})

	if err := c.store.AddGame(g); err != nil {
		return nil, err
	}

	if err := g.AddPlayer(hostID, hostName); err != nil {
		// A freshly created lobby cannot reject its host.
		c.store.DeleteGame(g.ID)
		return nil, err
	}

	log.Printf("created %s lobby %s in room %s (host %s)", preset, g.ID, roomID, hostID)
	return g, nil
}

// Join enrolls a player in a lobby.
func (c *Controller) Join(gameID, userID, name string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := g.AddPlayer(userID, name); err != nil {
		return err
	}
	c.notify(gameID, game.Event{Type: game.EventPlayerJoin, Description: name + " joined"})
	return nil
}

// Leave removes a player from a lobby.
func (c *Controller) Leave(gameID, userID string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := g.RemovePlayer(userID); err != nil {
		return err
	}
	c.notify(gameID, game.Event{Type: game.EventPlayerLeave, Description: "a player left"})
	return nil
}

// Start assigns roles and begins the first night. Host only.
func (c *Controller) Start(gameID, callerID string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}

	epoch, err := g.Start(callerID)
	if err != nil {
		return err
	}

	log.Printf("game %s started, night 1 for %s", gameID, g.Config.NightDuration)
	c.notify(gameID, game.Event{Type: game.EventPhaseNight, Description: "night 1 started"})
	c.clock.Schedule(gameID, g.Config.NightDuration, func() {
		c.endNight(gameID, epoch)
	})
	return nil
}

// End tears a game down: cancels its pending timer and removes it from
// the registry, whatever its status. Host only.
func (c *Controller) End(gameID, callerID string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}
	if callerID != g.HostID {
		return game.ErrNotHost
	}

	c.clock.Cancel(gameID)
	c.store.DeleteGame(gameID)
	log.Printf("game %s ended by host", gameID)
	c.notify(gameID, game.Event{Type: game.EventGameEnd, Description: "game ended by host"})
	return nil
}

// SubmitNightAction records a night submission.
func (c *Controller) SubmitNightAction(gameID, actorID string, kind game.ActionKind, targetID, target2 string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.SubmitNightAction(actorID, kind, targetID, target2)
}

// SubmitDayVote records a day ballot.
func (c *Controller) SubmitDayVote(gameID, voterID, targetID string) error {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return err
	}
	return g.SubmitDayVote(voterID, targetID)
}

// endNight is the night timer callback. A stale fire (game gone, ended,
// or already advanced) does nothing.
func (c *Controller) endNight(gameID string, epoch uint64) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return
	}

	sum, winner, next, ok := g.EndNight(epoch)
	if !ok {
		return
	}

	for _, r := range sum.Results {
		log.Printf("game %s night result: %s", gameID, r)
	}
	c.notify(gameID, game.Event{
		Type:        game.EventNightResult,
		Description: "night resolved",
		Data:        map[string]any{"results": sum.Results, "deaths": sum.Deaths},
	})

	if winner != "" {
		c.finish(gameID, winner)
		return
	}

	c.notify(gameID, game.Event{Type: game.EventPhaseDay, Description: "day started"})
	c.clock.Schedule(gameID, g.Config.DayDuration, func() {
		c.endDay(gameID, next)
	})
}

// endDay is the day timer callback.
func (c *Controller) endDay(gameID string, epoch uint64) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return
	}

	sum, winner, next, ok := g.EndDay(epoch)
	if !ok {
		return
	}

	for _, r := range sum.Results {
		log.Printf("game %s day result: %s", gameID, r)
	}
	c.notify(gameID, game.Event{
		Type:        game.EventDayResult,
		Description: "day resolved",
		Data:        map[string]any{"results": sum.Results, "deaths": sum.Deaths},
	})

	if winner != "" {
		c.finish(gameID, winner)
		return
	}

	c.notify(gameID, game.Event{Type: game.EventPhaseNight, Description: "night started"})
	c.clock.Schedule(gameID, g.Config.NightDuration, func() {
		c.endNight(gameID, next)
	})
}

func (c *Controller) finish(gameID string, winner game.Team) {
	c.clock.Cancel(gameID)
	log.Printf("game %s over, %s team wins", gameID, winner)
	c.notify(gameID, game.Event{
		Type:        game.EventGameEnd,
		Description: string(winner) + " team wins",
		Data:        map[string]any{"winner": winner},
	})
}

// GetGame retrieves a game by ID.
func (c *Controller) GetGame(gameID string) (*game.Game, error) {
	return c.store.GetGame(gameID)
}

// GetGameByRoom retrieves a room's active game.
func (c *Controller) GetGameByRoom(roomID string) (*game.Game, error) {
	return c.store.GetGameByRoom(roomID)
}

// AlivePlayers lists a game's living players as value copies.
func (c *Controller) AlivePlayers(gameID string) ([]game.PlayerView, error) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.AlivePlayers(), nil
}

// PlayersByRole lists a game's living players holding a role.
func (c *Controller) PlayersByRole(gameID string, role game.RoleType) ([]game.PlayerView, error) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.PlayersByRole(role), nil
}

// PlayersByTeam lists a game's living players on a team.
func (c *Controller) PlayersByTeam(gameID string, team game.Team) ([]game.PlayerView, error) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.AlivePlayersByTeam(team), nil
}

// Events returns a game's audit log.
func (c *Controller) Events(gameID string) ([]game.Event, error) {
	g, err := c.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return g.Events(), nil
}
