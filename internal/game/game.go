package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusLobby Status = "lobby"
	StatusNight Status = "night"
	StatusDay   Status = "day"
	StatusEnded Status = "ended"
)

// Phase is the unit of the alternating night/day cycle.
type Phase string

const (
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
)

// ActionKind is a night action submitted by a role.
type ActionKind string

const (
	ActionKill    ActionKind = "kill"
	ActionCheck   ActionKind = "check"
	ActionProtect ActionKind = "protect"
	ActionHeal    ActionKind = "heal"
	ActionPoison  ActionKind = "poison"
	ActionPair    ActionKind = "pair"
)

// roleActions maps each role to the night actions it may submit.
var roleActions = map[RoleType][]ActionKind{
	RoleWerewolf: {ActionKill},
	RoleSeer:     {ActionCheck},
	RoleGuard:    {ActionProtect},
	RoleWitch:    {ActionHeal, ActionPoison},
	RoleCupid:    {ActionPair},
}

// NightAction is one player's submission for the current night.
// At most one per actor; a later submission replaces the earlier one.
type NightAction struct {
	ActorID  string
	Kind     ActionKind
	TargetID string
	Target2  string // second target, cupid pairing only
}

// DayVote is one player's ballot for the current day. An empty target is
// an abstention. Last write wins per voter.
type DayVote struct {
	VoterID  string
	TargetID string
}

// WitchState tracks the witch's one-shot potions.
type WitchState struct {
	HasHeal   bool
	HasPoison bool
}

// Config is the per-game configuration fixed at lobby creation.
type Config struct {
	Preset        string
	MinPlayers    int
	MaxPlayers    int
	NightDuration time.Duration
	DayDuration   time.Duration
}

// Game owns all state for one match. Every exported method takes the
// game's own lock; games are fully independent units of concurrency.
type Game struct {
	ID     string
	RoomID string
	HostID string
	Config Config

	Status Status
	Phase  Phase
	Day    int

	Players map[string]*Player
	order   []string // join order, drives role assignment

	NightActions  map[string]*NightAction
	DayVotes      map[string]*DayVote
	WitchStates   map[string]*WitchState
	LastProtected string
	CupidPair     [2]string
	Winner        Team

	PhaseEnd  time.Time
	epoch     uint64 // bumped on every phase transition, guards stale timers
	History   []Event
	CreatedAt time.Time

	mu sync.RWMutex
}

// NewGame creates a game in the lobby state.
func NewGame(roomID, hostID string, cfg Config) *Game {
	return &Game{
		ID:           uuid.NewString(),
		RoomID:       roomID,
		HostID:       hostID,
		Config:       cfg,
		Status:       StatusLobby,
		Phase:        PhaseNight,
		Players:      make(map[string]*Player),
		NightActions: make(map[string]*NightAction),
		DayVotes:     make(map[string]*DayVote),
		WitchStates:  make(map[string]*WitchState),
		CreatedAt:    time.Now(),
	}
}

// AddPlayer enrolls a player while the game is in the lobby.
func (g *Game) AddPlayer(userID, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusLobby {
		return ErrWrongPhase
	}
	if _, ok := g.Players[userID]; ok {
		return ErrAlreadyJoined
	}
	if len(g.Players) >= g.Config.MaxPlayers {
		return ErrGameFull
	}

	g.Players[userID] = NewPlayer(userID, name)
	g.order = append(g.order, userID)
	g.History = append(g.History, newEvent(EventPlayerJoin,
		fmt.Sprintf("%s joined the game", name),
		map[string]any{"userId": userID}))
	return nil
}

// RemovePlayer drops a player from the lobby.
func (g *Game) RemovePlayer(userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusLobby {
		return ErrWrongPhase
	}
	p, ok := g.Players[userID]
	if !ok {
		return ErrNotInGame
	}

	delete(g.Players, userID)
	for i, id := range g.order {
		if id == userID {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.History = append(g.History, newEvent(EventPlayerLeave,
		fmt.Sprintf("%s left the game", p.Name),
		map[string]any{"userId": userID}))
	return nil
}

// Start validates the lobby, assigns roles in join order over a shuffled
// role list, and enters the first night. Returns the night's epoch for
// timer scheduling.
func (g *Game) Start(callerID string) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if callerID != g.HostID {
		return 0, ErrNotHost
	}
	if g.Status != StatusLobby {
		return 0, ErrWrongPhase
	}
	if len(g.Players) < g.Config.MinPlayers {
		return 0, ErrNotEnoughPlayers
	}

	roles, err := DistributeRoles(len(g.order), g.Config.Preset)
	if err != nil {
		return 0, err
	}

	for i, userID := range g.order {
		p := g.Players[userID]
		p.Role = roles[i]
		p.Team = Catalog[roles[i]].Team

		if roles[i] == RoleWitch {
			g.WitchStates[userID] = &WitchState{HasHeal: true, HasPoison: true}
		}
	}

	g.Day = 0
	g.History = append(g.History, newEvent(EventGameStart,
		fmt.Sprintf("game started with %d players", len(g.order)), nil))
	g.beginNightLocked()
	return g.epoch, nil
}

// SubmitNightAction records a night submission for the acting player.
// The upsert is atomic per actor; a later call replaces the earlier one.
func (g *Game) SubmitNightAction(actorID string, kind ActionKind, targetID, target2 string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusNight {
		return ErrWrongPhase
	}
	actor, ok := g.Players[actorID]
	if !ok {
		return ErrNotInGame
	}
	if !actor.IsAlive {
		return ErrDeadPlayer
	}
	if !actionAllowed(actor.Role, kind) {
		return ErrInvalidAction
	}

	target, ok := g.Players[targetID]
	if !ok || !target.IsAlive {
		return ErrInvalidTarget
	}

	switch kind {
	case ActionProtect:
		// The no-repeat rule is enforced at selection time, so a guard
		// never wastes the night on a rejected target.
		if targetID == g.LastProtected {
			return ErrRepeatProtect
		}
		if targetID == actorID {
			return ErrInvalidTarget
		}
	case ActionHeal:
		if ws := g.WitchStates[actorID]; ws == nil || !ws.HasHeal {
			return ErrNoPotion
		}
	case ActionPoison:
		if ws := g.WitchStates[actorID]; ws == nil || !ws.HasPoison {
			return ErrNoPotion
		}
	case ActionPair:
		if g.Day != 1 {
			return ErrInvalidAction
		}
		second, ok := g.Players[target2]
		if !ok || !second.IsAlive || target2 == targetID {
			return ErrInvalidTarget
		}
	}

	g.NightActions[actorID] = &NightAction{
		ActorID:  actorID,
		Kind:     kind,
		TargetID: targetID,
		Target2:  target2,
	}
	return nil
}

// SubmitDayVote records a ballot for the acting player. An empty target
// abstains. Last write wins per voter.
func (g *Game) SubmitDayVote(voterID, targetID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusDay {
		return ErrWrongPhase
	}
	voter, ok := g.Players[voterID]
	if !ok {
		return ErrNotInGame
	}
	if !voter.IsAlive {
		return ErrDeadPlayer
	}
	if targetID != "" {
		target, ok := g.Players[targetID]
		if !ok || !target.IsAlive {
			return ErrInvalidTarget
		}
	}

	g.DayVotes[voterID] = &DayVote{VoterID: voterID, TargetID: targetID}
	return nil
}

func actionAllowed(role RoleType, kind ActionKind) bool {
	for _, k := range roleActions[role] {
		if k == kind {
			return true
		}
	}
	return false
}

// beginNightLocked enters the night phase: bumps the day counter, clears
// the action map, and arms the phase deadline.
func (g *Game) beginNightLocked() {
	g.Day++
	g.Status = StatusNight
	g.Phase = PhaseNight
	g.NightActions = make(map[string]*NightAction)
	g.PhaseEnd = time.Now().Add(g.Config.NightDuration)
	g.epoch++
	g.History = append(g.History, newEvent(EventPhaseNight,
		fmt.Sprintf("night %d started", g.Day), nil))
}

func (g *Game) beginDayLocked() {
	g.Status = StatusDay
	g.Phase = PhaseDay
	g.DayVotes = make(map[string]*DayVote)
	g.PhaseEnd = time.Now().Add(g.Config.DayDuration)
	g.epoch++
	g.History = append(g.History, newEvent(EventPhaseDay,
		fmt.Sprintf("day %d started", g.Day), nil))
}

func (g *Game) finishLocked(winner Team) {
	g.Status = StatusEnded
	g.Winner = winner
	g.epoch++
	g.History = append(g.History, newEvent(EventGameEnd,
		fmt.Sprintf("game over, %s team wins", winner),
		map[string]any{"winner": winner}))
}

// Epoch returns the current phase epoch.
func (g *Game) Epoch() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.epoch
}

// GetStatus returns the current lifecycle status.
func (g *Game) GetStatus() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status
}

// GetPlayer returns a player by ID, or nil.
func (g *Game) GetPlayer(userID string) *Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Players[userID]
}

// PlayerCount returns the roster size.
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.Players)
}

// AlivePlayers returns copies of the living players in join order. Query
// methods never hand out *Player; the resolvers mutate those structs
// under the game lock, so only value copies cross the lock boundary.
func (g *Game) AlivePlayers() []PlayerView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	players := make([]PlayerView, 0, len(g.order))
	for _, id := range g.order {
		if p := g.Players[id]; p != nil && p.IsAlive {
			players = append(players, p.view())
		}
	}
	return players
}

// AlivePlayersByTeam returns copies of the living players on one team,
// in join order.
func (g *Game) AlivePlayersByTeam(team Team) []PlayerView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	players := make([]PlayerView, 0, len(g.order))
	for _, id := range g.order {
		if p := g.Players[id]; p != nil && p.IsAlive && p.Team == team {
			players = append(players, p.view())
		}
	}
	return players
}

// PlayersByRole returns copies of the living players holding a role, in
// join order.
func (g *Game) PlayersByRole(role RoleType) []PlayerView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	players := make([]PlayerView, 0, len(g.order))
	for _, id := range g.order {
		if p := g.Players[id]; p != nil && p.IsAlive && p.Role == role {
			players = append(players, p.view())
		}
	}
	return players
}

// Events returns a copy of the audit log.
func (g *Game) Events() []Event {
	g.mu.RLock()
	defer g.mu.RUnlock()

	events := make([]Event, len(g.History))
	copy(events, g.History)
	return events
}

// AddEvent appends to the audit log. Exposed for the presentation layer;
// resolution logic records its own events.
func (g *Game) AddEvent(e Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.History = append(g.History, e)
}

// PlayerView is a read-only copy of one player for rendering.
type PlayerView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Role    RoleType `json:"role"`
	Team    Team     `json:"team"`
	IsAlive bool     `json:"isAlive"`
}

// View is a consistent read-only copy of the game for rendering.
type View struct {
	ID         string       `json:"id"`
	RoomID     string       `json:"roomId"`
	HostID     string       `json:"hostId"`
	Status     Status       `json:"status"`
	Phase      Phase        `json:"phase"`
	Day        int          `json:"day"`
	Preset     string       `json:"preset"`
	MinPlayers int          `json:"minPlayers"`
	MaxPlayers int          `json:"maxPlayers"`
	Players    []PlayerView `json:"players"`
	PhaseEnd   time.Time    `json:"phaseEnd"`
	Winner     Team         `json:"winner,omitempty"`
}

// Snapshot copies the game state under the read lock.
func (g *Game) Snapshot() View {
	g.mu.RLock()
	defer g.mu.RUnlock()

	players := make([]PlayerView, 0, len(g.order))
	for _, id := range g.order {
		if p := g.Players[id]; p != nil {
			players = append(players, p.view())
		}
	}

	return View{
		ID:         g.ID,
		RoomID:     g.RoomID,
		HostID:     g.HostID,
		Status:     g.Status,
		Phase:      g.Phase,
		Day:        g.Day,
		Preset:     g.Config.Preset,
		MinPlayers: g.Config.MinPlayers,
		MaxPlayers: g.Config.MaxPlayers,
		Players:    players,
		PhaseEnd:   g.PhaseEnd,
		Winner:     g.Winner,
	}
}
