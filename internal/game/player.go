package game

import (
	"time"
)

// Player is a participant in one game. The team is copied from the role
// catalog at assignment time and then held independently, so team queries
// keep working after the role identity is revealed post-mortem.
type Player struct {
	ID          string
	Name        string
	Role        RoleType
	Team        Team
	IsAlive     bool
	IsProtected bool   // guard protection, valid for one night
	PairedWith  string // cupid partner, mutual
	JoinedAt    time.Time
}

// NewPlayer creates an unassigned lobby player.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Role:     RoleVillager, // placeholder until the game starts
		Team:     TeamVillage,
		IsAlive:  true,
		JoinedAt: time.Now(),
	}
}

// view copies the renderable fields. The caller must hold the game lock;
// the copy is what crosses the lock boundary, never the Player itself.
func (p *Player) view() PlayerView {
	return PlayerView{
		ID:      p.ID,
		Name:    p.Name,
		Role:    p.Role,
		Team:    p.Team,
		IsAlive: p.IsAlive,
	}
}
