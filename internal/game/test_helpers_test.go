package game

import (
	"sort"
	"time"
)

// newTestGame builds a game already in its first night with the given
// role assignment, bypassing the lobby flow so tests control the cast.
func newTestGame(roles map[string]RoleType) *Game {
	ids := make([]string, 0, len(roles))
	for id := range roles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := NewGame("room-1", ids[0], Config{
		Preset:        "basic",
		MinPlayers:    1,
		MaxPlayers:    20,
		NightDuration: time.Hour,
		DayDuration:   time.Hour,
	})

	for _, id := range ids {
		p := NewPlayer(id, "player "+id)
		p.Role = roles[id]
		p.Team = Catalog[roles[id]].Team
		g.Players[id] = p
		g.order = append(g.order, id)

		if roles[id] == RoleWitch {
			g.WitchStates[id] = &WitchState{HasHeal: true, HasPoison: true}
		}
	}

	g.beginNightLocked()
	return g
}

// toNight forces the game back into a night phase so another round of
// submissions can be tested without running a full day.
func toNight(g *Game) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.beginNightLocked()
}

func contains(results []string, want string) bool {
	for _, r := range results {
		if r == want {
			return true
		}
	}
	return false
}
