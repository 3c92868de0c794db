package game

// CheckWin reports the winning team, or "" while the game continues.
// Village wins when no werewolf lives; werewolves win when they are at
// least as many as the living villagers.
func (g *Game) CheckWin() Team {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winnerLocked()
}

func (g *Game) winnerLocked() Team {
	werewolves := 0
	villagers := 0
	for _, p := range g.Players {
		if !p.IsAlive {
			continue
		}
		if p.Team == TeamWerewolf {
			werewolves++
		} else {
			villagers++
		}
	}

	if werewolves == 0 {
		return TeamVillage
	}
	if werewolves >= villagers {
		return TeamWerewolf
	}
	return ""
}
