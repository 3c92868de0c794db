package game

import (
	"fmt"
	"sort"
)

// SeerReveal is the outcome of one seer check, visible to that seer only.
type SeerReveal struct {
	SeerID     string `json:"seerId"`
	TargetID   string `json:"targetId"`
	IsWerewolf bool   `json:"isWerewolf"`
}

// NightSummary is what the night resolver produced: narrative results for
// the whole village, the IDs of everyone who died, and per-seer reveals.
type NightSummary struct {
	Results []string     `json:"results"`
	Deaths  []string     `json:"deaths"`
	Reveals []SeerReveal `json:"reveals,omitempty"`
}

// EndNight resolves the night's accumulated actions, clears per-night
// protection, evaluates the win condition, and transitions to day (or
// ends the game). The epoch must match the one handed out when the night
// began; a stale call is a no-op. Returns the summary, the winner if the
// game ended, the epoch of the next phase, and whether anything ran.
func (g *Game) EndNight(epoch uint64) (NightSummary, Team, uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusNight || g.epoch != epoch {
		return NightSummary{}, "", 0, false
	}

	sum := g.resolveNightLocked()

	for _, p := range g.Players {
		p.IsProtected = false
	}

	g.History = append(g.History, newEvent(EventNightResult,
		fmt.Sprintf("night %d resolved, %d dead", g.Day, len(sum.Deaths)),
		map[string]any{"deaths": sum.Deaths}))

	if winner := g.winnerLocked(); winner != "" {
		g.finishLocked(winner)
		return sum, winner, g.epoch, true
	}

	g.beginDayLocked()
	return sum, "", g.epoch, true
}

// resolveNightLocked applies the fixed resolution order: kill tally,
// guard protection, witch heal, witch poison, kill execution, pair
// cascade, cupid pairing, seer checks.
func (g *Game) resolveNightLocked() NightSummary {
	var sum NightSummary

	// 1. Werewolf kill tally. Ties break to the lowest player ID so the
	// outcome never depends on map iteration order.
	killTarget := g.tallyLocked(g.killVotesLocked())

	// 2. Guard protection. Recording LastProtected here is what feeds the
	// no-repeat check on the guard's next submission.
	for _, a := range g.NightActions {
		if a.Kind != ActionProtect {
			continue
		}
		if p := g.Players[a.TargetID]; p != nil {
			p.IsProtected = true
			g.LastProtected = a.TargetID
		}
	}

	// 3. Witch heal. The potion is spent even on a non-matching target.
	for _, a := range g.NightActions {
		if a.Kind != ActionHeal {
			continue
		}
		if ws := g.WitchStates[a.ActorID]; ws != nil {
			ws.HasHeal = false
		}
		if a.TargetID == killTarget && killTarget != "" {
			killTarget = ""
			sum.Results = append(sum.Results, "The witch saved someone from the werewolves!")
		}
	}

	// 4. Witch poison: unconditional, bypasses guard protection.
	for _, a := range g.NightActions {
		if a.Kind != ActionPoison {
			continue
		}
		if ws := g.WitchStates[a.ActorID]; ws != nil {
			ws.HasPoison = false
		}
		if p := g.Players[a.TargetID]; p != nil && p.IsAlive {
			g.killLocked(p, &sum, fmt.Sprintf("%s was poisoned by the witch!", p.Name))
		}
	}

	// 5. Kill execution.
	if killTarget != "" {
		if victim := g.Players[killTarget]; victim != nil && victim.IsAlive {
			if victim.IsProtected {
				victim.IsProtected = false
				sum.Results = append(sum.Results, "The guard saved someone from the werewolves!")
			} else {
				g.killLocked(victim, &sum, fmt.Sprintf("%s was killed in the night!", victim.Name))
			}
		}
	}

	// 7. Cupid pairing, first night only (enforced at submission).
	for _, a := range g.NightActions {
		if a.Kind != ActionPair {
			continue
		}
		first, second := g.Players[a.TargetID], g.Players[a.Target2]
		if first == nil || second == nil {
			continue
		}
		first.PairedWith = second.ID
		second.PairedWith = first.ID
		g.CupidPair = [2]string{first.ID, second.ID}
		g.History = append(g.History, newEvent(EventCupidPair,
			"cupid paired two players",
			map[string]any{"targets": []string{first.ID, second.ID}}))
	}

	// 8. Seer checks.
	for _, a := range g.NightActions {
		if a.Kind != ActionCheck {
			continue
		}
		target := g.Players[a.TargetID]
		if target == nil {
			continue
		}
		reveal := SeerReveal{
			SeerID:     a.ActorID,
			TargetID:   a.TargetID,
			IsWerewolf: target.Team == TeamWerewolf,
		}
		sum.Reveals = append(sum.Reveals, reveal)
		g.History = append(g.History, newEvent(EventSeerCheck,
			"the seer checked a player",
			map[string]any{"seerId": a.ActorID, "targetId": a.TargetID, "isWerewolf": reveal.IsWerewolf}))
	}

	if len(sum.Deaths) == 0 {
		sum.Results = append(sum.Results, "No one died last night.")
	}

	sort.Strings(sum.Deaths)
	return sum
}

// killVotesLocked counts werewolf kill votes per target.
func (g *Game) killVotesLocked() map[string]int {
	votes := make(map[string]int)
	for _, a := range g.NightActions {
		if a.Kind == ActionKill && a.TargetID != "" {
			votes[a.TargetID]++
		}
	}
	return votes
}

// tallyLocked picks the target with the most votes. Ties break to the
// lowest ID; an empty tally yields no target.
func (g *Game) tallyLocked(votes map[string]int) string {
	targets := make([]string, 0, len(votes))
	for id := range votes {
		targets = append(targets, id)
	}
	sort.Strings(targets)

	winner := ""
	max := 0
	for _, id := range targets {
		if votes[id] > max {
			max = votes[id]
			winner = id
		}
	}
	return winner
}

// killLocked marks a player dead and cascades to their cupid partner.
// The cascade is a single hop: a pair has exactly two members.
func (g *Game) killLocked(victim *Player, sum *NightSummary, result string) {
	victim.IsAlive = false
	sum.Deaths = append(sum.Deaths, victim.ID)
	sum.Results = append(sum.Results, result)

	if victim.PairedWith == "" {
		return
	}
	partner := g.Players[victim.PairedWith]
	if partner == nil || !partner.IsAlive {
		return
	}
	partner.IsAlive = false
	sum.Deaths = append(sum.Deaths, partner.ID)
	sum.Results = append(sum.Results, fmt.Sprintf("%s died of a broken heart!", partner.Name))
}
