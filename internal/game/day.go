package game

import (
	"fmt"
	"sort"
)

// DaySummary is what the day resolver produced.
type DaySummary struct {
	Results    []string `json:"results"`
	Deaths     []string `json:"deaths"`
	Eliminated string   `json:"eliminated,omitempty"`
}

// EndDay tallies the day's ballots, eliminates the plurality target if
// any votes were cast, evaluates the win condition, and transitions back
// to night (or ends the game). Stale epochs are a no-op, mirroring
// EndNight.
func (g *Game) EndDay(epoch uint64) (DaySummary, Team, uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusDay || g.epoch != epoch {
		return DaySummary{}, "", 0, false
	}

	sum := g.resolveDayLocked()

	g.History = append(g.History, newEvent(EventDayResult,
		fmt.Sprintf("day %d resolved", g.Day),
		map[string]any{"deaths": sum.Deaths}))

	if winner := g.winnerLocked(); winner != "" {
		g.finishLocked(winner)
		return sum, winner, g.epoch, true
	}

	g.beginNightLocked()
	return sum, "", g.epoch, true
}

// resolveDayLocked applies the plurality rule with the same lowest-ID
// tie-break as the night kill tally. Abstentions never count; zero
// ballots means no elimination.
func (g *Game) resolveDayLocked() DaySummary {
	var sum DaySummary

	votes := make(map[string]int)
	for _, v := range g.DayVotes {
		if v.TargetID != "" {
			votes[v.TargetID]++
		}
	}

	target := g.tallyLocked(votes)
	if target == "" {
		sum.Results = append(sum.Results, "The village could not decide. No one was eliminated.")
		return sum
	}

	victim := g.Players[target]
	if victim == nil || !victim.IsAlive {
		sum.Results = append(sum.Results, "The village could not decide. No one was eliminated.")
		return sum
	}

	sum.Eliminated = victim.ID
	victim.IsAlive = false
	sum.Deaths = append(sum.Deaths, victim.ID)
	sum.Results = append(sum.Results,
		fmt.Sprintf("%s was eliminated with %d votes!", victim.Name, votes[target]))

	// Eliminations cascade to a cupid partner just like night deaths.
	if victim.PairedWith != "" {
		if partner := g.Players[victim.PairedWith]; partner != nil && partner.IsAlive {
			partner.IsAlive = false
			sum.Deaths = append(sum.Deaths, partner.ID)
			sum.Results = append(sum.Results,
				fmt.Sprintf("%s died of a broken heart!", partner.Name))
		}
	}

	sort.Strings(sum.Deaths)
	return sum
}
