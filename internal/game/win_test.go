package game

import "testing"

func TestCheckWin_VillageWhenNoWerewolves(t *testing.T) {
	g := newTestGame(map[string]RoleType{
		"wolf": RoleWerewolf,
		"v1":   RoleVillager,
		"v2":   RoleVillager,
	})
	g.Players["wolf"].IsAlive = false

	if got := g.CheckWin(); got != TeamVillage {
		t.Errorf("expected village win, got %q", got)
	}
}

func TestCheckWin_WerewolvesAtParity(t *testing.T) {
	g := newTestGame(map[string]RoleType{
		"wolf": RoleWerewolf,
		"v1":   RoleVillager,
		"v2":   RoleVillager,
	})
	g.Players["v1"].IsAlive = false

	if got := g.CheckWin(); got != TeamWerewolf {
		t.Errorf("expected werewolf win at parity, got %q", got)
	}
}

func TestCheckWin_GameContinues(t *testing.T) {
	g := newTestGame(map[string]RoleType{
		"wolf": RoleWerewolf,
		"v1":   RoleVillager,
		"v2":   RoleVillager,
	})

	if got := g.CheckWin(); got != "" {
		t.Errorf("expected no winner yet, got %q", got)
	}
}

func TestCheckWin_SpecialRolesCountAsVillagers(t *testing.T) {
	// Seer, guard and witch are village team members for the parity rule.
	g := newTestGame(map[string]RoleType{
		"wolf":  RoleWerewolf,
		"seer":  RoleSeer,
		"guard": RoleGuard,
		"witch": RoleWitch,
	})

	if got := g.CheckWin(); got != "" {
		t.Errorf("1 werewolf vs 3 village roles must continue, got %q", got)
	}

	g.Players["seer"].IsAlive = false
	g.Players["guard"].IsAlive = false
	if got := g.CheckWin(); got != TeamWerewolf {
		t.Errorf("expected werewolf win at parity, got %q", got)
	}
}
