package game

import (
	"errors"
	"testing"
)

func TestDistributeRoles_BasicEight(t *testing.T) {
	// 8 players on "basic" must always come out as exactly
	// 2 werewolves, 1 seer, 1 guard, 4 villagers, in some order.
	for i := 0; i < 50; i++ {
		roles, err := DistributeRoles(8, "basic")
		if err != nil {
			t.Fatalf("DistributeRoles failed: %v", err)
		}
		if len(roles) != 8 {
			t.Fatalf("expected 8 roles, got %d", len(roles))
		}

		counts := make(map[RoleType]int)
		for _, r := range roles {
			counts[r]++
		}
		if counts[RoleWerewolf] != 2 || counts[RoleSeer] != 1 || counts[RoleGuard] != 1 || counts[RoleVillager] != 4 {
			t.Fatalf("wrong composition: %v", counts)
		}
	}
}

func TestDistributeRoles_PadsWithVillagers(t *testing.T) {
	// mini has 6 fixed roles; 8 players get 2 extra villagers.
	roles, err := DistributeRoles(8, "mini")
	if err != nil {
		t.Fatalf("DistributeRoles failed: %v", err)
	}

	counts := make(map[RoleType]int)
	for _, r := range roles {
		counts[r]++
	}
	if counts[RoleVillager] != 5 {
		t.Errorf("expected 5 villagers after padding, got %d", counts[RoleVillager])
	}
	if counts[RoleWerewolf] != 1 {
		t.Errorf("expected 1 werewolf, got %d", counts[RoleWerewolf])
	}
}

func TestDistributeRoles_UnknownPreset(t *testing.T) {
	_, err := DistributeRoles(8, "nope")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestDistributeRoles_PlayerCountOutOfRange(t *testing.T) {
	for _, count := range []int{5, 9, 0} {
		_, err := DistributeRoles(count, "mini")
		if !errors.Is(err, ErrPlayerCountOutOfRange) {
			t.Errorf("count %d: expected ErrPlayerCountOutOfRange, got %v", count, err)
		}
	}
}

func TestDistributeRoles_IsPermutation(t *testing.T) {
	// Every valid count on every preset must return exactly the preset's
	// multiset plus villager padding.
	for _, name := range PresetNames() {
		p, _ := GetPreset(name)
		for count := p.MinPlayers; count <= p.MaxPlayers; count++ {
			roles, err := DistributeRoles(count, name)
			if err != nil {
				t.Fatalf("%s/%d: %v", name, count, err)
			}
			if len(roles) != count {
				t.Fatalf("%s/%d: got %d roles", name, count, len(roles))
			}

			want := make(map[RoleType]int)
			for _, r := range p.Roles {
				want[r]++
			}
			want[RoleVillager] += count - len(p.Roles)

			got := make(map[RoleType]int)
			for _, r := range roles {
				got[r]++
			}
			for r, n := range want {
				if got[r] != n {
					t.Errorf("%s/%d: role %s count %d, want %d", name, count, r, got[r], n)
				}
			}
		}
	}
}

func TestRegisterPreset(t *testing.T) {
	err := RegisterPreset("duo_test", Preset{
		MinPlayers: 2,
		MaxPlayers: 4,
		Roles:      []RoleType{RoleWerewolf, RoleSeer},
	})
	if err != nil {
		t.Fatalf("RegisterPreset failed: %v", err)
	}

	roles, err := DistributeRoles(3, "duo_test")
	if err != nil {
		t.Fatalf("DistributeRoles failed: %v", err)
	}
	if len(roles) != 3 {
		t.Errorf("expected 3 roles, got %d", len(roles))
	}
}

func TestRegisterPreset_Invalid(t *testing.T) {
	if err := RegisterPreset("", Preset{MinPlayers: 1, MaxPlayers: 2}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := RegisterPreset("bad_range", Preset{MinPlayers: 5, MaxPlayers: 2}); err == nil {
		t.Error("expected error for inverted range")
	}
	if err := RegisterPreset("bad_role", Preset{
		MinPlayers: 1,
		MaxPlayers: 2,
		Roles:      []RoleType{"dragon"},
	}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestCatalogTeams(t *testing.T) {
	if Catalog[RoleWerewolf].Team != TeamWerewolf {
		t.Error("werewolf must be on the werewolf team")
	}
	for _, role := range []RoleType{RoleVillager, RoleSeer, RoleGuard, RoleHunter, RoleCupid, RoleWitch, RoleLittleGirl} {
		if Catalog[role].Team != TeamVillage {
			t.Errorf("%s must be on the village team", role)
		}
	}
}
