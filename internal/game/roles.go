package game

import (
	"fmt"
	"math/rand"
	"sync"
)

// RoleType identifies a role in the catalog.
type RoleType string

const (
	RoleWerewolf   RoleType = "werewolf"
	RoleVillager   RoleType = "villager"
	RoleSeer       RoleType = "seer"
	RoleGuard      RoleType = "guard"
	RoleHunter     RoleType = "hunter"
	RoleCupid      RoleType = "cupid"
	RoleWitch      RoleType = "witch"
	RoleLittleGirl RoleType = "little_girl"
)

// Team is the side a role fights for.
type Team string

const (
	TeamWerewolf Team = "werewolf"
	TeamVillage  Team = "village"
)

// Role is a static catalog entry.
type Role struct {
	Type          RoleType
	Team          Team
	Name          string
	Emoji         string
	Description   string
	CanActAtNight bool
	Tier          int
}

// Catalog holds every playable role. Hunter and Little Girl are reserved
// roles: they keep their catalog identity but play as villagers until
// their mechanics are specified.
var Catalog = map[RoleType]Role{
	RoleWerewolf: {
		Type:          RoleWerewolf,
		Team:          TeamWerewolf,
		Name:          "Werewolf",
		Emoji:         "🐺",
		Description:   "Votes to kill one player each night",
		CanActAtNight: true,
		Tier:          1,
	},
	RoleVillager: {
		Type:        RoleVillager,
		Team:        TeamVillage,
		Name:        "Villager",
		Emoji:       "👤",
		Description: "No special abilities, votes during the day",
		Tier:        1,
	},
	RoleSeer: {
		Type:          RoleSeer,
		Team:          TeamVillage,
		Name:          "Seer",
		Emoji:         "🔮",
		Description:   "Checks one player each night to learn their team",
		CanActAtNight: true,
		Tier:          1,
	},
	RoleGuard: {
		Type:          RoleGuard,
		Team:          TeamVillage,
		Name:          "Guard",
		Emoji:         "🛡️",
		Description:   "Protects one player each night, never the same player twice in a row",
		CanActAtNight: true,
		Tier:          1,
	},
	RoleHunter: {
		Type:        RoleHunter,
		Team:        TeamVillage,
		Name:        "Hunter",
		Emoji:       "🎯",
		Description: "Reserved role, currently plays as a villager",
		Tier:        2,
	},
	RoleCupid: {
		Type:          RoleCupid,
		Team:          TeamVillage,
		Name:          "Cupid",
		Emoji:         "💘",
		Description:   "Pairs two players on the first night; they die together",
		CanActAtNight: true,
		Tier:          2,
	},
	RoleWitch: {
		Type:          RoleWitch,
		Team:          TeamVillage,
		Name:          "Witch",
		Emoji:         "🎭",
		Description:   "Has one heal potion and one poison, each usable once per game",
		CanActAtNight: true,
		Tier:          2,
	},
	RoleLittleGirl: {
		Type:          RoleLittleGirl,
		Team:          TeamVillage,
		Name:          "Little Girl",
		Emoji:         "👧",
		Description:   "Reserved role, currently plays as a villager",
		CanActAtNight: true,
		Tier:          2,
	},
}

// Preset is a named role composition bound to a player-count range.
// Slots beyond the fixed role list fill with villagers.
type Preset struct {
	MinPlayers int
	MaxPlayers int
	Roles      []RoleType
}

var presetMu sync.RWMutex

var presets = map[string]Preset{
	"mini": {
		MinPlayers: 6,
		MaxPlayers: 8,
		Roles: []RoleType{
			RoleWerewolf,
			RoleSeer,
			RoleGuard,
			RoleVillager,
			RoleVillager,
			RoleVillager,
		},
	},
	"basic": {
		MinPlayers: 8,
		MaxPlayers: 10,
		Roles: []RoleType{
			RoleWerewolf,
			RoleWerewolf,
			RoleSeer,
			RoleGuard,
			RoleVillager,
			RoleVillager,
			RoleVillager,
			RoleVillager,
		},
	},
	"advanced": {
		MinPlayers: 10,
		MaxPlayers: 15,
		Roles: []RoleType{
			RoleWerewolf,
			RoleWerewolf,
			RoleWerewolf,
			RoleSeer,
			RoleGuard,
			RoleHunter,
			RoleCupid,
			RoleWitch,
			RoleVillager,
			RoleVillager,
		},
	},
}

// GetPreset looks up a preset by name.
func GetPreset(name string) (Preset, bool) {
	presetMu.RLock()
	defer presetMu.RUnlock()

	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the names of all registered presets.
func PresetNames() []string {
	presetMu.RLock()
	defer presetMu.RUnlock()

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// RegisterPreset adds or replaces a preset. Used by the config layer to
// install operator-defined compositions at startup.
func RegisterPreset(name string, p Preset) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if p.MinPlayers < 1 || p.MaxPlayers < p.MinPlayers {
		return fmt.Errorf("preset %s: invalid player range [%d, %d]", name, p.MinPlayers, p.MaxPlayers)
	}
	if len(p.Roles) > p.MaxPlayers {
		return fmt.Errorf("preset %s: %d fixed roles exceed max players %d", name, len(p.Roles), p.MaxPlayers)
	}
	for _, r := range p.Roles {
		if _, ok := Catalog[r]; !ok {
			return fmt.Errorf("preset %s: unknown role %s", name, r)
		}
	}

	presetMu.Lock()
	defer presetMu.Unlock()
	presets[name] = p
	return nil
}

// DistributeRoles builds the role list for a game of playerCount players
// using the named preset: the preset's fixed roles, padded with villagers,
// then uniformly shuffled. The returned slice always has length playerCount.
func DistributeRoles(playerCount int, preset string) ([]RoleType, error) {
	p, ok := GetPreset(preset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}

	if playerCount < p.MinPlayers || playerCount > p.MaxPlayers {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrPlayerCountOutOfRange, playerCount, p.MinPlayers, p.MaxPlayers)
	}

	roles := make([]RoleType, 0, playerCount)
	roles = append(roles, p.Roles...)
	for len(roles) < playerCount {
		roles = append(roles, RoleVillager)
	}

	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	return roles, nil
}
