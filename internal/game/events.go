package game

import "time"

// Event is one entry of a game's append-only audit log. The engine only
// writes events; resolution logic never reads them back.
type Event struct {
	Type        string         `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
}

const (
	EventPlayerJoin  = "player_join"
	EventPlayerLeave = "player_leave"
	EventGameStart   = "game_start"
	EventPhaseNight  = "phase_night"
	EventPhaseDay    = "phase_day"
	EventNightResult = "night_result"
	EventDayResult   = "day_result"
	EventSeerCheck   = "seer_check"
	EventCupidPair   = "cupid_pair"
	EventGameEnd     = "game_end"
)

func newEvent(kind, description string, data map[string]any) Event {
	return Event{
		Type:        kind,
		Timestamp:   time.Now(),
		Description: description,
		Data:        data,
	}
}
