package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"werewolf/internal/game"
)

type createGameRequest struct {
	RoomID   string `json:"roomId"`
	HostID   string `json:"hostId"`
	HostName string `json:"hostName"`
	Preset   string `json:"preset"`
}

// CreateGame creates a lobby for a room.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.RoomID == "" || req.HostID == "" || req.HostName == "" {
		http.Error(w, "roomId, hostId and hostName are required", http.StatusBadRequest)
		return
	}
	if req.Preset == "" {
		req.Preset = "mini"
	}

	g, err := h.ctrl.CreateLobby(req.RoomID, req.HostID, req.HostName, req.Preset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, g.Snapshot())
}

type joinRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// JoinGame enrolls a player in a lobby.
func (h *Handler) JoinGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Name == "" {
		http.Error(w, "userId and name are required", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.Join(gameID, req.UserID, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type leaveRequest struct {
	UserID string `json:"userId"`
}

// LeaveGame removes a player from a lobby.
func (h *Handler) LeaveGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req leaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.Leave(gameID, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type startRequest struct {
	UserID string `json:"userId"`
}

// StartGame assigns roles and begins the first night. Host only.
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.Start(gameID, req.UserID); err != nil {
		writeError(w, err)
		return
	}

	g, err := h.ctrl.GetGame(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("game %s started via API", gameID)
	writeJSON(w, http.StatusOK, g.Snapshot())
}

type endRequest struct {
	UserID string `json:"userId"`
}

// EndGame tears a game down. Host only.
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req endRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.End(gameID, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type nightActionRequest struct {
	ActorID  string `json:"actorId"`
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Target2  string `json:"targetId2,omitempty"`
}

// SubmitNightAction records a night submission for a player.
func (h *Handler) SubmitNightAction(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req nightActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.ctrl.SubmitNightAction(gameID, req.ActorID, game.ActionKind(req.Kind), req.TargetID, req.Target2)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type dayVoteRequest struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"` // empty target abstains
}

// SubmitDayVote records a ballot for a player.
func (h *Handler) SubmitDayVote(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var req dayVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.SubmitDayVote(gameID, req.VoterID, req.TargetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetGame returns a game snapshot.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.ctrl.GetGame(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// GetRoomGame returns the active game snapshot for a room.
func (h *Handler) GetRoomGame(w http.ResponseWriter, r *http.Request) {
	g, err := h.ctrl.GetGameByRoom(chi.URLParam(r, "room"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// GetPlayers lists living players, optionally filtered by role or team.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")

	var (
		players []game.PlayerView
		err     error
	)
	switch {
	case r.URL.Query().Get("role") != "":
		players, err = h.ctrl.PlayersByRole(gameID, game.RoleType(r.URL.Query().Get("role")))
	case r.URL.Query().Get("team") != "":
		players, err = h.ctrl.PlayersByTeam(gameID, game.Team(r.URL.Query().Get("team")))
	default:
		players, err = h.ctrl.AlivePlayers(gameID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// GetEvents returns a game's audit log.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.ctrl.Events(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
