package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/sse"
)

// parseLines splits a textarea into sidebar lines, dropping trailing blank rows
func parseLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// HandleLines replaces sidebar lines: the shared ones (host only) or the player's own
func (ctx *Context) HandleLines(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	r.ParseForm()
	lines := parseLines(r.FormValue("lines"))
	if len(lines) > game.MaxLinesPerBoard {
		http.Error(w, "At most "+strconv.Itoa(game.MaxLinesPerBoard)+" lines", http.StatusBadRequest)
		return
	}

	lobby.RLock()
	mode := lobby.Mode
	isHost := lobby.Host == playerID
	lobby.RUnlock()

	var err error
	switch mode {
	case models.ModeGlobal:
		if !isHost {
			http.Error(w, "Only host can change the shared lines", http.StatusForbidden)
			return
		}
		err = lobby.Global.SetLines(lines...)
	case models.ModePersonal:
		err = lobby.Personal.SetLines(playerID, lines...)
	default:
		http.Error(w, "Standings are computed from points", http.StatusConflict)
		return
	}

	if debug {
		log.Printf("HandleLines: code=%s player=%s lines=%d err=%v", lobby.Code, playerID, len(lines), err)
	}

	// A failed render still leaves its lower lines applied, so push what is on screen either way
	ctx.broadcastSidebars(lobby)
	if err != nil {
		reportError(w, "update lines", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandlePoints adjusts a player's points (host only)
func (ctx *Context) HandlePoints(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	r.ParseForm()
	target, err := uuid.Parse(r.FormValue("player"))
	if err != nil {
		http.Error(w, "Invalid player", http.StatusBadRequest)
		return
	}
	delta, err := strconv.Atoi(strings.TrimSpace(r.FormValue("delta")))
	if err != nil {
		http.Error(w, "Invalid points", http.StatusBadRequest)
		return
	}

	lobby.Lock()
	if lobby.Host != playerID {
		lobby.Unlock()
		http.Error(w, "Only host can award points", http.StatusForbidden)
		return
	}
	if !lobby.IsMember(target) {
		lobby.Unlock()
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	lobby.Points[target] += delta
	lobby.Unlock()

	if err := ctx.updateStandings(lobby); err != nil {
		ctx.broadcastLobby(lobby)
		reportError(w, "update standings", err)
		return
	}

	ctx.broadcastLobby(lobby)
	w.WriteHeader(http.StatusOK)
}

// sendError answers with an error status and also shows the message to the player
func (ctx *Context) sendError(w http.ResponseWriter, lobby *models.Lobby, playerID uuid.UUID, msg string, status int) {
	sse.BroadcastPersonalized(lobby, func(pid uuid.UUID) string {
		if pid == playerID {
			return render.ErrorMessage(msg)
		}
		return ""
	}, sse.EventErrorMessage)
	http.Error(w, msg, status)
}
