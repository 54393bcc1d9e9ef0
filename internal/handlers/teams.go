package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/aaronzipp/scoreboards/internal/chat"
)

// HandleCreateTeam creates a coloured team (host only)
func (ctx *Context) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	lobby.RLock()
	isHost := lobby.Host == playerID
	lobby.RUnlock()
	if !isHost {
		http.Error(w, "Only host can create teams", http.StatusForbidden)
		return
	}

	r.ParseForm()
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "Team name is required", http.StatusBadRequest)
		return
	}
	display := strings.TrimSpace(r.FormValue("display"))
	if display == "" {
		display = name
	}
	color := chat.White
	if raw := strings.TrimSpace(r.FormValue("color")); raw != "" {
		c, err := chat.ParseColor(raw)
		if err != nil || !c.IsColor() {
			http.Error(w, "Unknown colour "+raw, http.StatusBadRequest)
			return
		}
		color = c
	}

	if _, err := lobby.Board().CreateTeam(name, display, color); err != nil {
		ctx.sendError(w, lobby, playerID, err.Error(), errorStatus(err))
		return
	}

	log.Printf("Created team: code=%s name=%s color=%s", lobby.Code, name, color.Name())

	ctx.broadcastLobby(lobby)
	w.WriteHeader(http.StatusOK)
}

// HandleJoinTeam moves the player into a team, out of any other
func (ctx *Context) HandleJoinTeam(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	r.ParseForm()
	name := strings.TrimSpace(r.FormValue("team"))
	board := lobby.Board()

	team, found := board.FindTeam(name)
	if !found {
		msg := "No team named " + name
		if suggestion, ok := board.SuggestTeam(name); ok {
			msg += ", did you mean " + suggestion + "?"
		}
		ctx.sendError(w, lobby, playerID, msg, http.StatusNotFound)
		return
	}

	for _, other := range board.Teams() {
		if other != team && other.Has(playerID) {
			other.RemoveViewer(playerID)
		}
	}
	team.AddViewer(playerID)

	if debug {
		log.Printf("HandleJoinTeam: code=%s player=%s team=%s", lobby.Code, playerID, team.Name())
	}

	ctx.broadcastLobby(lobby)
	w.WriteHeader(http.StatusOK)
}
