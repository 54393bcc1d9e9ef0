package handlers

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/scoreboard"
	"github.com/aaronzipp/scoreboards/internal/sse"
	"github.com/aaronzipp/scoreboards/internal/teams"
)

// validName checks a player name; names become team entries, so they share the team name limit
func validName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != "" && chat.Len(name) <= teams.MaxNameLength
}

// attachBoard builds the lobby's scoreboard for its mode
func (ctx *Context) attachBoard(lobby *models.Lobby) error {
	if lobby.Mode.PerViewer() {
		lobby.Personal = scoreboard.NewPerViewerBoard(ctx.Host, ctx.Caps, ctx.Options)
		return nil
	}
	lobby.Global = scoreboard.NewGlobalBoard(ctx.Host, ctx.Caps, ctx.Options)
	return lobby.Global.SetTitle(lobby.Title)
}

// addToBoard attaches a player and, for personal boards, seeds their title
func (ctx *Context) addToBoard(lobby *models.Lobby, playerID uuid.UUID) error {
	if err := lobby.Board().AddPlayer(playerID); err != nil {
		return err
	}
	if lobby.Personal != nil {
		return lobby.Personal.SetTitle(playerID, lobby.Title)
	}
	return nil
}

func (ctx *Context) removeFromBoard(lobby *models.Lobby, playerID uuid.UUID) {
	if lobby.Personal != nil {
		lobby.Personal.RemovePlayer(playerID)
		return
	}
	lobby.Global.RemovePlayer(playerID)
}

func (ctx *Context) destroyBoard(lobby *models.Lobby) {
	if lobby.Personal != nil {
		lobby.Personal.Destroy()
		return
	}
	lobby.Global.Destroy()
}

// HandleCreateLobby creates a new lobby
func (ctx *Context) HandleCreateLobby(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	hostName, ok := validName(r.FormValue("name"))
	if !ok {
		http.Error(w, "Name is required (at most 16 characters)", http.StatusBadRequest)
		return
	}
	mode, err := models.ParseMode(r.FormValue("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = ctx.Title
	}

	viewer := ctx.Host.Join(hostName)
	playerID := viewer.ID()
	roomCode := game.GetUniqueRoomCode(ctx.LobbyStore)

	lobby := models.NewLobby(roomCode, mode, title)
	lobby.Host = playerID
	lobby.Players[playerID] = &models.Player{ID: playerID, Name: hostName}
	if err := ctx.attachBoard(lobby); err != nil {
		ctx.Host.Leave(playerID)
		reportError(w, "create lobby", err)
		return
	}
	if err := ctx.addToBoard(lobby, playerID); err != nil {
		ctx.Host.Leave(playerID)
		reportError(w, "create lobby", err)
		return
	}
	if err := ctx.updateStandings(lobby); err != nil {
		log.Printf("Create lobby %s: standings: %v", roomCode, err)
	}

	ctx.LobbyStore.Set(roomCode, lobby)

	log.Printf("Created lobby: code=%s mode=%s host=%s", roomCode, mode, playerID)

	setPlayerCookie(w, playerID)

	// Redirect to lobby
	w.Header().Set("HX-Redirect", game.LobbyPath(roomCode))
	w.WriteHeader(http.StatusOK)
}

// HandleJoinLobby allows a player to join an existing lobby
func (ctx *Context) HandleJoinLobby(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	roomCode := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	playerName, ok := validName(r.FormValue("name"))

	if roomCode == "" || !ok {
		http.Error(w, "Room code and name (at most 16 characters) are required", http.StatusBadRequest)
		return
	}

	lobby, exists := ctx.LobbyStore.Get(roomCode)
	if !exists {
		http.Error(w, "Lobby not found", http.StatusNotFound)
		return
	}

	lobby.Lock()
	for _, p := range lobby.Players {
		if strings.EqualFold(p.Name, playerName) {
			lobby.Unlock()
			http.Error(w, "Name already taken in this lobby", http.StatusConflict)
			return
		}
	}

	viewer := ctx.Host.Join(playerName)
	playerID := viewer.ID()
	lobby.Players[playerID] = &models.Player{ID: playerID, Name: playerName}
	lobby.Unlock()

	if err := ctx.addToBoard(lobby, playerID); err != nil {
		// The player is in; a bad line elsewhere must not keep them out
		log.Printf("Join lobby %s: render: %v", roomCode, err)
	}
	if err := ctx.updateStandings(lobby); err != nil {
		log.Printf("Join lobby %s: standings: %v", roomCode, err)
	}

	log.Printf("Player joined lobby: code=%s playerID=%s name=%s", roomCode, playerID, playerName)

	// Broadcast update to all clients
	ctx.broadcastLobby(lobby)

	setPlayerCookie(w, playerID)

	// Redirect to lobby
	w.Header().Set("HX-Redirect", game.LobbyPath(roomCode))
	w.WriteHeader(http.StatusOK)
}

// HandleLobby displays the lobby page
func (ctx *Context) HandleLobby(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, err := ctx.getLobbyAndPlayer(r, r.PathValue("code"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	lobby.RLock()
	view := render.LobbyView{
		Code:     lobby.Code,
		Mode:     string(lobby.Mode),
		Players:  render.PlayerList(lobby.Players, lobby.Host),
		Controls: render.HostControls(lobby, playerID),
		Scores:   render.ScoreTable(lobby),
		Teams:    render.TeamList(lobby.Board().Teams(), lobby.Players),
	}
	lobby.RUnlock()
	view.Sidebar = ctx.sidebarFor(playerID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(render.LobbyPage(view)))
}

// HandleLeaveLobby removes the player; the host role passes on, and the last one out closes the lobby
func (ctx *Context) HandleLeaveLobby(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	lobby.Lock()
	delete(lobby.Players, playerID)
	delete(lobby.Points, playerID)
	remaining := len(lobby.Players)
	hostChanged := false
	if lobby.Host == playerID && remaining > 0 {
		ids := make([]*models.Player, 0, remaining)
		for _, p := range lobby.Players {
			ids = append(ids, p)
		}
		sort.Slice(ids, func(i, j int) bool { return strings.ToLower(ids[i].Name) < strings.ToLower(ids[j].Name) })
		lobby.Host = ids[0].ID
		hostChanged = true
	}
	lobby.Unlock()

	ctx.removeFromBoard(lobby, playerID)
	ctx.Host.Leave(playerID)

	log.Printf("Player left lobby: code=%s playerID=%s", lobby.Code, playerID)

	if remaining == 0 {
		ctx.destroyBoard(lobby)
		ctx.LobbyStore.Delete(lobby.Code)
		log.Printf("Lobby %s closed: no players left", lobby.Code)
	} else {
		if err := ctx.updateStandings(lobby); err != nil {
			log.Printf("Leave lobby %s: standings: %v", lobby.Code, err)
		}
		if hostChanged {
			lobby.RLock()
			name := lobby.Players[lobby.Host].Name
			lobby.RUnlock()
			sse.Broadcast(lobby, sse.EventHostChanged, render.Notice(name+" is now the host"))
		}
		ctx.broadcastLobby(lobby)
	}

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

// HandleCloseLobby deletes the lobby
func (ctx *Context) HandleCloseLobby(w http.ResponseWriter, r *http.Request) {
	lobby, playerID, ok := ctx.requireMember(w, r)
	if !ok {
		return
	}

	lobby.RLock()
	isHost := lobby.Host == playerID
	players := make([]uuid.UUID, 0, len(lobby.Players))
	for id := range lobby.Players {
		players = append(players, id)
	}
	lobby.RUnlock()

	if !isHost {
		http.Error(w, "Only host can close lobby", http.StatusForbidden)
		return
	}

	// Broadcast closure
	sse.Broadcast(lobby, sse.EventNavRedirect, render.RedirectSnippet("/"))

	ctx.destroyBoard(lobby)
	for _, id := range players {
		ctx.Host.Leave(id)
	}
	ctx.LobbyStore.Delete(lobby.Code)

	log.Printf("Closed lobby: code=%s", lobby.Code)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}
