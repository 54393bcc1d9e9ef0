package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/sse"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
	"github.com/aaronzipp/scoreboards/internal/teams"
	"github.com/aaronzipp/scoreboards/internal/tokens"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

const playerCookie = "player_id"

var (
	errLobbyNotFound = errors.New("lobby not found")
	errNoSession     = errors.New("no session")
	errNotMember     = errors.New("not a member")
)

// getLobbyAndPlayer validates membership using session cookie
func (ctx *Context) getLobbyAndPlayer(r *http.Request, roomCode string) (*models.Lobby, uuid.UUID, error) {
	lobby, exists := ctx.LobbyStore.Get(roomCode)
	if !exists {
		return nil, uuid.Nil, errLobbyNotFound
	}
	cookie, err := r.Cookie(playerCookie)
	if err != nil {
		return nil, uuid.Nil, errNoSession
	}
	playerID, err := uuid.Parse(cookie.Value)
	if err != nil {
		return nil, uuid.Nil, errNoSession
	}
	lobby.RLock()
	member := lobby.IsMember(playerID)
	lobby.RUnlock()
	if !member {
		return nil, uuid.Nil, errNotMember
	}
	return lobby, playerID, nil
}

// requireMember is getLobbyAndPlayer that writes the error response itself
func (ctx *Context) requireMember(w http.ResponseWriter, r *http.Request) (*models.Lobby, uuid.UUID, bool) {
	lobby, playerID, err := ctx.getLobbyAndPlayer(r, r.PathValue("code"))
	switch {
	case errors.Is(err, errLobbyNotFound):
		http.Error(w, "Lobby not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		return lobby, playerID, true
	}
	return nil, uuid.Nil, false
}

func setPlayerCookie(w http.ResponseWriter, playerID uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookie,
		Value:    playerID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
}

// errorStatus maps scoreboard errors to HTTP status codes
func errorStatus(err error) int {
	var (
		tooLong  *engine.LineTooLongError
		capErr   *tokens.CapacityError
		dup      *teams.DuplicateTeamError
		nameLong *teams.NameTooLongError
		reserved *teams.ReservedNameError
	)
	switch {
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.As(err, &tooLong), errors.As(err, &capErr), errors.As(err, &nameLong), errors.As(err, &reserved):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sidebarFor renders what playerID currently sees
func (ctx *Context) sidebarFor(playerID uuid.UUID) string {
	v, ok := ctx.Host.Viewer(playerID)
	if !ok {
		return render.EmptySidebar()
	}
	s, ok := v.Surface().(*memory.Surface)
	if !ok {
		return render.EmptySidebar()
	}
	sb, ok := s.Sidebar()
	if !ok {
		return render.EmptySidebar()
	}
	return render.Sidebar(sb)
}

// updateStandings recomputes the standings lines (standings mode only)
func (ctx *Context) updateStandings(lobby *models.Lobby) error {
	lobby.RLock()
	if lobby.Mode != models.ModeStandings || lobby.Global == nil {
		lobby.RUnlock()
		return nil
	}
	lines := game.Standings(lobby.Players, lobby.Points)
	board := lobby.Global
	lobby.RUnlock()
	return board.SetLines(lines...)
}

// broadcastLobby pushes every lobby section to every connected client
func (ctx *Context) broadcastLobby(lobby *models.Lobby) {
	lobby.RLock()
	players := render.PlayerList(lobby.Players, lobby.Host)
	scores := render.ScoreTable(lobby)
	var teamList string
	if board := lobby.Board(); board != nil {
		teamList = render.TeamList(board.Teams(), lobby.Players)
	}
	lobby.RUnlock()

	sse.Broadcast(lobby, sse.EventPlayerUpdate, players)
	sse.Broadcast(lobby, sse.EventScoreUpdate, scores)
	sse.Broadcast(lobby, sse.EventTeamUpdate, teamList)
	sse.BroadcastPersonalized(lobby, func(pid uuid.UUID) string {
		lobby.RLock()
		defer lobby.RUnlock()
		return render.HostControls(lobby, pid)
	}, sse.EventControlsUpdate)
	ctx.broadcastSidebars(lobby)
}

func (ctx *Context) broadcastSidebars(lobby *models.Lobby) {
	sse.BroadcastSidebars(lobby, ctx.sidebarFor)
}

// reportError logs err and answers with its status and an inline message
func reportError(w http.ResponseWriter, action string, err error) {
	status := errorStatus(err)
	log.Printf("%s failed: %v", action, err)
	http.Error(w, fmt.Sprintf("%s: %v", action, err), status)
}
