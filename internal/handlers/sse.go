package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/sse"
)

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies
}

func writeEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// HandleSSE handles Server-Sent Events for real-time updates
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("code")
	if debug {
		log.Printf("handleSSE called: room=%s", roomCode)
	}

	lobby, playerID, err := ctx.getLobbyAndPlayer(r, roomCode)
	if err != nil {
		if debug {
			log.Printf("handleSSE: room=%s rejected (%v), sending nav-redirect to home", roomCode, err)
		}
		setSSEHeaders(w)
		writeEvent(w, sse.EventNavRedirect, render.RedirectSnippet("/"))
		return
	}

	setSSEHeaders(w)
	// Immediately flush headers to establish SSE connection
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	clientChan := make(chan models.SSEMessage, game.SSEBufferSize)
	sse.AddClient(lobby, clientChan, playerID)
	defer sse.RemoveClient(lobby, clientChan)

	lobby.RLock()
	clientCount := lobby.SSEClientCount()
	players := render.PlayerList(lobby.Players, lobby.Host)
	controls := render.HostControls(lobby, playerID)
	scores := render.ScoreTable(lobby)
	var teamList string
	if board := lobby.Board(); board != nil {
		teamList = render.TeamList(board.Teams(), lobby.Players)
	}
	lobby.RUnlock()

	if debug {
		log.Printf("handleSSE: client %s connected, now have %d total clients", playerID, clientCount)
	}

	writeEvent(w, sse.EventSidebarUpdate, ctx.sidebarFor(playerID))
	writeEvent(w, sse.EventPlayerUpdate, players)
	writeEvent(w, sse.EventControlsUpdate, controls)
	if scores != "" {
		writeEvent(w, sse.EventScoreUpdate, scores)
	}
	writeEvent(w, sse.EventTeamUpdate, teamList)

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Printf("handleSSE: client %s disconnected", playerID)
			return
		case msg := <-clientChan:
			if debug {
				log.Printf("handleSSE: sending event=%s to player %s", msg.Event, playerID)
			}
			writeEvent(w, msg.Event, msg.Data)
		}
	}
}
