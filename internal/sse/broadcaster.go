package sse

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

const sendTimeout = time.Duration(game.SSETimeoutSeconds) * time.Second

// AddClient registers a stream for playerID. A player may hold several.
func AddClient(lobby *models.Lobby, client chan models.SSEMessage, playerID uuid.UUID) {
	lobby.Lock()
	defer lobby.Unlock()

	for _, pid := range lobby.GetSSEClients() {
		if pid == playerID {
			log.Printf("WARN: player %s opened another SSE stream in lobby %s", playerID, lobby.Code)
			break
		}
	}
	lobby.AddSSEClient(client, playerID)
}

// RemoveClient unregisters a stream
func RemoveClient(lobby *models.Lobby, client chan models.SSEMessage) {
	lobby.Lock()
	defer lobby.Unlock()
	lobby.RemoveSSEClient(client)
	if debug {
		log.Printf("sse: lobby %s down to %d streams", lobby.Code, lobby.SSEClientCount())
	}
}

// clients snapshots the lobby's streams so sends happen without the lock
func clients(lobby *models.Lobby) map[chan models.SSEMessage]uuid.UUID {
	lobby.RLock()
	defer lobby.RUnlock()
	return lobby.GetSSEClients()
}

// deliver sends msg, giving up on a stream that stays full past the timeout
func deliver(client chan models.SSEMessage, msg models.SSEMessage) bool {
	select {
	case client <- msg:
		return true
	case <-time.After(sendTimeout):
		return false
	}
}

// Broadcast sends the same event to every stream in the lobby
func Broadcast(lobby *models.Lobby, event, data string) {
	streams := clients(lobby)
	msg := models.SSEMessage{Event: event, Data: data}
	sent := 0
	for client := range streams {
		if deliver(client, msg) {
			sent++
		}
	}
	if debug {
		log.Printf("sse: %s delivered to %d/%d streams", event, sent, len(streams))
	}
}

// BroadcastPersonalized renders the event body once per stream's player
func BroadcastPersonalized(lobby *models.Lobby, renderFunc func(playerID uuid.UUID) string, event string) {
	for client, playerID := range clients(lobby) {
		if !deliver(client, models.SSEMessage{Event: event, Data: renderFunc(playerID)}) && debug {
			log.Printf("sse: %s to player %s timed out", event, playerID)
		}
	}
}

// BroadcastSidebars pushes each player the sidebar their own surface shows.
// Players on one shared surface get the same snapshot.
func BroadcastSidebars(lobby *models.Lobby, sidebarFor func(playerID uuid.UUID) string) {
	BroadcastPersonalized(lobby, sidebarFor, EventSidebarUpdate)
}
