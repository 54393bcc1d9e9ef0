package models

import (
	"sync"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/scoreboard"
)

// Lobby is a room of players sharing one scoreboard
type Lobby struct {
	Code    string
	Host    uuid.UUID
	Mode    Mode
	Title   string
	Players map[uuid.UUID]*Player // playerID -> Player
	Points  map[uuid.UUID]int     // playerID -> points

	// Exactly one of these is set, depending on Mode
	Global   *scoreboard.GlobalBoard
	Personal *scoreboard.PerViewerBoard

	mu         sync.RWMutex
	sseClients map[chan SSEMessage]uuid.UUID // channel -> playerID
}

// SSEMessage represents a message sent via Server-Sent Events
type SSEMessage struct {
	Event string // Event type (e.g., "sidebar-update", "nav-redirect")
	Data  string // HTML content or data to send
}

// NewLobby creates an empty lobby. The caller attaches the board.
func NewLobby(code string, mode Mode, title string) *Lobby {
	return &Lobby{
		Code:    code,
		Mode:    mode,
		Title:   title,
		Players: make(map[uuid.UUID]*Player),
		Points:  make(map[uuid.UUID]int),
	}
}

// Board returns the lobby's scoreboard regardless of mode
func (l *Lobby) Board() *scoreboard.Scoreboard {
	if l.Personal != nil {
		return l.Personal.Scoreboard
	}
	if l.Global != nil {
		return l.Global.Scoreboard
	}
	return nil
}

// Lock acquires the lobby's write lock
func (l *Lobby) Lock() {
	l.mu.Lock()
}

// Unlock releases the lobby's write lock
func (l *Lobby) Unlock() {
	l.mu.Unlock()
}

// RLock acquires the lobby's read lock
func (l *Lobby) RLock() {
	l.mu.RLock()
}

// RUnlock releases the lobby's read lock
func (l *Lobby) RUnlock() {
	l.mu.RUnlock()
}

// IsMember reports whether playerID is in the lobby (must be called with lock held)
func (l *Lobby) IsMember(playerID uuid.UUID) bool {
	_, ok := l.Players[playerID]
	return ok
}

// GetSSEClients returns a copy of the SSE clients map (must be called with lock held)
func (l *Lobby) GetSSEClients() map[chan SSEMessage]uuid.UUID {
	clients := make(map[chan SSEMessage]uuid.UUID, len(l.sseClients))
	for k, v := range l.sseClients {
		clients[k] = v
	}
	return clients
}

// AddSSEClient adds a new SSE client to the lobby
func (l *Lobby) AddSSEClient(client chan SSEMessage, playerID uuid.UUID) {
	if l.sseClients == nil {
		l.sseClients = make(map[chan SSEMessage]uuid.UUID)
	}
	l.sseClients[client] = playerID
}

// RemoveSSEClient removes an SSE client from the lobby
func (l *Lobby) RemoveSSEClient(client chan SSEMessage) {
	delete(l.sseClients, client)
}

// SSEClientCount returns the number of connected SSE clients
func (l *Lobby) SSEClientCount() int {
	return len(l.sseClients)
}
