package models

import "github.com/google/uuid"

// Player represents a player in the lobby. ID is the player's viewer id on the
// scoreboard host.
type Player struct {
	ID   uuid.UUID
	Name string
}
