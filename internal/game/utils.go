package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/store"
)

// GenerateRoomCode creates a random room code
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range RoomCodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// GetUniqueRoomCode generates a room code no open lobby uses
func GetUniqueRoomCode(lobbies *store.Memory[string, *models.Lobby]) string {
	for {
		code := GenerateRoomCode()
		if !lobbies.Exists(code) {
			return code
		}
	}
}

// LobbyPath returns the URL path of a lobby page
func LobbyPath(roomCode string) string {
	return "/lobby/" + roomCode
}
