package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/store"
)

func players(names ...string) (map[uuid.UUID]*models.Player, map[string]uuid.UUID) {
	out := make(map[uuid.UUID]*models.Player, len(names))
	ids := make(map[string]uuid.UUID, len(names))
	for _, name := range names {
		id := uuid.New()
		out[id] = &models.Player{ID: id, Name: name}
		ids[name] = id
	}
	return out, ids
}

func TestStandingsOrder(t *testing.T) {
	t.Parallel()

	ps, ids := players("carol", "alice", "Bob")
	points := map[uuid.UUID]int{ids["carol"]: 5, ids["alice"]: 2, ids["Bob"]: 2}

	require.Equal(t, []string{
		"&ecarol&7: &f5",
		"&ealice&7: &f2",
		"&eBob&7: &f2",
	}, Standings(ps, points))
}

func TestStandingsMissingPointsCountAsZero(t *testing.T) {
	t.Parallel()

	ps, _ := players("solo")
	require.Equal(t, []string{"&esolo&7: &f0"}, Standings(ps, nil))
	require.Empty(t, Standings(nil, nil))
}

func TestStandingsAreCapped(t *testing.T) {
	t.Parallel()

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("p%02d", i)
	}
	ps, ids := players(names...)
	points := map[uuid.UUID]int{}
	for i, name := range names {
		points[ids[name]] = i
	}

	lines := Standings(ps, points)
	require.Len(t, lines, MaxStandingLines)
	require.Equal(t, "&ep19&7: &f19", lines[0])
}

func TestGenerateRoomCode(t *testing.T) {
	t.Parallel()

	code := GenerateRoomCode()
	require.Len(t, code, RoomCodeLength)
	for _, r := range code {
		require.True(t, strings.ContainsRune(RoomCodeChars, r))
	}
}

func TestGetUniqueRoomCodeAvoidsOpenLobbies(t *testing.T) {
	t.Parallel()

	lobbies := store.NewMemory[string, *models.Lobby]()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := GetUniqueRoomCode(lobbies)
		require.False(t, seen[code])
		seen[code] = true
		lobbies.Set(code, models.NewLobby(code, models.ModeGlobal, ""))
	}
	require.Equal(t, "/lobby/ABC234", LobbyPath("ABC234"))
}
