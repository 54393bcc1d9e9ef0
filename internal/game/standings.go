package game

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/models"
)

// Standing is one row of the points table
type Standing struct {
	Player *models.Player
	Points int
}

// Rank sorts players by points descending, then name ascending
func Rank(players map[uuid.UUID]*models.Player, points map[uuid.UUID]int) []Standing {
	rows := make([]Standing, 0, len(players))
	for id, p := range players {
		rows = append(rows, Standing{Player: p, Points: points[id]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points == rows[j].Points {
			ni, nj := strings.ToLower(rows[i].Player.Name), strings.ToLower(rows[j].Player.Name)
			if ni == nj {
				return rows[i].Player.ID.String() < rows[j].Player.ID.String()
			}
			return ni < nj
		}
		return rows[i].Points > rows[j].Points
	})
	return rows
}

// Standings formats the points table as sidebar lines, best first
func Standings(players map[uuid.UUID]*models.Player, points map[uuid.UUID]int) []string {
	rows := Rank(players, points)
	if len(rows) > MaxStandingLines {
		rows = rows[:MaxStandingLines]
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, "&e"+row.Player.Name+"&7: &f"+strconv.Itoa(row.Points))
	}
	return lines
}
