package render

import (
	htmlpkg "html"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/game"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/teams"
)

// PlayerList generates HTML for the player list
func PlayerList(players map[uuid.UUID]*models.Player, host uuid.UUID) string {
	list := getPlayerList(players)
	var b strings.Builder
	b.WriteString(`<h2>Players (`)
	b.WriteString(strconv.Itoa(len(list)))
	b.WriteString(`)</h2><ul class="player-list">`)
	for _, p := range list {
		name := htmlpkg.EscapeString(p.Name)
		b.WriteString(`<li class="player-item"><span class="player-name">`)
		b.WriteString(name)
		b.WriteString(`</span>`)
		if p.ID == host {
			b.WriteString(`<span class="badge-pill badge-host">host</span>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// HostControls generates HTML for the forms a player may use (must be called with lock held)
func HostControls(lobby *models.Lobby, playerID uuid.UUID) string {
	isHost := lobby.Host == playerID
	code := lobby.Code

	var b strings.Builder
	b.WriteString(`<div class="button-stack">`)

	canWriteLines := (lobby.Mode == models.ModeGlobal && isHost) || lobby.Mode == models.ModePersonal
	if canWriteLines {
		b.WriteString(`<form hx-post="/lobby/`)
		b.WriteString(code)
		b.WriteString(`/lines" hx-swap="none"><textarea name="lines" rows="8" placeholder="One line per row, &amp;-colour codes allowed"></textarea><button type="submit" class="btn btn-primary">Update scoreboard</button></form>`)
	}

	if isHost {
		b.WriteString(`<form hx-post="/lobby/`)
		b.WriteString(code)
		b.WriteString(`/points" hx-swap="none"><select name="player">`)
		for _, p := range getPlayerList(lobby.Players) {
			b.WriteString(`<option value="`)
			b.WriteString(p.ID.String())
			b.WriteString(`">`)
			b.WriteString(htmlpkg.EscapeString(p.Name))
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select><input type="number" name="delta" value="1"><button type="submit" class="btn btn-secondary">Award points</button></form>`)

		b.WriteString(`<form hx-post="/lobby/`)
		b.WriteString(code)
		b.WriteString(`/teams" hx-swap="none"><input name="name" maxlength="16" placeholder="Team name"><input name="display" placeholder="Display name"><select name="color">`)
		for _, c := range chat.Values() {
			if !c.IsColor() {
				continue
			}
			b.WriteString(`<option value="`)
			b.WriteString(c.Name())
			b.WriteString(`" class="mc-`)
			b.WriteString(string(c.Char()))
			b.WriteString(`">`)
			b.WriteString(c.Name())
			b.WriteString(`</option>`)
		}
		b.WriteString(`</select><button type="submit" class="btn btn-secondary">Create team</button></form>`)
	}

	b.WriteString(`<form hx-post="/lobby/`)
	b.WriteString(code)
	b.WriteString(`/teams/join" hx-swap="none"><input name="team" placeholder="Team to join"><button type="submit" class="btn btn-secondary">Join team</button></form>`)

	if isHost {
		b.WriteString(`<form hx-post="/lobby/`)
		b.WriteString(code)
		b.WriteString(`/close"><button type="submit" class="btn btn-secondary">Close Lobby</button></form>`)
	} else {
		b.WriteString(`<form hx-post="/lobby/`)
		b.WriteString(code)
		b.WriteString(`/leave"><button type="submit" class="btn btn-secondary">Leave Lobby</button></form>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ScoreTable generates HTML for the points table (must be called with lock held)
func ScoreTable(lobby *models.Lobby) string {
	if len(lobby.Players) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<h2>Points</h2><table class="score-table" aria-label="Players sorted by points"><thead><tr><th>Player</th><th aria-sort="descending" title="Sorted by points (desc)">Points ↓</th></tr></thead><tbody>`)
	for _, row := range game.Rank(lobby.Players, lobby.Points) {
		b.WriteString(`<tr><td class="score-player">`)
		b.WriteString(htmlpkg.EscapeString(row.Player.Name))
		b.WriteString(`</td><td><span class="badge-pill badge-win">`)
		b.WriteString(strconv.Itoa(row.Points))
		b.WriteString(`</span></td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// TeamList generates HTML for the lobby's teams and their members
func TeamList(list []*teams.Team, players map[uuid.UUID]*models.Player) string {
	if len(list) == 0 {
		return `<h2>Teams</h2><p class="text-muted">No teams yet</p>`
	}

	var b strings.Builder
	b.WriteString(`<h2>Teams</h2><ul class="team-list">`)
	for _, t := range list {
		b.WriteString(`<li class="team-item"><span class="team-name mc-`)
		b.WriteString(string(t.Color().Char()))
		b.WriteString(`">`)
		b.WriteString(Legacy(chat.Colorize(t.DisplayName())))
		b.WriteString(`</span><span class="team-members">`)
		var names []string
		for _, id := range t.Members() {
			if p, ok := players[id]; ok {
				names = append(names, htmlpkg.EscapeString(p.Name))
			}
		}
		sort.Strings(names)
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(`</span></li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// ErrorMessage generates HTML for an inline error
func ErrorMessage(msg string) string {
	return `<p class="error-message">` + htmlpkg.EscapeString(msg) + `</p>`
}

// Notice generates HTML for an informational message
func Notice(msg string) string {
	return `<p class="notice">` + htmlpkg.EscapeString(msg) + `</p>`
}

// RedirectSnippet returns an HTMX snippet that triggers a client-side redirect
func RedirectSnippet(to string) string {
	var b strings.Builder
	b.WriteString(`<div hx-get="/redirect?to=`)
	b.WriteString(to)
	b.WriteString(`" hx-trigger="load" hx-swap="none"></div>`)
	return b.String()
}

// getPlayerList converts map to sorted slice
func getPlayerList(players map[uuid.UUID]*models.Player) []*models.Player {
	list := make([]*models.Player, 0, len(players))
	for _, p := range players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
	return list
}
