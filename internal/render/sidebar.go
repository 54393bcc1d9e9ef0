package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
)

// Legacy converts §-formatted text into HTML spans with mc-<code> classes.
// A colour code closes every open span, as it does in game.
func Legacy(s string) string {
	var b strings.Builder
	open := 0
	closeAll := func() {
		for ; open > 0; open-- {
			b.WriteString(`</span>`)
		}
	}

	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] == chat.ColorChar && i+1 < len(r) {
			if c, ok := chat.ByChar(r[i+1]); ok {
				i++
				switch {
				case c == chat.Reset:
					closeAll()
				case c.IsFormat():
					b.WriteString(`<span class="mc-` + string(c.Char()) + `">`)
					open++
				default:
					closeAll()
					b.WriteString(`<span class="mc-` + string(c.Char()) + `">`)
					open++
				}
				continue
			}
		}
		b.WriteString(htmlpkg.EscapeString(string(r[i])))
	}
	closeAll()
	return b.String()
}

// Width is the number of terminal columns the visible text of s occupies
func Width(s string) int {
	return runewidth.StringWidth(chat.Strip(s))
}

// Sidebar generates HTML for a sidebar snapshot, top row first
func Sidebar(sb memory.Sidebar) string {
	width := Width(sb.Title)
	for _, l := range sb.Lines {
		width = max(width, Width(l.Text()))
	}

	var b strings.Builder
	b.WriteString(`<div class="sidebar" style="min-width:`)
	b.WriteString(strconv.Itoa(width))
	b.WriteString(`ch"><div class="sidebar-title">`)
	b.WriteString(Legacy(sb.Title))
	b.WriteString(`</div><ol class="sidebar-lines">`)
	for _, l := range sb.Lines {
		b.WriteString(`<li data-rank="`)
		b.WriteString(strconv.Itoa(l.Rank))
		b.WriteString(`"><span class="sidebar-text">`)
		b.WriteString(Legacy(l.Text()))
		b.WriteString(`</span><span class="sidebar-score">`)
		b.WriteString(strconv.Itoa(l.Rank))
		b.WriteString(`</span></li>`)
	}
	b.WriteString(`</ol></div>`)
	return b.String()
}

// EmptySidebar is shown before a player's surface has anything on it
func EmptySidebar() string {
	return `<div class="sidebar sidebar-empty"><p class="text-muted">Nothing on the scoreboard yet</p></div>`
}
