package render

import (
	htmlpkg "html"
	"strings"
)

const pageHead = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Scoreboards</title><script src="https://unpkg.com/htmx.org@2.0.4"></script><script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script><style>` + pageStyle + `</style></head><body>`

const pageStyle = `body{font-family:system-ui,sans-serif;background:#1d1f21;color:#eee;margin:2rem}
.sidebar{display:inline-block;background:rgba(0,0,0,.55);padding:.4rem .6rem;font-family:monospace}
.sidebar-title{text-align:center}.sidebar-lines{list-style:none;margin:0;padding:0}
.sidebar-lines li{display:flex;justify-content:space-between;gap:1.5rem}.sidebar-score{color:#f55}
.mc-0{color:#000}.mc-1{color:#00a}.mc-2{color:#0a0}.mc-3{color:#0aa}.mc-4{color:#a00}.mc-5{color:#a0a}
.mc-6{color:#fa0}.mc-7{color:#aaa}.mc-8{color:#555}.mc-9{color:#55f}.mc-a{color:#5f5}.mc-b{color:#5ff}
.mc-c{color:#f55}.mc-d{color:#f5f}.mc-e{color:#ff5}.mc-f{color:#fff}.mc-l{font-weight:bold}
.mc-m{text-decoration:line-through}.mc-n{text-decoration:underline}.mc-o{font-style:italic}.mc-k{filter:blur(2px)}
.text-muted{color:#999}.error-message{color:#f55}.badge-pill{border-radius:1rem;padding:0 .5rem;margin-left:.5rem;background:#333}`

const pageFoot = `</body></html>`

// IndexPage generates the landing page with create and join forms
func IndexPage(code string) string {
	var b strings.Builder
	b.WriteString(pageHead)
	b.WriteString(`<h1>Scoreboards</h1><div id="error"></div>`)
	b.WriteString(`<form hx-post="/create" hx-target="#error"><h2>Create a lobby</h2><input name="name" maxlength="16" placeholder="Your name" required><input name="title" placeholder="Scoreboard title"><select name="mode"><option value="global">Shared lines</option><option value="personal">Personal lines</option><option value="standings">Points standings</option></select><button type="submit" class="btn btn-primary">Create</button></form>`)
	b.WriteString(`<form hx-post="/join" hx-target="#error"><h2>Join a lobby</h2><input name="code" placeholder="Room code" value="`)
	b.WriteString(htmlpkg.EscapeString(code))
	b.WriteString(`" required><input name="name" maxlength="16" placeholder="Your name" required><button type="submit" class="btn btn-primary">Join</button></form>`)
	b.WriteString(pageFoot)
	return b.String()
}

// LobbyView is everything the lobby page shows on first load
type LobbyView struct {
	Code     string
	Mode     string
	Sidebar  string
	Players  string
	Controls string
	Scores   string
	Teams    string
}

// LobbyPage generates the lobby page. Each section is replaced by SSE events.
func LobbyPage(v LobbyView) string {
	code := htmlpkg.EscapeString(v.Code)

	var b strings.Builder
	b.WriteString(pageHead)
	b.WriteString(`<main hx-ext="sse" sse-connect="/sse/`)
	b.WriteString(code)
	b.WriteString(`"><h1>Lobby `)
	b.WriteString(code)
	b.WriteString(` <small class="text-muted">`)
	b.WriteString(htmlpkg.EscapeString(v.Mode))
	b.WriteString(`</small></h1><img class="qr" src="/qr/`)
	b.WriteString(code)
	b.WriteString(`" alt="Join link" width="128" height="128">`)
	b.WriteString(`<div hx-swap-oob="true" sse-swap="nav-redirect"></div><div id="error" sse-swap="error-message"></div><div id="notice" sse-swap="host-changed"></div>`)
	sections := []struct{ event, html string }{
		{"sidebar-update", v.Sidebar},
		{"player-update", v.Players},
		{"controls-update", v.Controls},
		{"score-update", v.Scores},
		{"team-update", v.Teams},
	}
	for _, s := range sections {
		b.WriteString(`<section sse-swap="`)
		b.WriteString(s.event)
		b.WriteString(`">`)
		b.WriteString(s.html)
		b.WriteString(`</section>`)
	}
	b.WriteString(`</main>`)
	b.WriteString(pageFoot)
	return b.String()
}
