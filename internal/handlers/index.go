package handlers

import (
	"net/http"
	"strings"

	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/scoreboard"
	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
)

// Context holds shared application dependencies
type Context struct {
	LobbyStore *store.Memory[string, *models.Lobby]
	Host       *memory.Host
	Caps       engine.Capabilities
	Options    scoreboard.Options
	Title      string // default title for new lobbies
	PublicURL  string // base URL encoded into join QR codes
}

// Routes registers every handler on a new mux
func (ctx *Context) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", ctx.HandleIndex)
	mux.HandleFunc("GET /redirect", ctx.HandleRedirect)
	mux.HandleFunc("POST /create", ctx.HandleCreateLobby)
	mux.HandleFunc("POST /join", ctx.HandleJoinLobby)
	mux.HandleFunc("GET /lobby/{code}", ctx.HandleLobby)
	mux.HandleFunc("POST /lobby/{code}/lines", ctx.HandleLines)
	mux.HandleFunc("POST /lobby/{code}/points", ctx.HandlePoints)
	mux.HandleFunc("POST /lobby/{code}/teams", ctx.HandleCreateTeam)
	mux.HandleFunc("POST /lobby/{code}/teams/join", ctx.HandleJoinTeam)
	mux.HandleFunc("POST /lobby/{code}/leave", ctx.HandleLeaveLobby)
	mux.HandleFunc("POST /lobby/{code}/close", ctx.HandleCloseLobby)
	mux.HandleFunc("GET /sse/{code}", ctx.HandleSSE)
	mux.HandleFunc("GET /qr/{code}", ctx.HandleQR)
	return mux
}

// HandleIndex serves the landing page. ?code= pre-fills the join form.
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("code")))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(render.IndexPage(code)))
}

// HandleRedirect is the HTMX redirect helper used by SSE snippets
func (ctx *Context) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		to = "/"
	}
	w.Header().Set("HX-Location", to)
	w.WriteHeader(http.StatusOK)
}
