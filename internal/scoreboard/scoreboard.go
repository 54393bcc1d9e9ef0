// Package scoreboard ties viewers, teams and the line renderer together.
//
// A Scoreboard is built with one of two content strategies: NewGlobal shows
// the same title and lines to everyone through a single shared surface, and
// NewPerViewer gives each viewer a surface of their own with content resolved
// per viewer. Everything else (players, teams, options) behaves the same.
package scoreboard

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/logging"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/teams"
)

// ErrViewerOffline is returned when adding a viewer the host does not know.
var ErrViewerOffline = errors.New("scoreboard: viewer is not online")

// Options control the health displays. Changes take effect on the next Update.
type Options struct {
	TabHealth       surface.HealthStyle
	BelowNameHealth bool
}

// DefaultOptions shows no health at all.
func DefaultOptions() Options {
	return Options{TabHealth: surface.HealthNone}
}

// Content is what a surface should show. Lines run top to bottom.
type Content struct {
	Title string
	Lines []string
}

// GlobalFunc resolves the content shared by every viewer.
type GlobalFunc func() Content

// ViewerFunc resolves the content for one viewer. Returning false shows an
// empty sidebar.
type ViewerFunc func(v surface.Viewer) (Content, bool)

type renderFunc func(s surface.Surface, c Content) error

// strategy decides which surfaces exist and what each one shows.
type strategy interface {
	attach(v surface.Viewer)
	detach(id uuid.UUID)
	surfaces() []surface.Surface
	update(players []uuid.UUID, render renderFunc) error
	reset()
}

// Scoreboard is a sidebar shown to a set of viewers.
type Scoreboard struct {
	host     surface.Host
	engine   *engine.Engine
	teams    *teams.Manager
	strategy strategy

	// life orders player-set changes with the strategy's surface bookkeeping.
	// Taken before mu, and never held while rendering.
	life sync.Mutex

	mu      sync.Mutex
	opts    Options
	players []uuid.UUID
}

func newScoreboard(host surface.Host, caps engine.Capabilities, opts Options, st strategy) *Scoreboard {
	sb := &Scoreboard{
		host:     host,
		engine:   engine.New(caps),
		strategy: st,
		opts:     opts,
	}
	sb.teams = teams.NewManager(host, st.surfaces)
	return sb
}

// AddPlayer attaches an online viewer and renders. Adding a viewer twice is a
// no-op.
func (sb *Scoreboard) AddPlayer(id uuid.UUID) error {
	v, ok := sb.host.Viewer(id)
	if !ok {
		return ErrViewerOffline
	}

	sb.life.Lock()
	sb.mu.Lock()
	if slices.Contains(sb.players, id) {
		sb.mu.Unlock()
		sb.life.Unlock()
		return nil
	}
	players := make([]uuid.UUID, len(sb.players), len(sb.players)+1)
	copy(players, sb.players)
	sb.players = append(players, id)
	sb.mu.Unlock()
	sb.strategy.attach(v)
	sb.life.Unlock()

	logging.Logger().Debug("player added", "viewer", id, "name", v.Name())
	return sb.Update()
}

// RemovePlayer detaches a viewer, returns them to the host's main surface and
// takes them out of every team.
func (sb *Scoreboard) RemovePlayer(id uuid.UUID) {
	main := sb.host.MainSurface()

	sb.life.Lock()
	sb.mu.Lock()
	i := slices.Index(sb.players, id)
	if i >= 0 {
		sb.players = slices.Delete(slices.Clone(sb.players), i, i+1)
	}
	sb.mu.Unlock()
	if i >= 0 {
		if v, ok := sb.host.Viewer(id); ok {
			v.SetSurface(main)
		}
	}
	sb.strategy.detach(id)
	sb.life.Unlock()

	sb.teams.RemoveViewer(id)
	logging.Logger().Debug("player removed", "viewer", id)
}

// HasPlayer reports whether id is attached.
func (sb *Scoreboard) HasPlayer(id uuid.UUID) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return slices.Contains(sb.players, id)
}

// Players returns the attached viewers in the order they were added.
func (sb *Scoreboard) Players() []uuid.UUID {
	return slices.Clone(sb.snapshot())
}

func (sb *Scoreboard) snapshot() []uuid.UUID {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.players
}

// FindTeam looks a team up by name, ignoring colour codes and case.
func (sb *Scoreboard) FindTeam(name string) (*teams.Team, bool) {
	return sb.teams.Find(name)
}

// SuggestTeam returns the closest existing team name, for typo hints.
func (sb *Scoreboard) SuggestTeam(name string) (string, bool) {
	return sb.teams.Suggest(name)
}

// CreateTeam adds a team. The colour defaults to white.
func (sb *Scoreboard) CreateTeam(name, displayName string, color ...chat.Color) (*teams.Team, error) {
	c := chat.White
	if len(color) > 0 {
		c = color[0]
	}
	return sb.teams.Create(name, displayName, c)
}

// RemoveTeam destroys team if this scoreboard owns it.
func (sb *Scoreboard) RemoveTeam(team *teams.Team) {
	sb.teams.Remove(team)
}

// Teams returns the teams in creation order.
func (sb *Scoreboard) Teams() []*teams.Team {
	return sb.teams.All()
}

// Options returns the current options.
func (sb *Scoreboard) Options() Options {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.opts
}

// SetOptions replaces the options without rendering.
func (sb *Scoreboard) SetOptions(opts Options) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.opts = opts
}

// Surfaces returns the surfaces currently rendered to.
func (sb *Scoreboard) Surfaces() []surface.Surface {
	return sb.strategy.surfaces()
}

// Engine exposes the renderer, mostly for inspecting render state.
func (sb *Scoreboard) Engine() *engine.Engine {
	return sb.engine
}

// Update resolves content and renders every surface. A failing surface does
// not stop the others; all failures are joined.
func (sb *Scoreboard) Update() error {
	opts := sb.Options()
	eopts := engine.Options{TabHealth: opts.TabHealth, BelowNameHealth: opts.BelowNameHealth}

	return sb.strategy.update(sb.snapshot(), func(s surface.Surface, c Content) error {
		return sb.engine.Render(s, c.Title, c.Lines, eopts, sb.teams)
	})
}

// Destroy returns every viewer to the main surface, destroys all teams and
// drops all render state. It is safe to call more than once.
func (sb *Scoreboard) Destroy() {
	main := sb.host.MainSurface()

	sb.life.Lock()
	sb.mu.Lock()
	players := sb.players
	sb.players = nil
	sb.mu.Unlock()
	for _, id := range players {
		if v, ok := sb.host.Viewer(id); ok {
			v.SetSurface(main)
		}
	}
	sb.strategy.reset()
	sb.life.Unlock()

	sb.teams.DestroyAll()
	sb.engine.Reset()
}
