package scoreboard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// NewGlobal creates a scoreboard whose viewers share one surface.
func NewGlobal(host surface.Host, caps engine.Capabilities, opts Options, resolve GlobalFunc) *Scoreboard {
	return newScoreboard(host, caps, opts, &global{
		shared:  host.NewSurface(),
		resolve: resolve,
	})
}

// NewPerViewer creates a scoreboard that gives every viewer their own surface.
func NewPerViewer(host surface.Host, caps engine.Capabilities, opts Options, resolve ViewerFunc) *Scoreboard {
	pv := &perViewer{
		host:     host,
		resolve:  resolve,
		byViewer: store.NewMemory[uuid.UUID, surface.Surface](),
	}
	sb := newScoreboard(host, caps, opts, pv)
	pv.forget = sb.engine.Forget
	return sb
}

type global struct {
	shared  surface.Surface
	resolve GlobalFunc
}

func (g *global) attach(v surface.Viewer) {
	v.SetSurface(g.shared)
}

func (g *global) detach(uuid.UUID) {}

func (g *global) surfaces() []surface.Surface {
	return []surface.Surface{g.shared}
}

func (g *global) update(_ []uuid.UUID, render renderFunc) error {
	var c Content
	if g.resolve != nil {
		c = g.resolve()
	}
	return render(g.shared, c)
}

func (g *global) reset() {}

type perViewer struct {
	host     surface.Host
	resolve  ViewerFunc
	byViewer *store.Memory[uuid.UUID, surface.Surface]
	forget   func(surface.Surface)
}

func (p *perViewer) attach(v surface.Viewer) {
	s := p.byViewer.GetOrSet(v.ID(), p.host.NewSurface)
	v.SetSurface(s)
}

func (p *perViewer) detach(id uuid.UUID) {
	if s, ok := p.byViewer.Delete(id); ok && p.forget != nil {
		p.forget(s)
	}
}

func (p *perViewer) surfaces() []surface.Surface {
	return p.byViewer.Values()
}

func (p *perViewer) update(players []uuid.UUID, render renderFunc) error {
	var errs []error
	for _, id := range players {
		s, ok := p.byViewer.Get(id)
		if !ok {
			continue
		}
		var c Content
		if v, online := p.host.Viewer(id); online && p.resolve != nil {
			if resolved, ok := p.resolve(v); ok {
				c = resolved
			}
		}
		if err := render(s, c); err != nil {
			errs = append(errs, fmt.Errorf("viewer %s: %w", id, err))
		}
		// The viewer may have left mid-render; drop the state we just recreated.
		if !p.byViewer.Exists(id) && p.forget != nil {
			p.forget(s)
		}
	}
	return errors.Join(errs...)
}

func (p *perViewer) reset() {
	for _, s := range p.byViewer.Values() {
		if p.forget != nil {
			p.forget(s)
		}
	}
	p.byViewer.Clear()
}
