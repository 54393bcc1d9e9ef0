package surface

import (
	"fmt"

	"github.com/aaronzipp/scoreboards/internal/chat"
)

const (
	LineObjectiveName       = "sidebar"
	TabHealthObjectiveName  = "tabHealth"
	NameHealthObjectiveName = "nameHealth"
)

// Provider is the capability set for one host version. It is chosen once at
// startup and handed to the render engine.
type Provider struct {
	version        Version
	maxFieldLength int
	maxLineLength  int
}

// NewProvider selects the limits for v. An unknown version is fatal for the
// caller: no degraded mode exists.
func NewProvider(v Version) (*Provider, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(v))
	}
	p := &Provider{version: v, maxFieldLength: 64, maxLineLength: 128}
	if v.LessThan(V1_13) {
		p.maxFieldLength = 16
		p.maxLineLength = 32
	}
	return p, nil
}

// Version returns the host version the limits were chosen for.
func (p *Provider) Version() Version {
	return p.version
}

// MaxFieldLength bounds a team prefix or suffix.
func (p *Provider) MaxFieldLength() int {
	return p.maxFieldLength
}

// MaxLineLength bounds a raw sidebar line.
func (p *Provider) MaxLineLength() int {
	return p.maxLineLength
}

// LineObjective returns the dummy objective that carries sidebar lines,
// registering it on first use.
func (p *Provider) LineObjective(s Surface) (Objective, error) {
	if o := s.Objective(LineObjectiveName); o != nil {
		return o, nil
	}
	return s.RegisterObjective(LineObjectiveName, "dummy")
}

// TabHealthObjective returns the player-list health objective. For HealthNone
// it only looks the objective up and may return nil.
func (p *Provider) TabHealthObjective(style HealthStyle, s Surface) (Objective, error) {
	o := s.Objective(TabHealthObjectiveName)
	if style == HealthNone {
		return o, nil
	}
	if o == nil {
		var err error
		if o, err = s.RegisterObjective(TabHealthObjectiveName, "health"); err != nil {
			return nil, err
		}
	}
	if !p.version.LessThan(V1_13) {
		o.SetRenderType(style.renderType())
	}
	return o, nil
}

// BelowNameHealthObjective returns the below-name health objective. When show
// is false it only looks the objective up and may return nil.
func (p *Provider) BelowNameHealthObjective(s Surface, show bool) (Objective, error) {
	o := s.Objective(NameHealthObjectiveName)
	if !show || o != nil {
		return o, nil
	}
	o, err := s.RegisterObjective(NameHealthObjectiveName, "health")
	if err != nil {
		return nil, err
	}
	o.SetDisplayName(chat.Red.String() + "❤")
	if !p.version.LessThan(V1_13) {
		o.SetRenderType(RenderHearts)
	}
	return o, nil
}
