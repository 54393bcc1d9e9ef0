// Package teams manages the viewer groups of one scoreboard. Groups are kept
// in a copy-on-write slice so a broadcast can walk a snapshot while teams are
// created or removed elsewhere.
package teams

import (
	"slices"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/logging"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// MaxSuggestDistance is the largest edit distance Suggest will accept.
const MaxSuggestDistance = 3

// SurfacesFunc lists the surfaces a team is mirrored on.
type SurfacesFunc func() []surface.Surface

// Manager owns the teams of one scoreboard.
type Manager struct {
	host     surface.Host
	surfaces SurfacesFunc

	mu    sync.Mutex
	teams []*Team
}

// NewManager creates an empty manager. host resolves member names and
// surfaces lists every surface the owning scoreboard renders to.
func NewManager(host surface.Host, surfaces SurfacesFunc) *Manager {
	if surfaces == nil {
		surfaces = func() []surface.Surface { return nil }
	}
	return &Manager{host: host, surfaces: surfaces}
}

func (m *Manager) snapshot() []*Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teams
}

// Create validates name, refreshes the new team once on every surface and
// registers it. A duplicate name is reported before a long one.
func (m *Manager) Create(name, displayName string, color chat.Color) (*Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(name)
	for _, t := range m.teams {
		if Key(t.name) == key {
			return nil, &DuplicateTeamError{Name: name}
		}
	}
	if chat.Len(name) > MaxNameLength {
		return nil, &NameTooLongError{Name: name}
	}
	if engine.IsLineGroup(name) {
		return nil, &ReservedNameError{Name: name}
	}

	t := &Team{
		manager:     m,
		name:        name,
		displayName: displayName,
		color:       color,
	}
	t.Refresh()

	teams := make([]*Team, len(m.teams), len(m.teams)+1)
	copy(teams, m.teams)
	m.teams = append(teams, t)

	logging.Logger().Debug("team created", "team", name, "color", color.Name())
	return t, nil
}

// Find looks a team up by name, ignoring colour codes and case.
func (m *Manager) Find(name string) (*Team, bool) {
	key := Key(name)
	for _, t := range m.snapshot() {
		if Key(t.name) == key {
			return t, true
		}
	}
	return nil, false
}

// Suggest returns the name of the team closest to name, if one is within
// MaxSuggestDistance edits.
func (m *Manager) Suggest(name string) (string, bool) {
	key := Key(name)
	best, bestDist := "", MaxSuggestDistance+1
	for _, t := range m.snapshot() {
		d := levenshtein.ComputeDistance(key, Key(t.name))
		if d < bestDist {
			best, bestDist = t.name, d
		}
	}
	return best, bestDist <= MaxSuggestDistance
}

// Owns reports whether t was created by this manager.
func (m *Manager) Owns(t *Team) bool {
	return t != nil && t.manager == m
}

// Remove destroys t and forgets it. Teams of other managers are ignored.
func (m *Manager) Remove(t *Team) bool {
	if !m.Owns(t) {
		return false
	}

	m.mu.Lock()
	i := slices.Index(m.teams, t)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.teams = slices.Delete(slices.Clone(m.teams), i, i+1)
	m.mu.Unlock()

	t.Destroy()
	return true
}

// RemoveViewer drops id from every team it belongs to.
func (m *Manager) RemoveViewer(id uuid.UUID) {
	for _, t := range m.snapshot() {
		if t.Has(id) {
			t.RemoveViewer(id)
		}
	}
}

// DestroyAll destroys every team and empties the manager.
func (m *Manager) DestroyAll() {
	m.mu.Lock()
	teams := m.teams
	m.teams = nil
	m.mu.Unlock()

	for _, t := range teams {
		t.Destroy()
	}
}

// RefreshAll applies every team to s.
func (m *Manager) RefreshAll(s surface.Surface) {
	for _, t := range m.snapshot() {
		t.RefreshOn(s)
	}
}

// All returns the teams in creation order.
func (m *Manager) All() []*Team {
	return slices.Clone(m.snapshot())
}

// Len reports how many teams are registered.
func (m *Manager) Len() int {
	return len(m.snapshot())
}

var _ engine.Refresher = (*Manager)(nil)
