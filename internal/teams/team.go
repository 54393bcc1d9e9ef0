package teams

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/logging"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// Team is a named, coloured group of viewers. It is mirrored onto every
// surface of the scoreboard that owns it, with the names of its online members
// as entries.
type Team struct {
	manager *Manager
	name    string

	mu          sync.RWMutex
	displayName string
	color       chat.Color
	members     []uuid.UUID
	destroyed   bool
}

// Name returns the unique team name.
func (t *Team) Name() string {
	return t.name
}

// DisplayName returns the formatted display name.
func (t *Team) DisplayName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.displayName
}

// SetDisplayName changes the display name and refreshes every surface.
func (t *Team) SetDisplayName(name string) {
	t.mu.Lock()
	t.displayName = name
	t.mu.Unlock()
	t.Refresh()
}

// Color returns the team colour applied to member names.
func (t *Team) Color() chat.Color {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.color
}

// SetColor changes the team colour and refreshes every surface.
func (t *Team) SetColor(c chat.Color) {
	t.mu.Lock()
	t.color = c
	t.mu.Unlock()
	t.Refresh()
}

// AddViewer makes id a member. Adding a member twice is a no-op.
func (t *Team) AddViewer(id uuid.UUID) {
	t.mu.Lock()
	if slices.Contains(t.members, id) {
		t.mu.Unlock()
		return
	}
	members := make([]uuid.UUID, len(t.members), len(t.members)+1)
	copy(members, t.members)
	t.members = append(members, id)
	t.mu.Unlock()
	t.Refresh()
}

// RemoveViewer drops id and reports whether it was a member.
func (t *Team) RemoveViewer(id uuid.UUID) bool {
	t.mu.Lock()
	i := slices.Index(t.members, id)
	if i < 0 {
		t.mu.Unlock()
		return false
	}
	t.members = slices.Delete(slices.Clone(t.members), i, i+1)
	t.mu.Unlock()
	t.Refresh()
	return true
}

// Has reports whether id is a member.
func (t *Team) Has(id uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Contains(t.members, id)
}

// Members returns the member ids in join order.
func (t *Team) Members() []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.members)
}

// Destroyed reports whether the team has been torn down.
func (t *Team) Destroyed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.destroyed
}

// Refresh re-applies the team to every surface of its scoreboard.
func (t *Team) Refresh() {
	for _, s := range t.manager.surfaces() {
		t.RefreshOn(s)
	}
}

// RefreshOn applies the team to s, registering the surface team first if the
// surface does not have it yet. Entries are the names of online members;
// anything else is removed.
func (t *Team) RefreshOn(s surface.Surface) {
	t.mu.RLock()
	if t.destroyed {
		t.mu.RUnlock()
		return
	}
	displayName := t.displayName
	color := t.color
	members := t.members
	t.mu.RUnlock()

	st := s.Team(t.name)
	if st == nil {
		var err error
		st, err = s.RegisterTeam(t.name)
		if err != nil {
			logging.Logger().Warn("team refresh failed", "surface", s.ID(), "team", t.name, "err", err)
			return
		}
	}

	st.SetDisplayName(chat.Colorize(displayName))
	st.SetColor(color)
	if color.IsColor() {
		st.SetPrefix(color.String())
	} else {
		st.SetPrefix("")
	}

	want := make(map[string]bool, len(members))
	for _, id := range members {
		if v, ok := t.manager.host.Viewer(id); ok {
			want[v.Name()] = true
		}
	}
	for _, entry := range st.Entries() {
		if !want[entry] {
			st.RemoveEntry(entry)
		}
	}
	for name := range want {
		if !st.HasEntry(name) {
			st.AddEntry(name)
		}
	}
}

// Destroy unregisters the team from every surface. Later refreshes do
// nothing.
func (t *Team) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.mu.Unlock()

	for _, s := range t.manager.surfaces() {
		st := s.Team(t.name)
		if st == nil {
			continue
		}
		if err := st.Unregister(); err != nil && !errors.Is(err, surface.ErrUnregistered) {
			logging.Logger().Warn("team unregister failed", "surface", s.ID(), "team", t.name, "err", err)
		}
	}
}
