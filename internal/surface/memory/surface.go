// Package memory is an in-process implementation of the surface primitives.
// It backs the tests, the demo server and the terminal preview, and records
// enough bookkeeping to assert how a render touched the surface.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// Stats counts structural operations since the surface was created.
type Stats struct {
	ObjectivesRegistered   int
	ObjectivesUnregistered int
	TeamsRegistered        int
	TeamsUnregistered      int
	ScoreResets            int
	SlotClears             int
}

// Surface is a thread-safe scoreboard held in memory.
type Surface struct {
	id string

	mu         sync.Mutex
	objectives map[string]*Objective
	teams      map[string]*Team
	slots      map[surface.DisplaySlot]*Objective
	stats      Stats
}

// NewSurface creates an empty surface.
func NewSurface(id string) *Surface {
	return &Surface{
		id:         id,
		objectives: make(map[string]*Objective),
		teams:      make(map[string]*Team),
		slots:      make(map[surface.DisplaySlot]*Objective),
	}
}

func (s *Surface) ID() string {
	return s.id
}

func (s *Surface) Objective(name string) surface.Objective {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.objectives[name]; ok {
		return o
	}
	return nil
}

func (s *Surface) RegisterObjective(name, criteria string) (surface.Objective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objectives[name]; exists {
		return nil, fmt.Errorf("objective %q already registered on %s", name, s.id)
	}
	o := &Objective{
		surface:     s,
		name:        name,
		criteria:    criteria,
		displayName: name,
		scores:      make(map[string]int),
	}
	s.objectives[name] = o
	s.stats.ObjectivesRegistered++
	return o, nil
}

func (s *Surface) ClearSlot(slot surface.DisplaySlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.slots[slot]; ok {
		o.slot = surface.SlotNone
		delete(s.slots, slot)
	}
	s.stats.SlotClears++
}

func (s *Surface) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	for _, o := range s.objectives {
		for entry := range o.scores {
			seen[entry] = true
		}
	}
	out := make([]string, 0, len(seen))
	for entry := range seen {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

func (s *Surface) ResetScores(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objectives {
		delete(o.scores, entry)
	}
	s.stats.ScoreResets++
}

func (s *Surface) Team(name string) surface.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[name]; ok {
		return t
	}
	return nil
}

func (s *Surface) Teams() []surface.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.teams))
	for name := range s.teams {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]surface.Team, 0, len(names))
	for _, name := range names {
		out = append(out, s.teams[name])
	}
	return out
}

func (s *Surface) RegisterTeam(name string) (surface.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.teams[name]; exists {
		return nil, fmt.Errorf("team %q already registered on %s", name, s.id)
	}
	t := &Team{
		surface:     s,
		name:        name,
		displayName: name,
		color:       chat.Reset,
		entries:     make(map[string]bool),
	}
	s.teams[name] = t
	s.stats.TeamsRegistered++
	return t, nil
}

// Stats returns a copy of the operation counters.
func (s *Surface) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// SidebarLine is one rendered row of the sidebar.
type SidebarLine struct {
	Rank   int
	Entry  string
	Team   string
	Prefix string
	Suffix string
}

// Text is what a viewer sees: the decoration around the (invisible) entry.
func (l SidebarLine) Text() string {
	return l.Prefix + l.Entry + l.Suffix
}

// Sidebar is a snapshot of the objective in the sidebar slot.
type Sidebar struct {
	Title string
	Lines []SidebarLine
}

// Sidebar returns the sidebar top to bottom, highest rank first. ok is false
// when nothing occupies the slot.
func (s *Surface) Sidebar() (sb Sidebar, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.slots[surface.SlotSidebar]
	if !ok {
		return Sidebar{}, false
	}

	sb.Title = o.displayName
	for entry, score := range o.scores {
		line := SidebarLine{Rank: score, Entry: entry}
		for _, t := range s.teams {
			if t.entries[entry] {
				line.Team = t.name
				line.Prefix = t.prefix
				line.Suffix = t.suffix
				break
			}
		}
		sb.Lines = append(sb.Lines, line)
	}
	sort.Slice(sb.Lines, func(i, j int) bool {
		if sb.Lines[i].Rank == sb.Lines[j].Rank {
			return sb.Lines[i].Entry < sb.Lines[j].Entry
		}
		return sb.Lines[i].Rank > sb.Lines[j].Rank
	})
	return sb, true
}

// Objective is an in-memory objective.
type Objective struct {
	surface *Surface

	name        string
	criteria    string
	displayName string
	slot        surface.DisplaySlot
	renderType  surface.RenderType
	scores      map[string]int
	gone        bool
}

func (o *Objective) Name() string {
	return o.name
}

func (o *Objective) Criteria() string {
	return o.criteria
}

func (o *Objective) DisplayName() string {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	return o.displayName
}

func (o *Objective) SetDisplayName(name string) {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	o.displayName = name
}

func (o *Objective) DisplaySlot() surface.DisplaySlot {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	return o.slot
}

// SetDisplaySlot moves the objective, displacing whatever held the slot.
func (o *Objective) SetDisplaySlot(slot surface.DisplaySlot) {
	s := o.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.gone {
		return
	}
	if o.slot != surface.SlotNone {
		delete(s.slots, o.slot)
	}
	if prev, ok := s.slots[slot]; ok && prev != o {
		prev.slot = surface.SlotNone
	}
	o.slot = slot
	if slot != surface.SlotNone {
		s.slots[slot] = o
	}
}

func (o *Objective) RenderType() surface.RenderType {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	return o.renderType
}

func (o *Objective) SetRenderType(rt surface.RenderType) {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	o.renderType = rt
}

func (o *Objective) Score(entry string) (int, bool) {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	score, ok := o.scores[entry]
	return score, ok
}

func (o *Objective) SetScore(entry string, score int) {
	o.surface.mu.Lock()
	defer o.surface.mu.Unlock()
	if o.gone {
		return
	}
	o.scores[entry] = score
}

func (o *Objective) Unregister() error {
	s := o.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.gone {
		return surface.ErrUnregistered
	}
	o.gone = true
	if o.slot != surface.SlotNone {
		delete(s.slots, o.slot)
		o.slot = surface.SlotNone
	}
	clear(o.scores)
	delete(s.objectives, o.name)
	s.stats.ObjectivesUnregistered++
	return nil
}

// Team is an in-memory team. An entry belongs to at most one team per surface.
type Team struct {
	surface *Surface

	name        string
	displayName string
	color       chat.Color
	prefix      string
	suffix      string
	entries     map[string]bool
	gone        bool
}

func (t *Team) Name() string {
	return t.name
}

func (t *Team) DisplayName() string {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	return t.displayName
}

func (t *Team) SetDisplayName(name string) {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	t.displayName = name
}

func (t *Team) Color() chat.Color {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	return t.color
}

func (t *Team) SetColor(c chat.Color) {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	t.color = c
}

func (t *Team) Prefix() string {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	return t.prefix
}

func (t *Team) SetPrefix(prefix string) {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	t.prefix = prefix
}

func (t *Team) Suffix() string {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	return t.suffix
}

func (t *Team) SetSuffix(suffix string) {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	t.suffix = suffix
}

func (t *Team) Entries() []string {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	out := make([]string, 0, len(t.entries))
	for entry := range t.entries {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

func (t *Team) HasEntry(entry string) bool {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	return t.entries[entry]
}

// AddEntry moves entry into this team, taking it from any other team.
func (t *Team) AddEntry(entry string) {
	s := t.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gone {
		return
	}
	for _, other := range s.teams {
		delete(other.entries, entry)
	}
	t.entries[entry] = true
}

func (t *Team) RemoveEntry(entry string) bool {
	t.surface.mu.Lock()
	defer t.surface.mu.Unlock()
	if !t.entries[entry] {
		return false
	}
	delete(t.entries, entry)
	return true
}

func (t *Team) Unregister() error {
	s := t.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gone {
		return surface.ErrUnregistered
	}
	t.gone = true
	clear(t.entries)
	delete(s.teams, t.name)
	s.stats.TeamsUnregistered++
	return nil
}
