// Package engine renders a title and an ordered list of text lines onto a
// scoreboard surface.
//
// Surfaces have no "line of text" primitive. Each line is a hidden token entry
// scored with its rank, owned by a team named line<rank> whose prefix and
// suffix carry the visible text. The engine remembers the last lines applied to
// every surface so unchanged content costs nothing, reuses the rank teams while
// the line count is stable, and tears them all down when the count changes.
//
// Rank 1 is the bottom row, so the last line supplied gets rank 1.
//
// A render is not transactional. The new lines are recorded before they are
// applied, and a line that is too long aborts the render with the lower ranks
// already written. Callers may rely on those ranks staying visible.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/logging"
	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/tokens"
)

const lineGroupPrefix = "line"

// Capabilities are the version-dependent limits and objective factories the
// engine needs. *surface.Provider implements it.
type Capabilities interface {
	MaxFieldLength() int
	MaxLineLength() int
	LineObjective(s surface.Surface) (surface.Objective, error)
	TabHealthObjective(style surface.HealthStyle, s surface.Surface) (surface.Objective, error)
	BelowNameHealthObjective(s surface.Surface, show bool) (surface.Objective, error)
}

// Refresher re-applies viewer teams after the lines are written.
type Refresher interface {
	RefreshAll(s surface.Surface)
}

// Options are the health displays applied on every render.
type Options struct {
	TabHealth       surface.HealthStyle
	BelowNameHealth bool
}

// LineTooLongError reports a raw line longer than the host allows.
type LineTooLongError struct {
	Text  string
	Limit int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("scoreboard line is %d characters, limit is %d: %q", chat.Len(e.Text), e.Limit, e.Text)
}

// LineGroupName is the team name that owns rank.
func LineGroupName(rank int) string {
	return lineGroupPrefix + strconv.Itoa(rank)
}

// IsLineGroup reports whether a team name belongs to the engine.
func IsLineGroup(name string) bool {
	digits, ok := strings.CutPrefix(name, lineGroupPrefix)
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// renderState is only trusted while it is the value stored for its surface.
// Forgetting a surface empties the state under its lock before unlinking it,
// so a render that was waiting on the old lock starts over with the new one.
type renderState struct {
	mu      sync.Mutex
	lines   []string
	applied bool
}

// Engine renders lines and owns the per-surface render state.
type Engine struct {
	caps   Capabilities
	states *store.Memory[string, *renderState]
}

// New creates an engine bound to one capability set.
func New(caps Capabilities) *Engine {
	return &Engine{
		caps:   caps,
		states: store.NewMemory[string, *renderState](),
	}
}

// Capabilities returns the capability set the engine was built with.
func (e *Engine) Capabilities() Capabilities {
	return e.caps
}

// Render applies title and lines to s and then refreshes teams through
// refresher, which may be nil. Renders of one surface are serialised.
func (e *Engine) Render(s surface.Surface, title string, lines []string, opts Options, refresher Refresher) error {
	log := logging.Logger().With("surface", s.ID())

	st := e.lock(s.ID())
	defer st.mu.Unlock()

	objective, err := e.caps.LineObjective(s)
	if err != nil {
		return fmt.Errorf("line objective on %s: %w", s.ID(), err)
	}
	objective.SetDisplayName(chat.Colorize(title))

	if lines == nil {
		lines = []string{}
	}

	switch {
	case st.applied && slices.Equal(st.lines, lines):
		log.Debug("render skipped, lines unchanged", "lines", len(lines))
		refresh(refresher, s)
		return nil
	case st.applied && len(st.lines) != len(lines):
		log.Debug("line count changed, resetting", "from", len(st.lines), "to", len(lines))
		resetLines(s)
	case !st.applied && staleLineGroups(s, len(lines)):
		// State was forgotten while the surface kept its rank teams.
		resetLines(s)
	}

	st.lines = slices.Clone(lines)
	st.applied = true

	reversed := slices.Clone(lines)
	slices.Reverse(reversed)

	toks, err := tokens.Allocate(len(reversed))
	if err != nil {
		log.Warn("token capacity exceeded", "lines", len(reversed), "err", err)
		return err
	}

	objective.SetDisplaySlot(surface.SlotSidebar)

	if err := e.applyHealth(s, opts); err != nil {
		return err
	}

	maxLine := e.caps.MaxLineLength()
	maxField := e.caps.MaxFieldLength()

	for i, line := range reversed {
		rank := i + 1
		if chat.Len(line) > maxLine {
			log.Warn("line too long, render aborted", "rank", rank, "length", chat.Len(line), "limit", maxLine)
			return &LineTooLongError{Text: line, Limit: maxLine}
		}

		text := chat.Colorize(line)
		token := toks[i]

		team := s.Team(LineGroupName(rank))
		if team != nil {
			for _, entry := range team.Entries() {
				team.RemoveEntry(entry)
			}
			team.AddEntry(token)
		} else {
			team, err = s.RegisterTeam(LineGroupName(rank))
			if err != nil {
				return fmt.Errorf("register %s on %s: %w", LineGroupName(rank), s.ID(), err)
			}
			team.AddEntry(token)
			objective.SetScore(token, rank)
		}

		prefix, suffix := chat.Split(text, maxField)
		team.SetPrefix(prefix)
		team.SetSuffix(suffix)
	}

	log.Debug("render applied", "lines", len(lines))
	refresh(refresher, s)
	return nil
}

func (e *Engine) applyHealth(s surface.Surface, opts Options) error {
	tab, err := e.caps.TabHealthObjective(opts.TabHealth, s)
	if err != nil {
		return fmt.Errorf("tab health objective on %s: %w", s.ID(), err)
	}
	if opts.TabHealth != surface.HealthNone {
		tab.SetDisplaySlot(surface.SlotPlayerList)
	} else if tab != nil {
		unregister(s, tab.Name(), tab.Unregister)
	}

	below, err := e.caps.BelowNameHealthObjective(s, opts.BelowNameHealth)
	if err != nil {
		return fmt.Errorf("below-name health objective on %s: %w", s.ID(), err)
	}
	if opts.BelowNameHealth {
		below.SetDisplaySlot(surface.SlotBelowName)
	} else if below != nil {
		unregister(s, below.Name(), below.Unregister)
	}
	return nil
}

// Lines returns a copy of the lines last applied to s.
func (e *Engine) Lines(s surface.Surface) ([]string, bool) {
	st, ok := e.states.Get(s.ID())
	if !ok {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.applied {
		return nil, false
	}
	return slices.Clone(st.lines), true
}

// lock returns the live state for id with its lock held.
func (e *Engine) lock(id string) *renderState {
	for {
		st := e.states.GetOrSet(id, func() *renderState { return &renderState{} })
		st.mu.Lock()
		if cur, ok := e.states.Get(id); ok && cur == st {
			return st
		}
		st.mu.Unlock()
	}
}

// forget waits for any render of id to finish, then drops its state.
func (e *Engine) forget(id string) {
	st, ok := e.states.Get(id)
	if !ok {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lines = nil
	st.applied = false
	e.states.DeleteIf(id, func(cur *renderState) bool { return cur == st })
}

// Forget drops the render state of a discarded surface. A render in progress
// on s finishes first.
func (e *Engine) Forget(s surface.Surface) {
	e.forget(s.ID())
}

// Reset drops every render state, waiting for renders in progress.
func (e *Engine) Reset() {
	for _, id := range e.states.Keys() {
		e.forget(id)
	}
}

// Tracked returns how many surfaces have render state.
func (e *Engine) Tracked() int {
	return e.states.Len()
}

// resetLines clears the sidebar, every score and every rank team on s.
func resetLines(s surface.Surface) {
	s.ClearSlot(surface.SlotSidebar)
	for _, entry := range s.Entries() {
		s.ResetScores(entry)
	}
	for _, team := range s.Teams() {
		if IsLineGroup(team.Name()) {
			unregister(s, team.Name(), team.Unregister)
		}
	}
}

func staleLineGroups(s surface.Surface, want int) bool {
	n := 0
	for _, team := range s.Teams() {
		if IsLineGroup(team.Name()) {
			n++
		}
	}
	return n > 0 && n != want
}

func unregister(s surface.Surface, name string, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, surface.ErrUnregistered) {
		logging.Logger().Warn("unregister failed", "surface", s.ID(), "name", name, "err", err)
	}
}

func refresh(r Refresher, s surface.Surface) {
	if r != nil {
		r.RefreshAll(s)
	}
}
