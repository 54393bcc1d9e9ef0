package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
	"github.com/aaronzipp/scoreboards/internal/tokens"
)

func newEngine(t *testing.T, v surface.Version) *Engine {
	t.Helper()
	p, err := surface.NewProvider(v)
	require.NoError(t, err)
	return New(p)
}

func lineTeams(s *memory.Surface) []surface.Team {
	var out []surface.Team
	for _, team := range s.Teams() {
		if IsLineGroup(team.Name()) {
			out = append(out, team)
		}
	}
	return out
}

func sidebarTexts(t *testing.T, s *memory.Surface) []string {
	t.Helper()
	sb, ok := s.Sidebar()
	require.True(t, ok, "sidebar slot empty")
	out := make([]string, 0, len(sb.Lines))
	for _, l := range sb.Lines {
		out = append(out, chat.Strip(l.Text()))
	}
	return out
}

type countingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRefresher) RefreshAll(surface.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func TestRenderShowsLinesTopToBottom(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "&eTitle", []string{"A", "B", "C"}, Options{}, nil))

	sb, ok := s.Sidebar()
	require.True(t, ok)
	require.Equal(t, "§eTitle", sb.Title)
	require.Equal(t, []string{"A", "B", "C"}, sidebarTexts(t, s))
	require.Equal(t, 3, sb.Lines[0].Rank)
	require.Equal(t, "C", s.Team(LineGroupName(1)).Prefix())
	require.Len(t, lineTeams(s), 3)
}

func TestRenderTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")
	r := &countingRefresher{}
	lines := []string{"&aone", "two", "three"}

	require.NoError(t, e.Render(s, "T", lines, Options{}, r))
	first := s.Stats()
	sbFirst, _ := s.Sidebar()

	require.NoError(t, e.Render(s, "T", lines, Options{}, r))
	second := s.Stats()
	sbSecond, _ := s.Sidebar()

	require.Equal(t, first, second)
	require.Equal(t, sbFirst, sbSecond)
	require.Equal(t, 2, r.calls, "teams refresh even when lines are unchanged")
}

func TestCountChangeTearsDownEveryLineGroup(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "T", []string{"A", "B", "C"}, Options{}, nil))
	require.Len(t, lineTeams(s), 3)
	require.Equal(t, 3, s.Stats().TeamsRegistered)

	require.NoError(t, e.Render(s, "T", []string{"A", "B"}, Options{}, nil))
	stats := s.Stats()
	require.Equal(t, 3, stats.TeamsUnregistered, "all three rank teams go before reapplying")
	require.Equal(t, 5, stats.TeamsRegistered, "both remaining ranks are recreated")
	require.Len(t, lineTeams(s), 2)

	require.Equal(t, "B", s.Team(LineGroupName(1)).Prefix())
	require.Equal(t, "A", s.Team(LineGroupName(2)).Prefix())
	require.Nil(t, s.Team(LineGroupName(3)))
	require.Equal(t, []string{"A", "B"}, sidebarTexts(t, s))
	require.Len(t, s.Entries(), 2, "no orphaned ranks remain")
}

func TestGrowingAddsRanksWithoutCollisions(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "T", []string{"A"}, Options{}, nil))
	require.NoError(t, e.Render(s, "T", []string{"A", "B", "C", "D"}, Options{}, nil))
	require.Equal(t, []string{"A", "B", "C", "D"}, sidebarTexts(t, s))
	require.Len(t, s.Entries(), 4)
}

func TestContentChangeReusesGroups(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "T", []string{"A", "B", "C"}, Options{}, nil))
	require.NoError(t, e.Render(s, "T", []string{"C", "A", "X"}, Options{}, nil))

	stats := s.Stats()
	require.Equal(t, 3, stats.TeamsRegistered)
	require.Zero(t, stats.TeamsUnregistered)
	require.Zero(t, stats.ScoreResets)
	require.Equal(t, []string{"C", "A", "X"}, sidebarTexts(t, s))
}

func TestRenderStoresACopyOfLines(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")
	lines := []string{"a", "b"}

	require.NoError(t, e.Render(s, "T", lines, Options{}, nil))
	lines[0] = "changed"
	require.NoError(t, e.Render(s, "T", lines, Options{}, nil))

	require.Equal(t, []string{"changed", "b"}, sidebarTexts(t, s))
	stored, ok := e.Lines(s)
	require.True(t, ok)
	stored[1] = "tampered"
	again, _ := e.Lines(s)
	require.Equal(t, []string{"changed", "b"}, again)
}

func TestNilLinesRenderEmptySidebar(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "", nil, Options{}, nil))
	sb, ok := s.Sidebar()
	require.True(t, ok)
	require.Empty(t, sb.Title)
	require.Empty(t, sb.Lines)

	require.NoError(t, e.Render(s, "", []string{}, Options{}, nil))
	require.Zero(t, s.Stats().TeamsRegistered)
}

func TestTitleChangeAppliesEvenWhenLinesUnchanged(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "one", []string{"x"}, Options{}, nil))
	require.NoError(t, e.Render(s, "&ctwo", []string{"x"}, Options{}, nil))
	sb, _ := s.Sidebar()
	require.Equal(t, "§ctwo", sb.Title)
}

func TestLineTooLongKeepsEarlierRanks(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_12)
	s := memory.NewSurface("s")
	long := strings.Repeat("x", 33)
	lines := []string{"top", long, "bottom"}

	err := e.Render(s, "T", lines, Options{}, nil)
	var tooLong *LineTooLongError
	require.True(t, errors.As(err, &tooLong))
	require.Equal(t, long, tooLong.Text)
	require.Equal(t, 32, tooLong.Limit)

	require.Equal(t, "bottom", s.Team(LineGroupName(1)).Prefix(), "rank 1 stays applied")
	require.Nil(t, s.Team(LineGroupName(2)))
	require.Nil(t, s.Team(LineGroupName(3)))

	stored, ok := e.Lines(s)
	require.True(t, ok)
	require.Equal(t, lines, stored, "state records the attempted lines")
}

func TestLineAtLimitIsAccepted(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_12)
	s := memory.NewSurface("s")
	require.NoError(t, e.Render(s, "T", []string{strings.Repeat("x", 32)}, Options{}, nil))

	modern := newEngine(t, surface.V1_13)
	require.NoError(t, modern.Render(memory.NewSurface("m"), "T", []string{strings.Repeat("x", 128)}, Options{}, nil))
	err := modern.Render(memory.NewSurface("m2"), "T", []string{strings.Repeat("x", 129)}, Options{}, nil)
	var tooLong *LineTooLongError
	require.True(t, errors.As(err, &tooLong))
	require.Equal(t, 128, tooLong.Limit)
}

func TestDecorationSplitAtFieldLimit(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_12)
	s := memory.NewSurface("s")

	exact := strings.Repeat("a", 16)
	over := strings.Repeat("b", 16) + "c"
	require.NoError(t, e.Render(s, "T", []string{over, exact}, Options{}, nil))

	fits := s.Team(LineGroupName(1))
	require.Equal(t, exact, fits.Prefix())
	require.Empty(t, fits.Suffix())

	split := s.Team(LineGroupName(2))
	require.Equal(t, strings.Repeat("b", 16), split.Prefix())
	require.Equal(t, "c", split.Suffix())
	require.Equal(t, over, split.Prefix()+split.Suffix())
}

func TestDecorationSplitCarriesColour(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_12)
	s := memory.NewSurface("s")
	line := "&6" + strings.Repeat("g", 14) + "&lxyz"

	require.NoError(t, e.Render(s, "T", []string{line}, Options{}, nil))
	team := s.Team(LineGroupName(1))
	require.Equal(t, "§6"+strings.Repeat("g", 14), team.Prefix())
	require.Equal(t, "§6§lxyz", team.Suffix())
}

func TestEveryRankHasADistinctToken(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "same"
	}

	require.NoError(t, e.Render(s, "T", lines, Options{}, nil))
	seen := map[string]bool{}
	for _, team := range lineTeams(s) {
		entries := team.Entries()
		require.Len(t, entries, 1)
		require.False(t, seen[entries[0]])
		seen[entries[0]] = true
	}
	require.Len(t, seen, 40)
}

func TestTokenCapacityIsAHardLimit(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)

	full := make([]string, tokens.Capacity())
	for i := range full {
		full[i] = fmt.Sprintf("line %d", i)
	}
	s := memory.NewSurface("full")
	require.NoError(t, e.Render(s, "T", full, Options{}, nil))
	require.Len(t, s.Entries(), tokens.Capacity())

	over := append(full, "one too many")
	err := e.Render(memory.NewSurface("over"), "T", over, Options{}, nil)
	var capErr *tokens.CapacityError
	require.True(t, errors.As(err, &capErr))
	require.Equal(t, tokens.Capacity()+1, capErr.Requested)
}

func TestHealthObjectives(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "T", []string{"a"}, Options{TabHealth: surface.HealthHearts, BelowNameHealth: true}, nil))
	tab := s.Objective(surface.TabHealthObjectiveName)
	require.NotNil(t, tab)
	require.Equal(t, surface.SlotPlayerList, tab.DisplaySlot())
	require.Equal(t, surface.RenderHearts, tab.RenderType())
	below := s.Objective(surface.NameHealthObjectiveName)
	require.NotNil(t, below)
	require.Equal(t, surface.SlotBelowName, below.DisplaySlot())

	require.NoError(t, e.Render(s, "T", []string{"b"}, Options{}, nil))
	require.Nil(t, s.Objective(surface.TabHealthObjectiveName))
	require.Nil(t, s.Objective(surface.NameHealthObjectiveName))

	require.NoError(t, e.Render(s, "T", []string{"c"}, Options{}, nil), "absent objectives are tolerated")
}

func TestOptionsOnlyApplyWhenLinesChange(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	require.NoError(t, e.Render(s, "T", []string{"a"}, Options{}, nil))
	require.NoError(t, e.Render(s, "T", []string{"a"}, Options{TabHealth: surface.HealthNumber}, nil))
	require.Nil(t, s.Objective(surface.TabHealthObjectiveName))

	require.NoError(t, e.Render(s, "T", []string{"b"}, Options{TabHealth: surface.HealthNumber}, nil))
	require.NotNil(t, s.Objective(surface.TabHealthObjectiveName))
}

func TestForgetAndReset(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	a := memory.NewSurface("a")
	b := memory.NewSurface("b")
	require.NoError(t, e.Render(a, "T", []string{"1"}, Options{}, nil))
	require.NoError(t, e.Render(b, "T", []string{"1"}, Options{}, nil))
	require.Equal(t, 2, e.Tracked())

	e.Forget(a)
	require.Equal(t, 1, e.Tracked())
	_, ok := e.Lines(a)
	require.False(t, ok)

	e.Reset()
	require.Zero(t, e.Tracked())
}

func TestRenderAfterForgetCleansStaleGroups(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")
	require.NoError(t, e.Render(s, "T", []string{"a", "b", "c"}, Options{}, nil))

	e.Forget(s)
	require.NoError(t, e.Render(s, "T", []string{"x"}, Options{}, nil))
	require.Len(t, lineTeams(s), 1)
	require.Equal(t, []string{"x"}, sidebarTexts(t, s))
}

func TestConcurrentRendersLeaveSurfaceConsistent(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				n := (w+i)%5 + 1
				lines := make([]string, n)
				for j := range lines {
					lines[j] = fmt.Sprintf("w%d-%d", w, j)
				}
				require.NoError(t, e.Render(s, "T", lines, Options{}, nil))
			}
		}(w)
	}
	wg.Wait()

	stored, ok := e.Lines(s)
	require.True(t, ok)
	require.Len(t, lineTeams(s), len(stored))
	require.Equal(t, stored, sidebarTexts(t, s))
}

// gatedCaps parks the first LineObjective call until release is closed.
type gatedCaps struct {
	Capabilities
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedCaps(t *testing.T) *gatedCaps {
	t.Helper()
	p, err := surface.NewProvider(surface.V1_20)
	require.NoError(t, err)
	return &gatedCaps{Capabilities: p, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedCaps) LineObjective(s surface.Surface) (surface.Objective, error) {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.Capabilities.LineObjective(s)
}

func TestResetDuringRenderKeepsRendersSerialised(t *testing.T) {
	t.Parallel()

	caps := newGatedCaps(t)
	e := New(caps)
	s := memory.NewSurface("s")

	first := make(chan error, 1)
	go func() { first <- e.Render(s, "T", []string{"a", "b", "c"}, Options{}, nil) }()
	<-caps.entered

	reset := make(chan struct{})
	go func() {
		e.Reset()
		close(reset)
	}()
	second := make(chan error, 1)
	go func() { second <- e.Render(s, "T", []string{"x", "y"}, Options{}, nil) }()

	select {
	case <-second:
		t.Fatal("second render finished while the first still held the surface")
	case <-reset:
		t.Fatal("reset finished while a render was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(caps.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)
	<-reset

	require.Equal(t, []string{"x", "y"}, sidebarTexts(t, s))
	require.Len(t, lineTeams(s), 2)

	require.NoError(t, e.Render(s, "T", []string{"x", "y"}, Options{}, nil))
	require.Equal(t, []string{"x", "y"}, sidebarTexts(t, s))
	stored, ok := e.Lines(s)
	require.True(t, ok)
	require.Equal(t, []string{"x", "y"}, stored)
}

func TestForgetDuringRenderWaits(t *testing.T) {
	t.Parallel()

	caps := newGatedCaps(t)
	e := New(caps)
	s := memory.NewSurface("s")

	first := make(chan error, 1)
	go func() { first <- e.Render(s, "T", []string{"a", "b", "c"}, Options{}, nil) }()
	<-caps.entered

	forgotten := make(chan struct{})
	go func() {
		e.Forget(s)
		close(forgotten)
	}()

	select {
	case <-forgotten:
		t.Fatal("forget finished while a render was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(caps.release)
	require.NoError(t, <-first)
	<-forgotten

	_, ok := e.Lines(s)
	require.False(t, ok)
	require.Zero(t, e.Tracked())

	// The surface still carries three rank teams; a shorter list must replace them.
	require.NoError(t, e.Render(s, "T", []string{"z"}, Options{}, nil))
	require.Equal(t, []string{"z"}, sidebarTexts(t, s))
	require.Len(t, lineTeams(s), 1)
}

func TestConcurrentRenderAndReset(t *testing.T) {
	t.Parallel()

	e := newEngine(t, surface.V1_20)
	s := memory.NewSurface("s")

	var wg sync.WaitGroup
	for w := 0; w < 6; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 30; i++ {
				if (w+i)%4 == 0 {
					e.Reset()
					continue
				}
				lines := make([]string, (w+i)%3+1)
				for j := range lines {
					lines[j] = fmt.Sprintf("w%d-%d", w, j)
				}
				require.NoError(t, e.Render(s, "T", lines, Options{}, nil))
			}
		}(w)
	}
	wg.Wait()

	final := []string{"end", "state"}
	require.NoError(t, e.Render(s, "T", final, Options{}, nil))
	require.Equal(t, final, sidebarTexts(t, s))
	require.Len(t, lineTeams(s), 2)
}

func TestIsLineGroup(t *testing.T) {
	t.Parallel()

	require.True(t, IsLineGroup("line1"))
	require.True(t, IsLineGroup("line272"))
	require.False(t, IsLineGroup("line"))
	require.False(t, IsLineGroup("online"))
	require.False(t, IsLineGroup("lineup"))
	require.False(t, IsLineGroup("Line1"))
}
