package scoreboard

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/engine"
	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// GlobalBoard is a shared scoreboard driven by setters instead of a resolver.
type GlobalBoard struct {
	*Scoreboard

	mu    sync.RWMutex
	title string
	lines []string
}

// NewGlobalBoard creates an empty shared board.
func NewGlobalBoard(host surface.Host, caps engine.Capabilities, opts Options) *GlobalBoard {
	b := &GlobalBoard{}
	b.Scoreboard = NewGlobal(host, caps, opts, b.content)
	return b
}

func (b *GlobalBoard) content() Content {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Content{Title: b.title, Lines: b.lines}
}

// SetTitle changes the title and renders.
func (b *GlobalBoard) SetTitle(title string) error {
	b.mu.Lock()
	b.title = title
	b.mu.Unlock()
	return b.Update()
}

// SetLines replaces the lines, top to bottom, and renders.
func (b *GlobalBoard) SetLines(lines ...string) error {
	b.mu.Lock()
	b.lines = slices.Clone(lines)
	b.mu.Unlock()
	return b.Update()
}

// Title returns the current title text.
func (b *GlobalBoard) Title() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.title
}

// Lines returns a copy of the current line texts.
func (b *GlobalBoard) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.lines)
}

// PerViewerBoard keeps a title and lines per viewer and renders each viewer's
// own surface from them.
type PerViewerBoard struct {
	*Scoreboard

	titles *store.Memory[uuid.UUID, string]
	lines  *store.Memory[uuid.UUID, []string]
}

// NewPerViewerBoard creates a board with empty caches.
func NewPerViewerBoard(host surface.Host, caps engine.Capabilities, opts Options) *PerViewerBoard {
	b := &PerViewerBoard{
		titles: store.NewMemory[uuid.UUID, string](),
		lines:  store.NewMemory[uuid.UUID, []string](),
	}
	b.Scoreboard = NewPerViewer(host, caps, opts, b.content)
	return b
}

func (b *PerViewerBoard) content(v surface.Viewer) (Content, bool) {
	if v == nil {
		return Content{}, false
	}
	title, _ := b.titles.Get(v.ID())
	lines, _ := b.lines.Get(v.ID())
	return Content{Title: title, Lines: lines}, true
}

// SetTitle stores the title for id and renders.
func (b *PerViewerBoard) SetTitle(id uuid.UUID, title string) error {
	b.titles.Set(id, title)
	return b.Update()
}

// SetLines stores the lines for id, top to bottom, and renders.
func (b *PerViewerBoard) SetLines(id uuid.UUID, lines ...string) error {
	b.lines.Set(id, slices.Clone(lines))
	return b.Update()
}

// Title returns the cached title for id.
func (b *PerViewerBoard) Title(id uuid.UUID) string {
	title, _ := b.titles.Get(id)
	return title
}

// Lines returns a copy of the cached lines for id.
func (b *PerViewerBoard) Lines(id uuid.UUID) []string {
	lines, _ := b.lines.Get(id)
	return slices.Clone(lines)
}

// RemovePlayer detaches the viewer and drops their cached content.
func (b *PerViewerBoard) RemovePlayer(id uuid.UUID) {
	b.Scoreboard.RemovePlayer(id)
	b.titles.Delete(id)
	b.lines.Delete(id)
}

// Destroy tears the board down and empties the caches.
func (b *PerViewerBoard) Destroy() {
	b.Scoreboard.Destroy()
	b.titles.Clear()
	b.lines.Clear()
}

// CachedViewers counts viewers with a cached title or lines.
func (b *PerViewerBoard) CachedViewers() int {
	seen := make(map[uuid.UUID]struct{})
	for _, id := range b.titles.Keys() {
		seen[id] = struct{}{}
	}
	for _, id := range b.lines.Keys() {
		seen[id] = struct{}{}
	}
	return len(seen)
}
