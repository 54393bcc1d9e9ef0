package memory

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface"
)

// Host tracks online viewers and the surfaces they look at.
type Host struct {
	main    *Surface
	viewers *store.Memory[uuid.UUID, *Viewer]
	seq     atomic.Int64
}

// NewHost creates a host with an empty main surface and no viewers.
func NewHost() *Host {
	return &Host{
		main:    NewSurface("main"),
		viewers: store.NewMemory[uuid.UUID, *Viewer](),
	}
}

// MainSurface returns the surface new viewers start on.
func (h *Host) MainSurface() surface.Surface {
	return h.main
}

// NewSurface creates a fresh surface with its own id.
func (h *Host) NewSurface() surface.Surface {
	return NewSurface("surface-" + strconv.FormatInt(h.seq.Add(1), 10))
}

// Viewer looks up a joined viewer by id.
func (h *Host) Viewer(id uuid.UUID) (surface.Viewer, bool) {
	v, ok := h.viewers.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

// Join brings a new viewer online, looking at the main surface.
func (h *Host) Join(name string) *Viewer {
	v := &Viewer{id: uuid.New(), name: name, surface: h.main}
	h.viewers.Set(v.id, v)
	return v
}

// Leave takes a viewer offline.
func (h *Host) Leave(id uuid.UUID) {
	h.viewers.Delete(id)
}

// Online returns the number of connected viewers.
func (h *Host) Online() int {
	return h.viewers.Len()
}

// Viewer is an online identity.
type Viewer struct {
	id   uuid.UUID
	name string

	mu      sync.RWMutex
	surface surface.Surface
}

func (v *Viewer) ID() uuid.UUID {
	return v.id
}

func (v *Viewer) Name() string {
	return v.name
}

func (v *Viewer) Surface() surface.Surface {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.surface
}

func (v *Viewer) SetSurface(s surface.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.surface = s
}
