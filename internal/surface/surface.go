// Package surface describes the primitives a scoreboard display offers:
// objectives bound to display slots, scored entries, and teams that decorate
// entries or tag viewers. The render engine only ever talks to these
// interfaces; concrete hosts supply the implementations.
package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/scoreboards/internal/chat"
)

// ErrUnregistered is returned when unregistering an objective or team that is
// already gone.
var ErrUnregistered = errors.New("surface: already unregistered")

// DisplaySlot is a place on screen an objective can occupy.
type DisplaySlot int

const (
	SlotNone DisplaySlot = iota
	SlotSidebar
	SlotPlayerList
	SlotBelowName
)

func (s DisplaySlot) String() string {
	switch s {
	case SlotSidebar:
		return "sidebar"
	case SlotPlayerList:
		return "player_list"
	case SlotBelowName:
		return "below_name"
	default:
		return "none"
	}
}

// RenderType controls how a health objective draws its score.
type RenderType int

const (
	RenderIntegers RenderType = iota
	RenderHearts
)

// HealthStyle selects the tab-list health display.
type HealthStyle int

const (
	HealthNone HealthStyle = iota
	HealthHearts
	HealthNumber
)

// ParseHealthStyle accepts "none", "hearts" or "number" in any case.
func ParseHealthStyle(s string) (HealthStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return HealthNone, nil
	case "hearts":
		return HealthHearts, nil
	case "number", "numbers", "integer":
		return HealthNumber, nil
	}
	return HealthNone, fmt.Errorf("unknown health style %q", s)
}

func (h HealthStyle) String() string {
	switch h {
	case HealthHearts:
		return "hearts"
	case HealthNumber:
		return "number"
	default:
		return "none"
	}
}

func (h HealthStyle) renderType() RenderType {
	if h == HealthHearts {
		return RenderHearts
	}
	return RenderIntegers
}

// Surface is one viewer-visible scoreboard.
type Surface interface {
	ID() string

	// Objective returns nil when no objective has that name.
	Objective(name string) Objective
	RegisterObjective(name, criteria string) (Objective, error)
	ClearSlot(slot DisplaySlot)

	// Entries lists every entry holding a score in any objective.
	Entries() []string
	ResetScores(entry string)

	// Team returns nil when no team has that name.
	Team(name string) Team
	Teams() []Team
	RegisterTeam(name string) (Team, error)
}

// Objective holds a title and a score per entry.
type Objective interface {
	Name() string
	Criteria() string
	DisplayName() string
	SetDisplayName(name string)
	DisplaySlot() DisplaySlot
	SetDisplaySlot(slot DisplaySlot)
	RenderType() RenderType
	SetRenderType(rt RenderType)
	Score(entry string) (int, bool)
	SetScore(entry string, score int)
	Unregister() error
}

// Team decorates its entries with a prefix and suffix and tints them.
type Team interface {
	Name() string
	DisplayName() string
	SetDisplayName(name string)
	Color() chat.Color
	SetColor(c chat.Color)
	Prefix() string
	SetPrefix(prefix string)
	Suffix() string
	SetSuffix(suffix string)
	Entries() []string
	HasEntry(entry string) bool
	AddEntry(entry string)
	RemoveEntry(entry string) bool
	Unregister() error
}

// Viewer is a connected identity that looks at exactly one surface.
type Viewer interface {
	ID() uuid.UUID
	Name() string
	Surface() Surface
	SetSurface(s Surface)
}

// Host owns viewers and hands out surfaces.
type Host interface {
	// MainSurface is the default every viewer returns to.
	MainSurface() Surface
	NewSurface() Surface
	// Viewer reports false for viewers that are not online.
	Viewer(id uuid.UUID) (Viewer, bool)
}
