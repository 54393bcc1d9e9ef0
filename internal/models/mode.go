package models

import (
	"fmt"
	"strings"
)

// Mode decides where a lobby's sidebar lines come from
type Mode string

const (
	// ModeGlobal shows the host's lines to everyone
	ModeGlobal Mode = "global"
	// ModePersonal lets every player write their own lines
	ModePersonal Mode = "personal"
	// ModeStandings shows the points table, computed by the server
	ModeStandings Mode = "standings"
)

// ParseMode accepts a mode name in any case; empty means global
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeGlobal, nil
	case ModeGlobal, ModePersonal, ModeStandings:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// PerViewer reports whether each player gets their own surface
func (m Mode) PerViewer() bool {
	return m == ModePersonal
}
