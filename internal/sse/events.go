package sse

// SSE event type constants
const (
	EventNavRedirect    = "nav-redirect"
	EventPlayerUpdate   = "player-update"
	EventScoreUpdate    = "score-update"
	EventSidebarUpdate  = "sidebar-update"
	EventTeamUpdate     = "team-update"
	EventControlsUpdate = "controls-update"
	EventHostChanged    = "host-changed"
	EventErrorMessage   = "error-message"
)
