package game

const (
	// MaxStandingLines caps the standings table; the sidebar only shows 15 rows
	MaxStandingLines = 15

	// MaxLinesPerBoard caps lines submitted through the lobby form
	MaxLinesPerBoard = 15

	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 10

	// SSETimeout is the timeout for sending messages to SSE clients
	SSETimeoutSeconds = 1

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating room codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
