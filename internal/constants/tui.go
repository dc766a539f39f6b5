package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateRoutines SessionState = iota
	StateAddRoutine
	StateConfirmReset
)
