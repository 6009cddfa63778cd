package launch

// State is the position of one launch attempt in the pipeline.
type State int

const (
	// StateIdle is the initial state, before any work starts
	StateIdle State = iota
	// StateResolving indicates version metadata is being loaded
	StateResolving
	// StateConfigured indicates the client configuration has been built
	StateConfigured
	// StateSessionReady indicates the session is prepared for spawning
	StateSessionReady
	// StateLaunched indicates the game process has been spawned
	StateLaunched
	// StateDone is terminal: the process was handed off to the host
	StateDone
	// StateFailed is terminal: a step failed and the attempt was abandoned
	StateFailed
)

// String returns the string representation of the State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateResolving:
		return "Resolving"
	case StateConfigured:
		return "Configured"
	case StateSessionReady:
		return "Session ready"
	case StateLaunched:
		return "Launched"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
