package client

// State represents the session state.
type State uint8

const (
	// StateDisconnected indicates no session key is bound.
	StateDisconnected State = iota

	// StateConnected indicates a completed key exchange.
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	default:
		return "UNKNOWN"
	}
}
