package live

type State int

const (
	StateUninitialized State = iota
	StateLive
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLive:
		return "live"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func ParseState(s string) State {
	switch s {
	case "live":
		return StateLive
	case "stopped":
		return StateStopped
	default:
		return StateUninitialized
	}
}
