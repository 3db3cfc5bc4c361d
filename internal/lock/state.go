package lock

// State is the visibility state of the session.
type State int

const (
	Disabled State = iota
	Locked
	Throttled
	Unlocked
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Locked:
		return "locked"
	case Throttled:
		return "throttled"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Visible reports whether content may be shown in this state.
func (s State) Visible() bool {
	return s == Disabled || s == Unlocked
}
