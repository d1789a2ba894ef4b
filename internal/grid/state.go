package grid

// State is a step in the grid lifecycle
type State int

const (
	Idle State = iota
	BringingUp
	Waiting
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BringingUp:
		return "bringing-up"
	case Waiting:
		return "waiting"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
