package breath

// Phase is a stage of the breathing cycle. PhaseStart is the state before
// the first advance and after a reset; it carries no styling.
type Phase int

const (
	PhaseStart Phase = iota - 1
	PhaseBreatheIn
	PhaseHoldIn
	PhaseBreatheOut
	PhaseHoldOut
)

// NumPhases is the number of active phases in one cycle.
const NumPhases = 4

// Phases lists the active phases in cycle order.
var Phases = [NumPhases]Phase{PhaseBreatheIn, PhaseHoldIn, PhaseBreatheOut, PhaseHoldOut}

// Index returns the position of p within the cycle, or -1 with ok false
// for PhaseStart and unknown values.
func (p Phase) Index() (int, bool) {
	if p < PhaseBreatheIn || p > PhaseHoldOut {
		return -1, false
	}
	return int(p), true
}

// Next returns the successor of p. The cycle wraps from PhaseHoldOut to
// PhaseBreatheIn, and PhaseStart advances into PhaseBreatheIn.
func (p Phase) Next() Phase {
	i, ok := p.Index()
	if !ok {
		return PhaseBreatheIn
	}
	return Phase((i + 1) % NumPhases)
}

// IsActive reports whether p is one of the four cycle phases.
func (p Phase) IsActive() bool {
	_, ok := p.Index()
	return ok
}

func (p Phase) String() string {
	switch p {
	case PhaseBreatheIn:
		return "Breathe in"
	case PhaseHoldIn, PhaseHoldOut:
		return "Hold"
	case PhaseBreatheOut:
		return "Breathe out"
	default:
		return ""
	}
}
