package audio

import "time"

// Cue identifies a short sound played on a visualizer event
type Cue int

const (
	CueComplete Cue = iota // route fully revealed
	CueTrapped             // search ended without reaching the target
	CueMaze                // maze generated
	CueRejected            // edit refused while animating
)

func (c Cue) String() string {
	switch c {
	case CueComplete:
		return "complete"
	case CueTrapped:
		return "trapped"
	case CueMaze:
		return "maze"
	case CueRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Cue shaping
const (
	completeNoteDuration = 90 * time.Millisecond
	completeAttack       = 5 * time.Millisecond
	completeRelease      = 60 * time.Millisecond

	trappedDuration = 220 * time.Millisecond
	trappedAttack   = 10 * time.Millisecond
	trappedRelease  = 150 * time.Millisecond

	mazeDuration = 120 * time.Millisecond
	mazeAttack   = 2 * time.Millisecond
	mazeRelease  = 100 * time.Millisecond

	rejectedDuration = 80 * time.Millisecond
	rejectedAttack   = 2 * time.Millisecond
	rejectedRelease  = 40 * time.Millisecond
)
