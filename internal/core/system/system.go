package system

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput     Phase = iota // 0: apply ship intents (control, shields, fire)
	PhaseMovement               // 1: missile guidance, kinematics, expiry sweep
	PhaseCollision              // 2: ordered collision passes
	PhaseEffects                // 3: explosion zones
	PhaseCleanup                // 4: final sentinel sweep
	PhaseOutput                 // 5: deliver events to collaborators
)

var phaseNames = [...]string{"input", "movement", "collision", "effects", "cleanup", "output"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Frame is the clock input of one simulation step. DT is in seconds; Now is
// a monotonic millisecond timestamp supplied by the caller.
type Frame struct {
	DT  float64
	Now int64
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(f Frame)
}
