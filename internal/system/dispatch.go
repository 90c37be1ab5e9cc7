package system

import (
	"github.com/starwake/simcore/internal/core/event"
	coresys "github.com/starwake/simcore/internal/core/system"
	"go.uber.org/zap"
)

// DispatchSystem hands the frame's events to the display collaborators.
// Phase 5 (Output).
type DispatchSystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewDispatchSystem(bus *event.Bus, log *zap.Logger) *DispatchSystem {
	bus.OnPanic(func(evt any, r any) {
		log.Warn("collaborator panic recovered",
			zap.String("event", event.Describe(evt)),
			zap.Any("panic", r),
		)
	})
	return &DispatchSystem{bus: bus, log: log}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *DispatchSystem) Update(_ coresys.Frame) {
	s.bus.SwapBuffers()
	if s.log.Core().Enabled(zap.DebugLevel) {
		for _, ev := range s.bus.Front() {
			s.log.Debug("event", zap.String("event", event.Describe(ev)))
		}
	}
	s.bus.DispatchAll()
}
