package system

import (
	coresys "github.com/starwake/simcore/internal/core/system"
)

// KinematicsSystem integrates positions and ages and sweeps expired
// entities. Phase 1 (Movement), after missile guidance.
type KinematicsSystem struct {
	deps *Deps
}

func NewKinematicsSystem(deps *Deps) *KinematicsSystem {
	return &KinematicsSystem{deps: deps}
}

func (s *KinematicsSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *KinematicsSystem) Update(f coresys.Frame) {
	s.deps.Store.Advance(f.DT, f.Now)
}
