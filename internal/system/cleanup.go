package system

import (
	coresys "github.com/starwake/simcore/internal/core/system"
)

// CleanupSystem sweeps entities consumed during the frame and drops fire
// state of ships that are gone. Phase 4 (Cleanup).
type CleanupSystem struct {
	deps    *Deps
	weapons *WeaponSystem
}

func NewCleanupSystem(deps *Deps, weapons *WeaponSystem) *CleanupSystem {
	return &CleanupSystem{deps: deps, weapons: weapons}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ coresys.Frame) {
	s.deps.Store.Sweep()
	s.weapons.Forget()
}
