package handler

import (
	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/world"
)

// firstRemotePlayer keeps remote player IDs clear of the local pilot.
const firstRemotePlayer world.PlayerID = 100

// Remote is the player a link session controls.
type Remote struct {
	Player world.PlayerID
	Ship   ecs.EntityID
	Name   string
}

// Players maps link sessions to remote players. Loop goroutine only.
type Players struct {
	bySession map[uint64]*Remote
	next      world.PlayerID
}

func NewPlayers() *Players {
	return &Players{
		bySession: make(map[uint64]*Remote),
		next:      firstRemotePlayer,
	}
}

// Bind assigns a fresh player ID to a session.
func (ps *Players) Bind(sessionID uint64, name string) *Remote {
	r := &Remote{Player: ps.next, Name: name}
	ps.next++
	ps.bySession[sessionID] = r
	return r
}

func (ps *Players) Get(sessionID uint64) *Remote {
	return ps.bySession[sessionID]
}

// Unbind forgets a session and returns its player, or nil.
func (ps *Players) Unbind(sessionID uint64) *Remote {
	r := ps.bySession[sessionID]
	delete(ps.bySession, sessionID)
	return r
}

func (ps *Players) Count() int { return len(ps.bySession) }
