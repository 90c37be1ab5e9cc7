// Package snapshot encodes the per-frame view an external renderer draws.
package snapshot

import (
	"fmt"

	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is everything visible after one simulation step.
type Frame struct {
	Tick     uint64   `msgpack:"t"`
	Now      int64    `msgpack:"n"`
	Entities []Entity `msgpack:"e"`
	Shields  []Shield `msgpack:"s,omitempty"`
}

// Entity is the display state of one entity. Kind-specific fields are
// omitted when empty.
type Entity struct {
	ID    uint64  `msgpack:"id"`
	Kind  string  `msgpack:"k"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Rot   float64 `msgpack:"r"`
	W     float64 `msgpack:"w"`
	H     float64 `msgpack:"h"`
	Color string  `msgpack:"c,omitempty"`

	Player    int32       `msgpack:"p,omitempty"`
	Pilot     string      `msgpack:"pi,omitempty"`
	Invuln    bool        `msgpack:"inv,omitempty"`
	Beam      *world.Arc  `msgpack:"beam,omitempty"`
	Arcs      []world.Arc `msgpack:"arcs,omitempty"`
	Trail     []geom.Vec  `msgpack:"tr,omitempty"`
	Gift      string      `msgpack:"g,omitempty"`
	Vanishing bool        `msgpack:"v,omitempty"`
	Radius    float64     `msgpack:"rad,omitempty"`
	Frames    int         `msgpack:"f,omitempty"`
}

// Shield is one player's shield indicator.
type Shield struct {
	Player int32  `msgpack:"p"`
	State  string `msgpack:"st"`
}

// BeamLength reports the current laser length of a ship.
type BeamLength func(*world.Ship) float64

// Build captures the store in kind order, each kind in insertion order.
// Lightning arcs are drawn only while the strike is fresh.
func Build(store *world.Store, tick uint64, now int64, arcTTL int64, beam BeamLength) Frame {
	f := Frame{Tick: tick, Now: now, Entities: make([]Entity, 0, store.Total())}
	for kind := world.KindShip; kind <= world.KindExplosionZone; kind++ {
		for _, e := range store.All(kind) {
			f.Entities = append(f.Entities, entity(e, now, arcTTL, beam))
		}
	}
	return f
}

func entity(e world.Entity, now, arcTTL int64, beam BeamLength) Entity {
	b := e.Base()
	out := Entity{
		ID:    uint64(b.ID),
		Kind:  e.Kind().String(),
		X:     b.Pos.X,
		Y:     b.Pos.Y,
		Rot:   b.Rotation,
		W:     b.Size.X,
		H:     b.Size.Y,
		Color: b.Color,
	}
	switch v := e.(type) {
	case *world.Ship:
		out.Player = int32(v.Player)
		out.Pilot = v.Pilot.String()
		out.Invuln = v.Invulnerable
		out.Trail = v.Trail.Points
		if v.LaserActive && beam != nil {
			out.Beam = &world.Arc{From: v.Pos, To: v.Pos.Add(v.Facing().Scale(beam(v)))}
		}
		if len(v.Lightning.Arcs) > 0 && now-v.Lightning.FiredAt <= arcTTL {
			out.Arcs = v.Lightning.Arcs
		}
	case *world.Bullet:
		out.Player = int32(v.Player)
	case *world.Missile:
		out.Player = int32(v.Player)
	case *world.Asteroid:
	case *world.Gift:
		out.Gift = string(v.Type)
	case *world.WarpBubble:
		out.Vanishing = v.Disappearing
	case *world.ExplosionZone:
		out.Player = int32(v.Player)
		out.Radius = v.Radius
		out.Frames = v.RemainingFrames
	}
	return out
}

// Encode serializes f with msgpack.
func Encode(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode is the inverse of Encode, for tools and tests.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return f, nil
}
