package snapshot

import (
	"testing"

	"github.com/starwake/simcore/internal/geom"
	"github.com/starwake/simcore/internal/world"
)

func TestBuildOrdersByKindAndCarriesDisplayState(t *testing.T) {
	store := world.NewStore()
	store.Add(&world.Asteroid{Body: world.Body{Pos: geom.V(5, 5), Size: geom.V(30, 30)}})
	ship := &world.Ship{
		Body:        world.Body{Pos: geom.V(1, 2), Size: geom.V(24, 24)},
		Player:      7,
		LaserActive: true,
		Lightning: world.LightningStrike{
			Arcs:    []world.Arc{{From: geom.V(1, 2), To: geom.V(50, 2)}},
			FiredAt: 900,
		},
	}
	store.Add(ship)
	store.Add(&world.ExplosionZone{Radius: 40, RemainingFrames: 12})

	f := Build(store, 3, 1000, 250, func(*world.Ship) float64 { return 100 })

	if len(f.Entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(f.Entities))
	}
	if f.Entities[0].Kind != "ship" || f.Entities[1].Kind != "asteroid" || f.Entities[2].Kind != "explosion_zone" {
		t.Errorf("kinds = %s %s %s", f.Entities[0].Kind, f.Entities[1].Kind, f.Entities[2].Kind)
	}
	s := f.Entities[0]
	if s.Player != 7 || s.Beam == nil || s.Beam.To != geom.V(101, 2) {
		t.Errorf("ship entry = %+v", s)
	}
	if len(s.Arcs) != 1 {
		t.Errorf("fresh arcs dropped")
	}
	if f.Entities[2].Frames != 12 {
		t.Errorf("zone frames = %d", f.Entities[2].Frames)
	}

	stale := Build(store, 4, 2000, 250, nil)
	if len(stale.Entities[0].Arcs) != 0 || stale.Entities[0].Beam != nil {
		t.Errorf("stale arcs or beam kept: %+v", stale.Entities[0])
	}
}

func TestEncodeDecode(t *testing.T) {
	store := world.NewStore()
	store.Add(&world.Gift{Body: world.Body{Pos: geom.V(3, 4)}, Type: world.GiftLife})
	f := Build(store, 1, 16, 0, nil)
	f.Shields = []Shield{{Player: 1, State: "active"}}

	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Tick != 1 || len(got.Entities) != 1 || got.Entities[0].Gift != "life" || got.Shields[0].State != "active" {
		t.Errorf("decoded = %+v", got)
	}
}
