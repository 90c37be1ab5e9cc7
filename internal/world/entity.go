package world

import (
	"math"

	"github.com/starwake/simcore/internal/core/ecs"
	"github.com/starwake/simcore/internal/geom"
)

// PlayerID identifies the owner of ships and the account every score, fuel
// and life mutation is applied to.
type PlayerID int32

// Kind tags the closed set of entity variants.
type Kind uint8

const (
	KindShip Kind = iota
	KindBullet
	KindMissile
	KindAsteroid
	KindGift
	KindWarpBubble
	KindExplosionZone
	kindCount
)

var kindNames = [kindCount]string{
	"ship", "bullet", "missile", "asteroid", "gift", "warp_bubble", "explosion_zone",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Destroyed is the sentinel age of an entity that has been consumed by a
// collision this frame and is waiting for the sweep.
var Destroyed = math.Inf(1)

// Body holds the attributes every entity shares.
type Body struct {
	ID       ecs.EntityID
	Pos      geom.Vec
	Vel      geom.Vec
	Size     geom.Vec // collision and visual extent
	Rotation float64  // radians
	Color    string   // display only
	Age      float64  // seconds since creation
	MaxAge   float64  // 0 = never expires
}

func (b *Body) body() *Body { return b }

// Radius is the collision radius derived from the larger size axis.
func (b *Body) Radius() float64 {
	return math.Max(b.Size.X, b.Size.Y) / 2
}

func (b *Body) MarkDestroyed()    { b.Age = Destroyed }
func (b *Body) IsDestroyed() bool { return math.IsInf(b.Age, 1) }
func (b *Body) Facing() geom.Vec  { return geom.FromAngle(b.Rotation, 1) }
func (b *Body) Base() *Body       { return b }

// Expired reports whether the body outlived its max age or was destroyed.
func (b *Body) Expired() bool {
	if b.IsDestroyed() {
		return true
	}
	return b.MaxAge > 0 && b.Age >= b.MaxAge
}

// Entity is implemented only by the variant types in this package.
type Entity interface {
	Kind() Kind
	Base() *Body
	body() *Body
}

// Pilot says who drives a ship.
type Pilot uint8

const (
	PilotHuman Pilot = iota
	PilotPrimaryAI
	PilotCompanion
)

func (p Pilot) String() string {
	switch p {
	case PilotHuman:
		return "human"
	case PilotPrimaryAI:
		return "primary_ai"
	case PilotCompanion:
		return "companion"
	}
	return "unknown"
}

// Arc is one rendered lightning segment.
type Arc struct {
	From geom.Vec `msgpack:"from"`
	To   geom.Vec `msgpack:"to"`
}

// LightningStrike is the last lightning discharge of a ship. The collision
// pass applies it once inside the post-fire window.
type LightningStrike struct {
	Targets []ecs.EntityID
	Arcs    []Arc
	FiredAt int64 // ms
	Applied bool
}

// Trail is a bounded history of past positions, oldest first.
type Trail struct {
	Points []geom.Vec
	Max    int
}

// Push appends p, dropping the oldest point past Max.
func (t *Trail) Push(p geom.Vec) {
	if t.Max <= 0 {
		return
	}
	if len(t.Points) >= t.Max {
		copy(t.Points, t.Points[1:])
		t.Points = t.Points[:len(t.Points)-1]
	}
	t.Points = append(t.Points, p)
}

type Ship struct {
	Body
	Player          PlayerID
	Pilot           Pilot
	Invulnerable    bool
	InvulnerableFor float64 // seconds remaining
	LaserActive     bool
	LaserStart      int64 // ms
	Lightning       LightningStrike
	Thrust          bool
	Strafe          bool
	Trail           Trail
}

type Bullet struct {
	Body
	Owner  ecs.EntityID
	Player PlayerID
}

type Missile struct {
	Body
	Owner  ecs.EntityID
	Player PlayerID
}

type Asteroid struct {
	Body
}

// SizeValue is the scalar asteroid size used for tiers and fragmentation.
func (a *Asteroid) SizeValue() float64 { return a.Size.X }

// GiftKind selects the benefit a gift grants.
type GiftKind string

const (
	GiftFuel          GiftKind = "fuel"
	GiftLife          GiftKind = "life"
	GiftWeaponUnlock  GiftKind = "weapon_unlock"
	GiftWeaponUpgrade GiftKind = "weapon_upgrade"
	GiftCompanion     GiftKind = "companion"
)

type Gift struct {
	Body
	Type    GiftKind
	Weapon  Weapon  // for GiftWeaponUnlock
	Upgrade Upgrade // for GiftWeaponUpgrade
}

type WarpBubble struct {
	Body
	Out            bool
	Disappearing   bool
	DisappearStart int64 // ms
}

type ExplosionZone struct {
	Body
	Radius          float64
	RemainingFrames int
	Player          PlayerID
}

func (*Ship) Kind() Kind          { return KindShip }
func (*Bullet) Kind() Kind        { return KindBullet }
func (*Missile) Kind() Kind       { return KindMissile }
func (*Asteroid) Kind() Kind      { return KindAsteroid }
func (*Gift) Kind() Kind          { return KindGift }
func (*WarpBubble) Kind() Kind    { return KindWarpBubble }
func (*ExplosionZone) Kind() Kind { return KindExplosionZone }
