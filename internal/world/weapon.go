package world

// Weapon selects the fire semantics a ship uses.
type Weapon string

const (
	WeaponBullets   Weapon = "bullets"
	WeaponMissiles  Weapon = "missiles"
	WeaponLaser     Weapon = "laser"
	WeaponLightning Weapon = "lightning"
)

// Upgrade names a per-player upgrade. Levels come from the game state; a
// missing upgrade is level 0.
type Upgrade string

const (
	UpgradeBulletRate      Upgrade = "bullet_rate"
	UpgradeBulletSize      Upgrade = "bullet_size"
	UpgradeMissileSpeed    Upgrade = "missile_speed"
	UpgradeMissileHoming   Upgrade = "missile_homing"
	UpgradeLaserEfficiency Upgrade = "laser_efficiency"
	UpgradeLaserRange      Upgrade = "laser_range"
	UpgradeLightningRadius Upgrade = "lightning_radius"
	UpgradeLightningChain  Upgrade = "lightning_chain"
)

// ParseWeapon maps a table or config string to a Weapon.
func ParseWeapon(s string) (Weapon, bool) {
	switch w := Weapon(s); w {
	case WeaponBullets, WeaponMissiles, WeaponLaser, WeaponLightning:
		return w, true
	}
	return "", false
}

// Intent is one frame of ship commands produced by input polling or an AI.
type Intent struct {
	Fire   bool    // fire key held
	Shield bool    // shield key held
	Turn   float64 // -1..1
	Thrust bool
	Strafe float64 // -1..1, sideways thrust
}
