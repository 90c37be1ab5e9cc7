package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// TierUnknown names sizes that fall below every configured tier.
const TierUnknown = "unknown"

// AsteroidTier scores and weighs asteroids of one size band.
type AsteroidTier struct {
	Name           string  `yaml:"name"`
	MinSize        float64 `yaml:"min_size"`
	Score          int     `yaml:"score"`
	ShieldFuelCost float64 `yaml:"shield_fuel_cost"`
	Bounce         float64 `yaml:"bounce"` // shield impulse multiplier
}

// AsteroidTierTable resolves an asteroid size to its tier.
type AsteroidTierTable struct {
	tiers []AsteroidTier // sorted by MinSize, largest first
}

// LoadAsteroidTierTable loads asteroid_tiers.yaml.
func LoadAsteroidTierTable(path string) (*AsteroidTierTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asteroid tiers: %w", err)
	}
	var entries []AsteroidTier
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse asteroid tiers: %w", err)
	}
	return NewAsteroidTierTable(entries)
}

// NewAsteroidTierTable builds a table from in-memory tiers.
func NewAsteroidTierTable(entries []AsteroidTier) (*AsteroidTierTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("asteroid tiers: no tiers defined")
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.Name == TierUnknown {
			return nil, fmt.Errorf("asteroid tiers: invalid tier name %q", e.Name)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("asteroid tiers: duplicate tier %q", e.Name)
		}
		seen[e.Name] = true
	}
	t := &AsteroidTierTable{tiers: append([]AsteroidTier(nil), entries...)}
	sort.SliceStable(t.tiers, func(i, j int) bool {
		return t.tiers[i].MinSize > t.tiers[j].MinSize
	})
	return t, nil
}

// DefaultAsteroidTiers is the classic large/medium/small split used when no
// table file is configured.
func DefaultAsteroidTiers() *AsteroidTierTable {
	t, _ := NewAsteroidTierTable([]AsteroidTier{
		{Name: "large", MinSize: 60, Score: 20, ShieldFuelCost: 15, Bounce: 1.5},
		{Name: "medium", MinSize: 35, Score: 50, ShieldFuelCost: 8, Bounce: 1.2},
		{Name: "small", MinSize: 10, Score: 100, ShieldFuelCost: 4, Bounce: 1.0},
	})
	return t
}

// Lookup returns the tier for size. ok is false when size is below every
// tier; the returned tier is then the smallest tier renamed to "unknown",
// with no score.
func (t *AsteroidTierTable) Lookup(size float64) (tier AsteroidTier, ok bool) {
	for _, e := range t.tiers {
		if size >= e.MinSize {
			return e, true
		}
	}
	fallback := t.Smallest()
	fallback.Name = TierUnknown
	fallback.Score = 0
	return fallback, false
}

// Get returns the tier with the given name, or nil.
func (t *AsteroidTierTable) Get(name string) *AsteroidTier {
	for i := range t.tiers {
		if t.tiers[i].Name == name {
			return &t.tiers[i]
		}
	}
	return nil
}

// Smallest returns the tier with the lowest min size.
func (t *AsteroidTierTable) Smallest() AsteroidTier {
	return t.tiers[len(t.tiers)-1]
}

// Count returns the number of tiers loaded.
func (t *AsteroidTierTable) Count() int {
	return len(t.tiers)
}
