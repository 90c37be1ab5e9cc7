package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadShippedTables(t *testing.T) {
	tiers, err := LoadAsteroidTierTable(filepath.Join("..", "..", "data", "yaml", "asteroid_tiers.yaml"))
	if err != nil {
		t.Fatalf("LoadAsteroidTierTable: %v", err)
	}
	if tiers.Count() != 3 {
		t.Errorf("tier count = %d, want 3", tiers.Count())
	}
	gifts, err := LoadGiftTable(filepath.Join("..", "..", "data", "yaml", "gift_list.yaml"))
	if err != nil {
		t.Fatalf("LoadGiftTable: %v", err)
	}
	if gifts.Count() != 5 {
		t.Errorf("gift count = %d, want 5", gifts.Count())
	}
	if g := gifts.Get("fuel"); g == nil || g.Amount != 40 {
		t.Errorf("fuel entry = %+v", g)
	}
}

func TestTierLookup(t *testing.T) {
	tiers := DefaultAsteroidTiers()
	tests := []struct {
		size  float64
		want  string
		known bool
	}{
		{80, "large", true},
		{60, "large", true},
		{59.9, "medium", true},
		{35, "medium", true},
		{12, "small", true},
		{10, "small", true},
		{8.4, TierUnknown, false},
	}
	for _, tt := range tests {
		got, ok := tiers.Lookup(tt.size)
		if got.Name != tt.want || ok != tt.known {
			t.Errorf("Lookup(%v) = %q,%v want %q,%v", tt.size, got.Name, ok, tt.want, tt.known)
		}
	}
}

func TestUnknownTierUsesSmallestFuelCost(t *testing.T) {
	tiers := DefaultAsteroidTiers()
	got, _ := tiers.Lookup(1)
	if got.ShieldFuelCost != tiers.Smallest().ShieldFuelCost {
		t.Errorf("unknown fuel cost = %v, want %v", got.ShieldFuelCost, tiers.Smallest().ShieldFuelCost)
	}
	if got.Score != 0 {
		t.Errorf("unknown score = %d, want 0", got.Score)
	}
}

func TestTierFuelCostOrdering(t *testing.T) {
	tiers := DefaultAsteroidTiers()
	large, medium, small := tiers.Get("large"), tiers.Get("medium"), tiers.Get("small")
	if !(large.ShieldFuelCost > medium.ShieldFuelCost && medium.ShieldFuelCost > small.ShieldFuelCost) {
		t.Errorf("fuel costs not ordered: %v %v %v", large.ShieldFuelCost, medium.ShieldFuelCost, small.ShieldFuelCost)
	}
}

func TestNewAsteroidTierTableRejectsDuplicates(t *testing.T) {
	_, err := NewAsteroidTierTable([]AsteroidTier{{Name: "a", MinSize: 1}, {Name: "a", MinSize: 2}})
	if err == nil {
		t.Fatal("expected duplicate tier error")
	}
}

func TestLoadGiftTableRejectsMissingKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifts.yaml")
	if err := os.WriteFile(path, []byte("- amount: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGiftTable(path); err == nil {
		t.Fatal("expected error for entry without kind")
	}
}
