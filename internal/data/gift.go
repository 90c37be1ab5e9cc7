package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GiftEntry defines the benefit and scoring of one gift kind.
type GiftEntry struct {
	Kind    string `yaml:"kind"`
	Amount  int    `yaml:"amount"`  // fuel units, lives or upgrade levels
	Score   int    `yaml:"score"`   // awarded on pickup
	Penalty int    `yaml:"penalty"` // removed when shot; 0 = config default
	Message string `yaml:"message"` // printf template for the pickup notice
}

// GiftTable provides lookup of gift kinds.
type GiftTable struct {
	gifts map[string]*GiftEntry
}

// LoadGiftTable loads gift_list.yaml.
func LoadGiftTable(path string) (*GiftTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gift list: %w", err)
	}
	var entries []GiftEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse gift list: %w", err)
	}
	t := &GiftTable{
		gifts: make(map[string]*GiftEntry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Kind == "" {
			return nil, fmt.Errorf("gift list: entry %d has no kind", i)
		}
		t.gifts[e.Kind] = e
	}
	return t, nil
}

// DefaultGiftTable mirrors data/yaml/gift_list.yaml.
func DefaultGiftTable() *GiftTable {
	entries := []GiftEntry{
		{Kind: "fuel", Amount: 40, Score: 25, Penalty: 30, Message: "+%d fuel"},
		{Kind: "life", Amount: 1, Score: 50, Penalty: 100, Message: "+%d life"},
		{Kind: "weapon_unlock", Score: 50, Message: "%s unlocked"},
		{Kind: "weapon_upgrade", Amount: 1, Score: 50, Message: "%s upgraded"},
		{Kind: "companion", Score: 100, Penalty: 75, Message: "Companion joined"},
	}
	t := &GiftTable{gifts: make(map[string]*GiftEntry, len(entries))}
	for i := range entries {
		t.gifts[entries[i].Kind] = &entries[i]
	}
	return t
}

// Get returns the entry for kind, or nil if none.
func (t *GiftTable) Get(kind string) *GiftEntry {
	return t.gifts[kind]
}

// Count returns the total number of gift kinds loaded.
func (t *GiftTable) Count() int {
	return len(t.gifts)
}
