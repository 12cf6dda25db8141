package challenge

import (
	"fmt"
	"time"
)

// RotationEntry assigns a map and mode to one weekday.
type RotationEntry struct {
	Weekday time.Weekday
	MapKey  string
	ModeKey string
}

// Rotation is the fixed weekly assignment, one entry per weekday.
// Immutable after construction.
type Rotation [7]RotationEntry

// NewRotation validates that every weekday is covered exactly once and that
// all keys exist in the static tables.
func NewRotation(entries []RotationEntry) (Rotation, error) {
	if len(entries) != 7 {
		return Rotation{}, fmt.Errorf("rotation needs 7 entries, got %d", len(entries))
	}
	var r Rotation
	seen := [7]bool{}
	for _, e := range entries {
		if e.Weekday < time.Sunday || e.Weekday > time.Saturday {
			return Rotation{}, fmt.Errorf("rotation entry has invalid weekday %d", e.Weekday)
		}
		if seen[e.Weekday] {
			return Rotation{}, fmt.Errorf("rotation has duplicate entry for %s", e.Weekday)
		}
		if _, err := MapByKey(e.MapKey); err != nil {
			return Rotation{}, fmt.Errorf("rotation entry for %s: %w", e.Weekday, err)
		}
		if _, err := ModeByKey(e.ModeKey); err != nil {
			return Rotation{}, fmt.Errorf("rotation entry for %s: %w", e.Weekday, err)
		}
		seen[e.Weekday] = true
		r[e.Weekday] = e
	}
	return r, nil
}

// EntryFor returns the rotation entry for the given weekday.
func (r Rotation) EntryFor(day time.Weekday) RotationEntry {
	return r[day]
}

// DefaultRotation is the stock weekly schedule.
func DefaultRotation() Rotation {
	r, err := NewRotation([]RotationEntry{
		{Weekday: time.Sunday, MapKey: "community_world", ModeKey: "move"},
		{Weekday: time.Monday, MapKey: "pro_world", ModeKey: "nomove"},
		{Weekday: time.Tuesday, MapKey: "arbitrary_rural", ModeKey: "nmpz"},
		{Weekday: time.Wednesday, MapKey: "famous_places", ModeKey: "move"},
		{Weekday: time.Thursday, MapKey: "urban_world", ModeKey: "nomove"},
		{Weekday: time.Friday, MapKey: "community_world", ModeKey: "nmpz"},
		{Weekday: time.Saturday, MapKey: "pro_world", ModeKey: "speedrun"},
	})
	if err != nil {
		panic(err)
	}
	return r
}
