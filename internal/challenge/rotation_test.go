package challenge

import (
	"testing"
	"time"
)

func TestDefaultRotationCoversWeek(t *testing.T) {
	r := DefaultRotation()
	for day := time.Sunday; day <= time.Saturday; day++ {
		e := r.EntryFor(day)
		if e.Weekday != day {
			t.Fatalf("%s: entry holds weekday %s", day, e.Weekday)
		}
		if _, err := MapByKey(e.MapKey); err != nil {
			t.Fatalf("%s: %v", day, err)
		}
		if _, err := ModeByKey(e.ModeKey); err != nil {
			t.Fatalf("%s: %v", day, err)
		}
	}
}

func TestNewRotationRejectsBadEntries(t *testing.T) {
	base := DefaultRotation()
	entries := func() []RotationEntry {
		out := make([]RotationEntry, 0, 7)
		for day := time.Sunday; day <= time.Saturday; day++ {
			out = append(out, base.EntryFor(day))
		}
		return out
	}

	short := entries()[:6]
	if _, err := NewRotation(short); err == nil {
		t.Fatalf("expected error for 6 entries")
	}

	dup := entries()
	dup[1].Weekday = time.Sunday
	if _, err := NewRotation(dup); err == nil {
		t.Fatalf("expected error for duplicate weekday")
	}

	badMap := entries()
	badMap[2].MapKey = "atlantis"
	if _, err := NewRotation(badMap); err == nil {
		t.Fatalf("expected error for unknown map key")
	}

	badMode := entries()
	badMode[3].ModeKey = "teleport"
	if _, err := NewRotation(badMode); err == nil {
		t.Fatalf("expected error for unknown mode key")
	}
}
