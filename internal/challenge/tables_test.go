package challenge

import (
	"errors"
	"sort"
	"testing"
)

func TestMapAndModeLookup(t *testing.T) {
	m, err := MapByKey("community_world")
	if err != nil {
		t.Fatalf("MapByKey: %v", err)
	}
	if m.MapID == "" || m.Name == "" {
		t.Fatalf("map config incomplete: %+v", m)
	}

	mode, err := ModeByKey("nmpz")
	if err != nil {
		t.Fatalf("ModeByKey: %v", err)
	}
	s := mode.Settings
	if !s.ForbidMoving || !s.ForbidZooming || !s.ForbidRotating {
		t.Fatalf("nmpz must forbid moving, zooming and rotating: %+v", s)
	}
	if s.TimeLimit <= 0 {
		t.Fatalf("nmpz needs a time limit: %+v", s)
	}

	if _, err := MapByKey("atlantis"); !errors.Is(err, ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
	if _, err := ModeByKey("teleport"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestKeyListingsSorted(t *testing.T) {
	mk := MapKeys()
	if !sort.StringsAreSorted(mk) {
		t.Fatalf("map keys not sorted: %v", mk)
	}
	for _, k := range mk {
		if _, err := MapByKey(k); err != nil {
			t.Fatalf("listed map key %q fails lookup: %v", k, err)
		}
	}

	mo := ModeKeys()
	if !sort.StringsAreSorted(mo) {
		t.Fatalf("mode keys not sorted: %v", mo)
	}
	for _, k := range mo {
		if _, err := ModeByKey(k); err != nil {
			t.Fatalf("listed mode key %q fails lookup: %v", k, err)
		}
	}
}
