package challenge

import (
	"fmt"
	"sort"

	"github.com/0hneB/Daily-Challenge-Bot/internal/geoguessr"
)

// MapConfig names a playable GeoGuessr map and its remote identifier.
type MapConfig struct {
	Key   string
	Name  string
	MapID string
}

// ModeConfig bundles movement restrictions and a per-round time limit.
type ModeConfig struct {
	Key      string
	Name     string
	Settings geoguessr.ModeSettings
}

var maps = map[string]MapConfig{
	"community_world": {
		Key:   "community_world",
		Name:  "A Community World",
		MapID: "62a44b22040f04bd36e8a914",
	},
	"pro_world": {
		Key:   "pro_world",
		Name:  "World",
		MapID: "world",
	},
	"arbitrary_rural": {
		Key:   "arbitrary_rural",
		Name:  "An Arbitrary Rural World",
		MapID: "643dbc7ccc47d3a344307998",
	},
	"famous_places": {
		Key:   "famous_places",
		Name:  "Famous Places",
		MapID: "famous-places",
	},
	"urban_world": {
		Key:   "urban_world",
		Name:  "An Urban World",
		MapID: "5d374dc141d2a43c1cd4527b",
	},
}

var modes = map[string]ModeConfig{
	"move": {
		Key:      "move",
		Name:     "Moving",
		Settings: geoguessr.ModeSettings{TimeLimit: 300},
	},
	"nomove": {
		Key:  "nomove",
		Name: "No Move",
		Settings: geoguessr.ModeSettings{
			ForbidMoving: true,
			TimeLimit:    240,
		},
	},
	"nmpz": {
		Key:  "nmpz",
		Name: "NMPZ",
		Settings: geoguessr.ModeSettings{
			ForbidMoving:   true,
			ForbidZooming:  true,
			ForbidRotating: true,
			TimeLimit:      120,
		},
	},
	"speedrun": {
		Key:      "speedrun",
		Name:     "Speedrun",
		Settings: geoguessr.ModeSettings{TimeLimit: 60},
	},
}

// MapByKey resolves a map key, failing with ErrUnknownMap for keys outside
// the table.
func MapByKey(key string) (MapConfig, error) {
	m, ok := maps[key]
	if !ok {
		return MapConfig{}, fmt.Errorf("%w: %s", ErrUnknownMap, key)
	}
	return m, nil
}

// ModeByKey resolves a mode key, failing with ErrUnknownMode for keys
// outside the table.
func ModeByKey(key string) (ModeConfig, error) {
	m, ok := modes[key]
	if !ok {
		return ModeConfig{}, fmt.Errorf("%w: %s", ErrUnknownMode, key)
	}
	return m, nil
}

// MapKeys lists the known map keys in sorted order.
func MapKeys() []string {
	keys := make([]string, 0, len(maps))
	for k := range maps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ModeKeys lists the known mode keys in sorted order.
func ModeKeys() []string {
	keys := make([]string, 0, len(modes))
	for k := range modes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
