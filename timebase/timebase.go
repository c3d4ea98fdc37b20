// Package timebase normalizes wall-clock instants to UTC and back.
// Everything persisted by this service is UTC; day and month boundaries
// shown to a viewer are computed in that viewer's IANA zone and converted
// here before any query or comparison.
package timebase

import (
	"fmt"
	"sync"
	"time"
)

var (
	zoneMu    sync.Mutex
	zoneCache = map[string]*time.Location{}
)

// LoadZone resolves an IANA zone name, caching locations across requests.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}
	zoneMu.Lock()
	defer zoneMu.Unlock()
	if loc, ok := zoneCache[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	zoneCache[name] = loc
	return loc, nil
}

// ToUTC converts any instant to UTC. Converting an already-UTC instant is
// a no-op.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// ToZone converts an absolute instant to its wall-clock reading in a
// display zone.
func ToZone(t time.Time, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// DayBounds returns the half-open [start, end) of one calendar day of the
// display zone, as UTC instants. The span is usually 24 hours but shrinks
// or stretches across DST transitions.
func DayBounds(year int, month time.Month, day int, zone string) (time.Time, time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := time.Date(year, month, day+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC(), nil
}
