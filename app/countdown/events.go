package countdown

import (
	"sort"
	"time"
)

// Event is a countdown toward a key school date. TargetAt stays a raw string
// so that an unparseable value is representable; it is never coerced into an
// expired or zero instant. Events are read-only values here: a reload
// replaces the in-memory collection wholesale.
type Event struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	TargetAt string `json:"target_at" yaml:"target_at"`
	Featured bool   `json:"featured" yaml:"featured"`
	Active   bool   `json:"active" yaml:"active"`
}

// OnlyFuture keeps the events whose target is strictly after now. Past and
// unparseable targets are excluded entirely, not shown as expired. The
// filter is idempotent.
func OnlyFuture(events []Event, now time.Time) []Event {
	future := make([]Event, 0, len(events))
	for _, event := range events {
		t, ok := ParseTarget(event.TargetAt)
		if ok && t.After(now) {
			future = append(future, event)
		}
	}
	return future
}

// SortByTarget returns a copy sorted chronologically by target instant.
// Unparseable targets sort last, in their original order.
func SortByTarget(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iok := ParseTarget(sorted[i].TargetAt)
		tj, jok := ParseTarget(sorted[j].TargetAt)
		if !iok || !jok {
			return iok
		}
		return ti.Before(tj)
	})
	return sorted
}

// Select filters events to the future, sorts them chronologically, and picks
// the single featured event. The tie-break order: the event whose slug
// matches pinnedSlug, else the first event with the featured flag, else the
// chronologically earliest. rest is the sorted remainder without the
// featured event. ok is false only for an empty future set.
func Select(events []Event, pinnedSlug string, now time.Time) (Event, []Event, bool) {
	future := SortByTarget(OnlyFuture(events, now))
	if len(future) == 0 {
		return Event{}, nil, false
	}

	featured := future[0]
	if pinned, ok := findBySlug(future, pinnedSlug); ok {
		featured = pinned
	} else if flagged, ok := findFlagged(future); ok {
		featured = flagged
	}

	rest := make([]Event, 0, len(future)-1)
	for _, event := range future {
		if event.Slug != featured.Slug {
			rest = append(rest, event)
		}
	}
	return featured, rest, true
}

func findBySlug(events []Event, slug string) (Event, bool) {
	if slug == "" {
		return Event{}, false
	}
	for _, event := range events {
		if event.Slug == slug {
			return event, true
		}
	}
	return Event{}, false
}

func findFlagged(events []Event) (Event, bool) {
	for _, event := range events {
		if event.Featured {
			return event, true
		}
	}
	return Event{}, false
}
