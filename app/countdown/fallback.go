package countdown

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPinnedSlug is the countdown promoted to the featured slot when no
// other signal applies.
const DefaultPinnedSlug = "termine-lezioni"

//go:embed fallback.yml
var fallbackYML []byte

var (
	fallbackOnce   sync.Once
	fallbackEvents []Event
)

// FallbackEvents returns the embedded static dataset, never empty, so the
// public countdown display degrades gracefully instead of rendering nothing.
// The returned slice is a copy.
func FallbackEvents() []Event {
	fallbackOnce.Do(func() {
		if err := yaml.Unmarshal(fallbackYML, &fallbackEvents); err != nil {
			panic(fmt.Sprintf("countdown: embedded fallback dataset is invalid: %v", err))
		}
		if len(fallbackEvents) == 0 {
			panic("countdown: embedded fallback dataset is empty")
		}
	})
	out := make([]Event, len(fallbackEvents))
	copy(out, fallbackEvents)
	return out
}

// FindFallback looks a fallback event up by slug.
func FindFallback(slug string) (Event, bool) {
	for _, event := range FallbackEvents() {
		if event.Slug == slug {
			return event, true
		}
	}
	return Event{}, false
}
