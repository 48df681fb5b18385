package content

import (
	"sync"
	"time"

	"github.com/01001010100011/scolamia.it/app/countdown"

	"github.com/01001010100011/scolamia.it/app/metrics"
)

// homeRestCap is how many upcoming countdowns the home board shows beside
// the featured one.
const homeRestCap = 2

// Board drives the home page countdown display: a ticker republishing the
// featured event and the next few upcoming ones every interval, plus the
// source tag of the dataset currently on display.
type Board struct {
	ticker *countdown.Ticker

	mu       sync.RWMutex
	snapshot countdown.Snapshot
	source   Source
}

func NewBoard(interval time.Duration, pinnedSlug string) *Board {
	b := &Board{source: SourceStatic}
	b.ticker = countdown.NewTicker(interval, pinnedSlug, homeRestCap, b.publish)
	return b
}

func (b *Board) publish(snap countdown.Snapshot) {
	b.mu.Lock()
	b.snapshot = snap
	b.mu.Unlock()

	tracked := len(snap.Rest)
	if snap.Featured != nil {
		tracked++
	}
	metrics.BoardTrackedEvents.Set(float64(tracked))
}

// Replace installs a fresh dataset on the board. A set with no future
// events publishes an empty snapshot and stops the ticking.
func (b *Board) Replace(set CountdownSet) {
	b.mu.Lock()
	b.source = set.Source
	b.mu.Unlock()
	b.ticker.Replace(set.Events)
}

// Snapshot returns the latest published display and its source.
func (b *Board) Snapshot() (countdown.Snapshot, Source) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot, b.source
}

func (b *Board) State() countdown.State {
	return b.ticker.State()
}

func (b *Board) Stop() {
	b.ticker.Stop()
}
