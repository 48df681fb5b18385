package countdown

import (
	"context"
	"sync"
	"time"
)

// State of a Ticker.
type State int

const (
	// Idle: no event set has been loaded yet.
	Idle State = iota
	// Ticking: a non-empty future set is being re-rendered periodically.
	Ticking
	// Stopped: the tracked set expired; terminal until a fresh Replace.
	Stopped
)

// ItemView is one event with its currently rendered remaining time.
type ItemView struct {
	Event       Event     `json:"event"`
	Remaining   Remaining `json:"remaining"`
	Display     string    `json:"display"`
	TargetLabel string    `json:"target_label"`
}

// Snapshot is the rendered state of a tracked event set at one instant.
// Featured is nil once every tracked event has expired.
type Snapshot struct {
	Featured  *ItemView  `json:"featured"`
	Rest      []ItemView `json:"rest"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Ticker keeps a set of countdown events rendered while any of them is still
// in the future. On every period it re-filters the set to future-only,
// re-runs selection (the featured slot can change as events expire), and
// publishes a fresh Snapshot. When the set empties it publishes a final
// empty snapshot, cancels its timer and stays Stopped until the next fresh
// load. Safe for concurrent use with reads and replacements.
type Ticker struct {
	interval time.Duration
	pinned   string
	restCap  int // 0 means uncapped
	publish  func(Snapshot)
	now      func() time.Time

	mu     sync.Mutex
	events []Event
	state  State
	closed bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTicker builds a ticker that pushes snapshots to publish. restCap limits
// the rest list for summary views; pass 0 for the full list.
func NewTicker(interval time.Duration, pinnedSlug string, restCap int, publish func(Snapshot)) *Ticker {
	return &Ticker{
		interval: interval,
		pinned:   pinnedSlug,
		restCap:  restCap,
		publish:  publish,
		now:      time.Now,
	}
}

// Replace swaps the tracked set wholesale. A non-empty future set (re)starts
// ticking, including after the set expired; an empty one stops the loop. An
// immediate snapshot is published either way. After Stop, Replace is a no-op
// so a racing load cannot restart the loop Stop is waiting out.
func (t *Ticker) Replace(events []Event) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	now := t.now()
	t.events = OnlyFuture(events, now)
	if len(t.events) == 0 {
		t.haltLocked()
		t.mu.Unlock()
		t.publish(Snapshot{UpdatedAt: now})
		return
	}
	if t.state != Ticking {
		t.startLocked()
	}
	snap := t.snapshotLocked(now)
	t.mu.Unlock()
	t.publish(snap)
}

// Stop cancels the periodic trigger and waits for the loop to exit. Safe to
// call in any state and more than once; the ticker stays stopped for good.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.closed = true
	t.haltLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

// State returns the loop's current state.
func (t *Ticker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Ticker) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.state = Ticking
	t.wg.Add(1)
	go t.run(ctx)
}

// haltLocked cancels the timer without waiting; run exits on its own.
func (t *Ticker) haltLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.state == Ticking {
		t.state = Stopped
	}
}

func (t *Ticker) run(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

func (t *Ticker) tick() {
	t.mu.Lock()
	if t.state != Ticking {
		t.mu.Unlock()
		return
	}
	now := t.now()
	t.events = OnlyFuture(t.events, now)
	if len(t.events) == 0 {
		t.haltLocked()
		t.mu.Unlock()
		t.publish(Snapshot{UpdatedAt: now})
		return
	}
	snap := t.snapshotLocked(now)
	t.mu.Unlock()
	t.publish(snap)
}

func (t *Ticker) snapshotLocked(now time.Time) Snapshot {
	featured, rest, ok := Select(t.events, t.pinned, now)
	if !ok {
		return Snapshot{UpdatedAt: now}
	}
	if t.restCap > 0 && len(rest) > t.restCap {
		rest = rest[:t.restCap]
	}

	view := renderItem(featured, now)
	snap := Snapshot{Featured: &view, Rest: make([]ItemView, 0, len(rest)), UpdatedAt: now}
	for _, event := range rest {
		snap.Rest = append(snap.Rest, renderItem(event, now))
	}
	return snap
}

func renderItem(event Event, now time.Time) ItemView {
	remaining, _ := RemainingAt(event.TargetAt, now)
	return ItemView{
		Event:       event,
		Remaining:   remaining,
		Display:     FormatRemainingAt(event.TargetAt, now),
		TargetLabel: FormatTarget(event.TargetAt),
	}
}
