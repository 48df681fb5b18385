package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/metrics"
)

// CountdownSet is the answer of one walk of the countdown fallback chain:
// the events of exactly one source, tagged with that source. Results from
// different sources are never merged.
type CountdownSet struct {
	Events []countdown.Event `json:"events"`
	Source Source            `json:"source"`
}

// Loader walks the source chain: current remote schema, then the legacy
// remote schema on a structural mismatch, then the embedded static dataset.
type Loader struct {
	src DataSource
}

func NewLoader(src DataSource) *Loader {
	return &Loader{src: src}
}

// CountdownEvents returns the first source that answers. A schema mismatch
// advances to the legacy shape; any other remote failure drops straight to
// the embedded dataset, so the countdown display always has data.
func (l *Loader) CountdownEvents(ctx context.Context) CountdownSet {
	events, err := l.src.QueryCountdowns(ctx, SchemaCurrent)
	if err == nil {
		return l.answered(SourcePrimary, events)
	}

	if IsStructural(err) {
		slog.Warn("Countdown query fell back to legacy schema", "error", err)
		legacy, legacyErr := l.src.QueryCountdowns(ctx, SchemaLegacy)
		if legacyErr == nil {
			return l.answered(SourceLegacy, legacy)
		}
		err = legacyErr
	}

	slog.Warn("Countdown query fell back to static dataset", "error", err)
	return l.answered(SourceStatic, countdown.FallbackEvents())
}

func (l *Loader) answered(source Source, events []countdown.Event) CountdownSet {
	metrics.CountdownSource.WithLabelValues(string(source)).Inc()
	return CountdownSet{Events: events, Source: source}
}

// CountdownEvent resolves one countdown by slug or raw identifier through
// the same chain: current schema, legacy schema, static dataset. A miss in
// every source is ErrNotFound; remote failures degrade to the static lookup
// instead of erroring.
func (l *Loader) CountdownEvent(ctx context.Context, key string) (countdown.Event, Source, error) {
	event, err := l.src.QueryCountdownByKey(ctx, key, SchemaCurrent)
	if err == nil {
		return event, SourcePrimary, nil
	}

	if IsStructural(err) || errors.Is(err, ErrNotFound) {
		legacy, legacyErr := l.src.QueryCountdownByKey(ctx, key, SchemaLegacy)
		if legacyErr == nil {
			return legacy, SourceLegacy, nil
		}
		err = legacyErr
	}

	if !errors.Is(err, ErrNotFound) {
		slog.Warn("Countdown lookup fell back to static dataset", "key", key, "error", err)
	}
	if event, ok := countdown.FindFallback(key); ok {
		return event, SourceStatic, nil
	}
	return countdown.Event{}, SourceStatic, ErrNotFound
}

// RefreshCountdowns walks the chain and installs the answer in the store and
// on the board. It cannot fail: the chain always has the static dataset.
func (l *Loader) RefreshCountdowns(ctx context.Context, store *Store, board *Board) {
	set := l.CountdownEvents(ctx)
	store.SetCountdowns(set)
	if board != nil {
		board.Replace(set)
	}
	slog.Debug("Countdowns refreshed", "source", set.Source, "count", len(set.Events))
}

// RefreshArticles reloads published articles and the featured-article ids.
// A failure is recorded as the section's own error message; a failure of
// the featured ids alone is tolerated (views fall back to the newest
// articles).
func (l *Loader) RefreshArticles(ctx context.Context, store *Store) error {
	articles, err := l.src.QueryPublishedArticles(ctx)
	if err != nil {
		slog.Error("Articles refresh failed", "error", err)
		store.SetArticlesError("Errore caricamento articoli.")
		return err
	}

	featuredIDs, err := l.src.QueryFeaturedArticleIDs(ctx)
	if err != nil {
		slog.Warn("Featured article ids unavailable", "error", err)
		featuredIDs = nil
	}

	store.SetArticles(articles, featuredIDs)
	slog.Debug("Articles refreshed", "count", len(articles), "featured_ids", len(featuredIDs))
	return nil
}

// RefreshAgenda reloads the agenda events.
func (l *Loader) RefreshAgenda(ctx context.Context, store *Store) error {
	events, err := l.src.QueryAgendaEvents(ctx)
	if err != nil {
		slog.Error("Agenda refresh failed", "error", err)
		store.SetAgendaError("Errore caricamento agenda.")
		return err
	}

	store.SetAgenda(events)
	slog.Debug("Agenda refreshed", "count", len(events))
	return nil
}

// RefreshAll loads every section concurrently with all-settled semantics:
// each section lands its own result or error message in the store, and a
// failure in one never prevents the others from rendering.
func (l *Loader) RefreshAll(ctx context.Context, store *Store, board *Board) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		l.RefreshArticles(ctx, store)
	}()
	go func() {
		defer wg.Done()
		l.RefreshAgenda(ctx, store)
	}()
	go func() {
		defer wg.Done()
		l.RefreshCountdowns(ctx, store, board)
	}()
	wg.Wait()
}
