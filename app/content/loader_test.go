package content

import (
	"context"
	"errors"
	"testing"

	"github.com/01001010100011/scolamia.it/app/countdown"
)

type fakeSource struct {
	currentEvents []countdown.Event
	currentErr    error
	legacyEvents  []countdown.Event
	legacyErr     error

	byKey    map[string]countdown.Event
	byKeyErr error

	articles    []Article
	articlesErr error
	agenda      []AgendaEvent
	agendaErr   error
	featured    []string
	featuredErr error
}

func (f *fakeSource) QueryCountdowns(_ context.Context, schema Schema) ([]countdown.Event, error) {
	if schema == SchemaLegacy {
		return f.legacyEvents, f.legacyErr
	}
	return f.currentEvents, f.currentErr
}

func (f *fakeSource) QueryCountdownByKey(_ context.Context, key string, schema Schema) (countdown.Event, error) {
	if f.byKeyErr != nil {
		return countdown.Event{}, f.byKeyErr
	}
	if schema == SchemaCurrent {
		return countdown.Event{}, ErrNotFound
	}
	if e, ok := f.byKey[key]; ok {
		return e, nil
	}
	return countdown.Event{}, ErrNotFound
}

func (f *fakeSource) QueryPublishedArticles(context.Context) ([]Article, error) {
	return f.articles, f.articlesErr
}

func (f *fakeSource) QueryAgendaEvents(context.Context) ([]AgendaEvent, error) {
	return f.agenda, f.agendaErr
}

func (f *fakeSource) QueryFeaturedArticleIDs(context.Context) ([]string, error) {
	return f.featured, f.featuredErr
}

func TestCountdownEventsPrimary(t *testing.T) {
	src := &fakeSource{currentEvents: []countdown.Event{{Slug: "x", Title: "X", TargetAt: "2999-01-01T00:00:00Z"}}}
	set := NewLoader(src).CountdownEvents(context.Background())

	if set.Source != SourcePrimary {
		t.Errorf("expected primary source, got %s", set.Source)
	}
	if len(set.Events) != 1 || set.Events[0].Slug != "x" {
		t.Errorf("unexpected events: %+v", set.Events)
	}
}

func TestCountdownEventsLegacyOnSchemaMismatch(t *testing.T) {
	src := &fakeSource{
		currentErr:   &StructuralError{Code: "42P01", Message: "relation does not exist"},
		legacyEvents: []countdown.Event{{Slug: "old", Title: "Old", TargetAt: "2999-01-01T00:00:00Z"}},
	}
	set := NewLoader(src).CountdownEvents(context.Background())

	if set.Source != SourceLegacy {
		t.Errorf("expected legacy source, got %s", set.Source)
	}
	if len(set.Events) != 1 || set.Events[0].Slug != "old" {
		t.Errorf("unexpected events: %+v", set.Events)
	}
}

func TestCountdownEventsStaticOnTransientFailure(t *testing.T) {
	src := &fakeSource{currentErr: errors.New("connection refused")}
	set := NewLoader(src).CountdownEvents(context.Background())

	if set.Source != SourceStatic {
		t.Errorf("expected static source, got %s", set.Source)
	}
	if len(set.Events) == 0 {
		t.Error("static dataset should never be empty")
	}
}

func TestCountdownEventsStaticWhenBothSchemasFail(t *testing.T) {
	src := &fakeSource{
		currentErr: &StructuralError{Code: "42703", Message: "column does not exist"},
		legacyErr:  errors.New("timeout"),
	}
	set := NewLoader(src).CountdownEvents(context.Background())

	if set.Source != SourceStatic {
		t.Errorf("expected static source, got %s", set.Source)
	}
}

func TestCountdownEventByKeyFallsThroughToLegacy(t *testing.T) {
	src := &fakeSource{byKey: map[string]countdown.Event{
		"vecchio": {Slug: "vecchio", Title: "Vecchio", TargetAt: "2999-01-01T00:00:00Z"},
	}}
	event, source, err := NewLoader(src).CountdownEvent(context.Background(), "vecchio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != SourceLegacy {
		t.Errorf("expected legacy source, got %s", source)
	}
	if event.Title != "Vecchio" {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestCountdownEventByKeyStaticLookup(t *testing.T) {
	src := &fakeSource{byKeyErr: errors.New("connection refused")}
	event, source, err := NewLoader(src).CountdownEvent(context.Background(), countdown.DefaultPinnedSlug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != SourceStatic {
		t.Errorf("expected static source, got %s", source)
	}
	if event.Slug != countdown.DefaultPinnedSlug {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestCountdownEventByKeyNotFound(t *testing.T) {
	src := &fakeSource{}
	_, _, err := NewLoader(src).CountdownEvent(context.Background(), "no-such-countdown")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRefreshAllIsolatesSectionFailures(t *testing.T) {
	src := &fakeSource{
		articlesErr:   errors.New("boom"),
		agenda:        []AgendaEvent{{ID: "1", Title: "Collegio docenti", Date: "2999-01-15"}},
		currentEvents: []countdown.Event{{Slug: "x", Title: "X", TargetAt: "2999-01-01T00:00:00Z"}},
	}
	store := NewStore()
	NewLoader(src).RefreshAll(context.Background(), store, nil)

	if _, msg := store.Articles(); msg != "Errore caricamento articoli." {
		t.Errorf("unexpected articles error message: %q", msg)
	}
	if agenda, msg := store.Agenda(); msg != "" || len(agenda) != 1 {
		t.Errorf("agenda section should have loaded: %v %q", agenda, msg)
	}
	if set := store.Countdowns(); set.Source != SourcePrimary || len(set.Events) != 1 {
		t.Errorf("countdown section should have loaded: %+v", set)
	}
}

func TestRefreshArticlesToleratesFeaturedIDFailure(t *testing.T) {
	src := &fakeSource{
		articles:    []Article{{ID: "a1", Title: "Benvenuti", Published: true}},
		featuredErr: errors.New("boom"),
	}
	store := NewStore()
	if err := NewLoader(src).RefreshArticles(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if articles, msg := store.Articles(); msg != "" || len(articles) != 1 {
		t.Errorf("articles should have loaded without featured ids: %v %q", articles, msg)
	}
	if ids := store.FeaturedArticleIDs(); len(ids) != 0 {
		t.Errorf("expected no featured ids, got %v", ids)
	}
}
