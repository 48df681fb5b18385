package dataservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
)

func countdownFixture() countdown.Event {
	return countdown.Event{Slug: "nuovo", Title: "Nuovo", TargetAt: "2999-01-01T00:00:00Z", Active: true}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key")
}

func TestQueryCountdownsCurrentSchema(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/countdown_events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "test-key" {
			t.Errorf("missing apikey header, got %q", got)
		}
		q := r.URL.Query()
		if q.Get("active") != "eq.true" {
			t.Errorf("missing active filter: %v", q)
		}
		if q.Get("order") != "is_featured.desc,target_at.asc" {
			t.Errorf("unexpected order: %q", q.Get("order"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"u1","slug":"termine-lezioni","title":"Termine","target_at":"2999-06-08T00:00:00Z","is_featured":true,"active":true}]`))
	})

	events, err := client.QueryCountdowns(context.Background(), content.SchemaCurrent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Slug != "termine-lezioni" || !events[0].Featured {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestQueryCountdownsLegacyExcludesFineSlugs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/school_events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("slug"); got != "not.like.fine-%" {
			t.Errorf("legacy query must exclude fine- slugs, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"slug":"old","title":"Old","target_at":"2999-01-01T00:00:00Z","featured":false,"active":true}]`))
	})

	events, err := client.QueryCountdowns(context.Background(), content.SchemaLegacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Slug != "old" {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestStructuralErrorClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"42P01","message":"relation \"public.countdown_events\" does not exist"}`))
	})

	_, err := client.QueryCountdowns(context.Background(), content.SchemaCurrent)
	if !content.IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestMissingColumnIsStructural(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"42703","message":"column \"is_featured\" does not exist"}`))
	})

	_, err := client.QueryCountdowns(context.Background(), content.SchemaCurrent)
	if !content.IsStructural(err) {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.QueryCountdowns(context.Background(), content.SchemaCurrent)
	if err == nil {
		t.Fatal("expected an error")
	}
	if content.IsStructural(err) || errors.Is(err, content.ErrNotFound) {
		t.Errorf("a 500 should be transient, got %v", err)
	}
}

func TestQueryCountdownByKeySlugThenID(t *testing.T) {
	const id = "d2719f3a-8f0e-4a6e-9c5e-0b1f1a2b3c4d"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch {
		case q.Get("slug") != "":
			w.Write([]byte(`[]`))
		case q.Get("id") == "eq."+id:
			w.Write([]byte(`[{"id":"` + id + `","slug":"","title":"By id","target_at":"2999-01-01T00:00:00Z","is_featured":false,"active":true}]`))
		default:
			t.Errorf("unexpected query: %v", q)
			w.Write([]byte(`[]`))
		}
	})

	event, err := client.QueryCountdownByKey(context.Background(), id, content.SchemaCurrent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Title != "By id" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Slug != id {
		t.Errorf("slugless rows should keep the id as key, got %q", event.Slug)
	}
}

func TestQueryCountdownByKeySkipsIDLookupForNonUUID(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := client.QueryCountdownByKey(context.Background(), "not-a-uuid", content.SchemaCurrent)
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if requests != 1 {
		t.Errorf("non-uuid keys must not trigger an id lookup, got %d requests", requests)
	}
}

func TestQueryFeaturedArticleIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/site_settings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"featured_article_ids":["a1","a2"]}]`))
	})

	ids, err := client.QueryFeaturedArticleIDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a1" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestUpdateCountdownNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("missing Prefer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := client.UpdateCountdown(context.Background(), "missing", countdownFixture())
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertCountdown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"new","slug":"nuovo","title":"Nuovo","target_at":"2999-01-01T00:00:00Z","is_featured":false,"active":true}]`))
	})

	created, err := client.InsertCountdown(context.Background(), countdownFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "new" || created.Slug != "nuovo" {
		t.Errorf("unexpected created event: %+v", created)
	}
}
