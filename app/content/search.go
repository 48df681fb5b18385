package content

import (
	"time"

	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/search"
)

// SearchResults groups the matches of one site-wide search by section.
type SearchResults struct {
	Query      string            `json:"query"`
	Articles   []Article         `json:"articles"`
	Agenda     []AgendaEvent     `json:"agenda"`
	Countdowns []countdown.Event `json:"countdowns"`
	Contacts   []Contact         `json:"contacts"`
}

// Search matches a free-text query against every section's precomputed
// blobs. Countdowns are matched live on title and date tokens so a search
// for "8 giugno" finds the event due that day. An empty or whitespace-only
// query matches everything, so the results page opens with the full sets.
func (s *Store) Search(site Site, query string, now time.Time) SearchResults {
	q := search.Normalize(query)
	results := SearchResults{
		Query:      query,
		Articles:   []Article{},
		Agenda:     []AgendaEvent{},
		Countdowns: []countdown.Event{},
		Contacts:   []Contact{},
	}

	s.mu.RLock()
	articles := make([]Article, len(s.articles))
	copy(articles, s.articles)
	articleBlobs := make([]string, len(s.articleBlobs))
	copy(articleBlobs, s.articleBlobs)
	agenda := make([]AgendaEvent, len(s.agenda))
	copy(agenda, s.agenda)
	agendaBlobs := make([]string, len(s.agendaBlobs))
	copy(agendaBlobs, s.agendaBlobs)
	countdowns := make([]countdown.Event, len(s.countdowns.Events))
	copy(countdowns, s.countdowns.Events)
	s.mu.RUnlock()

	for i, a := range articles {
		if i < len(articleBlobs) && search.Matches(articleBlobs[i], q) {
			results.Articles = append(results.Articles, a)
		}
	}
	for i, e := range agenda {
		if i < len(agendaBlobs) && search.Matches(agendaBlobs[i], q) {
			results.Agenda = append(results.Agenda, e)
		}
	}
	for _, e := range countdown.SortByTarget(countdown.OnlyFuture(countdowns, now)) {
		blob := search.Normalize(e.Title + " " + search.DateTokens(e.TargetAt))
		if search.Matches(blob, q) {
			results.Countdowns = append(results.Countdowns, e)
		}
	}
	for _, c := range site.Contacts {
		blob := search.Normalize(c.Label + " " + c.Value)
		if search.Matches(blob, q) {
			results.Contacts = append(results.Contacts, c)
		}
	}
	return results
}
