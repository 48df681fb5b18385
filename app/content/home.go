package content

import (
	"time"

	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/search"
)

const (
	homeArticleCount = 3
	homeAgendaCount  = 3
)

// HomeView is everything the home page needs in one response. Sections are
// independent: a section that failed to load carries its own error message
// while the others render normally.
type HomeView struct {
	FeaturedArticles    []Article          `json:"featured_articles"`
	PresentationArticle *Article           `json:"presentation_article,omitempty"`
	ArticlesError       string             `json:"articles_error,omitempty"`
	Agenda              []AgendaEvent      `json:"agenda"`
	AgendaError         string             `json:"agenda_error,omitempty"`
	Countdown           countdown.Snapshot `json:"countdown"`
	CountdownSource     Source             `json:"countdown_source"`
	Contacts            []Contact          `json:"contacts"`
}

// ComposeHome assembles the home view from the store and the board.
func ComposeHome(store *Store, board *Board, site Site, now time.Time) HomeView {
	articles, articlesErr := store.Articles()
	agenda, agendaErr := store.Agenda()
	snap, source := board.Snapshot()

	view := HomeView{
		FeaturedArticles: resolveFeatured(articles, store.FeaturedArticleIDs()),
		ArticlesError:    articlesErr,
		Agenda:           UpcomingAgenda(agenda, now.In(countdown.DisplayZone()).Format("2006-01-02"), homeAgendaCount),
		AgendaError:      agendaErr,
		Countdown:        snap,
		CountdownSource:  source,
		Contacts:         site.Contacts,
	}
	if a, ok := findPresentationArticle(articles, site.PresentationArticleID); ok {
		view.PresentationArticle = &a
	}
	return view
}

// resolveFeatured picks the curated featured articles when the curated id
// list is available; otherwise the newest published ones stand in.
func resolveFeatured(articles []Article, featuredIDs []string) []Article {
	out := make([]Article, 0, homeArticleCount)
	for _, id := range featuredIDs {
		for _, a := range articles {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
		if len(out) == homeArticleCount {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, a := range articles {
		out = append(out, a)
		if len(out) == homeArticleCount {
			break
		}
	}
	return out
}

// findPresentationArticle locates the pinned site-presentation article by
// its configured id, falling back to a title match.
func findPresentationArticle(articles []Article, id string) (Article, bool) {
	for _, a := range articles {
		if id != "" && a.ID == id {
			return a, true
		}
	}
	for _, a := range articles {
		if search.Normalize(a.Title) == "presentazione sito" {
			return a, true
		}
	}
	return Article{}, false
}
