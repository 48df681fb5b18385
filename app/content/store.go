package content

import (
	"regexp"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"

	"github.com/01001010100011/scolamia.it/app/search"
)

// Store is the in-memory snapshot the HTTP layer reads from. Each section
// (articles, agenda, countdowns) is replaced wholesale by its refresh task,
// together with a normalized search blob per record so request-time search
// is just string matching.
type Store struct {
	mu sync.RWMutex

	articles     []Article
	articleBlobs []string
	articlesErr  string
	featuredIDs  []string

	agenda      []AgendaEvent
	agendaBlobs []string
	agendaErr   string

	countdowns CountdownSet
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetArticles(articles []Article, featuredIDs []string) {
	blobs := make([]string, len(articles))
	for i, a := range articles {
		blobs[i] = articleBlob(a)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
	s.articleBlobs = blobs
	s.articlesErr = ""
	s.featuredIDs = featuredIDs
}

func (s *Store) SetArticlesError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articlesErr = msg
}

func (s *Store) SetAgenda(events []AgendaEvent) {
	sorted := SortAgendaByDate(events)
	blobs := make([]string, len(sorted))
	for i, e := range sorted {
		blobs[i] = agendaBlob(e)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agenda = sorted
	s.agendaBlobs = blobs
	s.agendaErr = ""
}

func (s *Store) SetAgendaError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agendaErr = msg
}

func (s *Store) SetCountdowns(set CountdownSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdowns = set
}

// Articles returns the published articles and the section error message,
// if the last refresh failed. The slice is a copy.
func (s *Store) Articles() ([]Article, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	return out, s.articlesErr
}

// ArticleByID looks up one published article.
func (s *Store) ArticleByID(id string) (Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

func (s *Store) FeaturedArticleIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.featuredIDs))
	copy(out, s.featuredIDs)
	return out
}

// Agenda returns the agenda events, soonest first, and the section error
// message if the last refresh failed.
func (s *Store) Agenda() ([]AgendaEvent, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AgendaEvent, len(s.agenda))
	copy(out, s.agenda)
	return out, s.agendaErr
}

func (s *Store) Countdowns() CountdownSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := CountdownSet{Source: s.countdowns.Source}
	out.Events = append(out.Events, s.countdowns.Events...)
	return out
}

// articleBlob is the normalized haystack a search query runs against: text
// content, title, category, attachment names, and the date tokens of the
// article's timestamps.
func articleBlob(a Article) string {
	parts := []string{a.Title, a.Category, a.Excerpt, htmlToText(a.Content)}
	for _, att := range a.Attachments {
		parts = append(parts, att.Name)
	}
	if t := search.DateTokens(a.CreatedAt); t != "" {
		parts = append(parts, t)
	}
	if t := search.DateTokens(a.UpdatedAt); t != "" {
		parts = append(parts, t)
	}
	return search.Normalize(strings.Join(parts, " "))
}

func agendaBlob(e AgendaEvent) string {
	date := NormalizeAgendaDate(e.Date)
	parts := []string{e.Title, e.Category, e.Description, date}
	if t := search.DateTokens(date); t != "" {
		parts = append(parts, t)
	}
	return search.Normalize(strings.Join(parts, " "))
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// htmlToText extracts the readable text of an article body. Short fragments
// the extractor rejects get a plain tag strip instead.
func htmlToText(content string) string {
	if content == "" {
		return ""
	}
	doc := "<html><body>" + content + "</body></html>"
	article, err := readability.FromReader(strings.NewReader(doc), nil)
	if err == nil && article.TextContent != "" {
		return article.TextContent
	}
	return tagRe.ReplaceAllString(content, " ")
}
