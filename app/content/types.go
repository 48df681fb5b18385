// Package content orchestrates the site's data: it pulls articles, agenda
// events and countdowns from the hosted data service through a fallback
// chain, keeps the latest snapshot in memory, and composes the public views.
package content

import (
	"context"

	"github.com/01001010100011/scolamia.it/app/countdown"
)

// Schema selects which generation of the remote schema a query targets.
type Schema string

const (
	SchemaCurrent Schema = "current"
	SchemaLegacy  Schema = "legacy"
)

// Source tags which step of the fallback chain answered.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceLegacy  Source = "legacy"
	SourceStatic  Source = "static"
)

// Article is a published piece. Content may carry markup from the admin
// editor; date fields stay raw strings as returned by the data service.
type Article struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Excerpt     string       `json:"excerpt"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"image_url,omitempty"`
	Published   bool         `json:"published"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a file linked to an article, stored by the data service.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AgendaEvent is a dated agenda entry. Date tolerates a few spellings, see
// NormalizeAgendaDate.
type AgendaEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// DataSource is the remote read surface the content layer consumes.
// Implemented by dataservice.Client.
type DataSource interface {
	QueryCountdowns(ctx context.Context, schema Schema) ([]countdown.Event, error)
	QueryCountdownByKey(ctx context.Context, key string, schema Schema) (countdown.Event, error)
	QueryPublishedArticles(ctx context.Context) ([]Article, error)
	QueryAgendaEvents(ctx context.Context) ([]AgendaEvent, error)
	QueryFeaturedArticleIDs(ctx context.Context) ([]string, error)
}
