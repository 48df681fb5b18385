package api

import (
	"context"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
	"github.com/01001010100011/scolamia.it/app/dataservice"
	"github.com/01001010100011/scolamia.it/app/tasks"
)

// AdminService is the mutation surface of the data service, consumed by the
// authenticated admin endpoints.
type AdminService interface {
	InsertCountdown(ctx context.Context, event countdown.Event) (countdown.Event, error)
	UpdateCountdown(ctx context.Context, id string, event countdown.Event) (countdown.Event, error)
	DeleteCountdown(ctx context.Context, id string) error
	InsertArticle(ctx context.Context, article content.Article) (content.Article, error)
	UpdateArticle(ctx context.Context, id string, article content.Article) (content.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	InsertAgendaEvent(ctx context.Context, event content.AgendaEvent) (content.AgendaEvent, error)
	UpdateAgendaEvent(ctx context.Context, id string, event content.AgendaEvent) (content.AgendaEvent, error)
	DeleteAgendaEvent(ctx context.Context, id string) error
	SetFeaturedArticleIDs(ctx context.Context, ids []string) error
}

var _ AdminService = (*dataservice.Client)(nil)

type Handler struct {
	store      *content.Store
	board      *content.Board
	loader     *content.Loader
	site       content.Site
	pinnedSlug string
	admin      AdminService
	scheduler  tasks.TaskSchedulerInterface
}
