package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/01001010100011/scolamia.it/app/content"
)

type RefreshArticlesTask struct {
	Task
	loader *content.Loader
	store  *content.Store
}

func NewRefreshArticlesTask(loader *content.Loader, store *content.Store) *RefreshArticlesTask {
	return &RefreshArticlesTask{
		Task:   NewTask(TaskTypeRefreshArticles),
		loader: loader,
		store:  store,
	}
}

func (t *RefreshArticlesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.loader.RefreshArticles(ctx, t.store); err != nil {
		return fmt.Errorf("failed to refresh articles: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshArticles",
		"duration", t.GetDuration())

	return nil
}
