package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/01001010100011/scolamia.it/app/content"
)

type RefreshAgendaTask struct {
	Task
	loader *content.Loader
	store  *content.Store
}

func NewRefreshAgendaTask(loader *content.Loader, store *content.Store) *RefreshAgendaTask {
	return &RefreshAgendaTask{
		Task:   NewTask(TaskTypeRefreshAgenda),
		loader: loader,
		store:  store,
	}
}

func (t *RefreshAgendaTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.loader.RefreshAgenda(ctx, t.store); err != nil {
		return fmt.Errorf("failed to refresh agenda: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshAgenda",
		"duration", t.GetDuration())

	return nil
}
