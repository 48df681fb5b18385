package tasks

import (
	"context"
	"log/slog"

	"github.com/01001010100011/scolamia.it/app/content"
)

type RefreshCountdownsTask struct {
	Task
	loader *content.Loader
	store  *content.Store
	board  *content.Board
}

func NewRefreshCountdownsTask(loader *content.Loader, store *content.Store, board *content.Board) *RefreshCountdownsTask {
	return &RefreshCountdownsTask{
		Task:   NewTask(TaskTypeRefreshCountdowns),
		loader: loader,
		store:  store,
		board:  board,
	}
}

// Execute never fails: the countdown source chain always ends at the
// embedded dataset.
func (t *RefreshCountdownsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.loader.RefreshCountdowns(ctx, t.store, t.board)

	slog.Info("Task completed",
		"type", "RefreshCountdowns",
		"duration", t.GetDuration(),
		"source", t.store.Countdowns().Source)

	return nil
}
