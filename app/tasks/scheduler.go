package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/01001010100011/scolamia.it/app/cfg"
	"github.com/01001010100011/scolamia.it/app/content"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler runs the section refresh tasks on a fixed interval with a small
// worker pool. A failed refresh is logged and left for the next interval;
// the fallback chain already degraded the section, so there is nothing to
// retry.
type Scheduler struct {
	loader      *content.Loader
	store       *content.Store
	board       *content.Board
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(loader *content.Loader, store *content.Store, board *content.Board) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		loader:      loader,
		store:       store,
		board:       board,
		interval:    time.Duration(cfg.RefreshInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueRefreshTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueRefreshTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueRefreshTasks() {
	refreshTasks := []TaskInterface{
		NewRefreshArticlesTask(s.loader, s.store),
		NewRefreshAgendaTask(s.loader, s.store),
		NewRefreshCountdownsTask(s.loader, s.store, s.board),
	}
	for _, task := range refreshTasks {
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue refresh task", "type", string(task.GetType()), "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "error", err)
	}
}
