package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/countdown"
)

type stubSource struct {
	mu     sync.Mutex
	events []countdown.Event
	agenda []content.AgendaEvent
	err    error
	calls  int
}

func (s *stubSource) QueryCountdowns(context.Context, content.Schema) ([]countdown.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.events, s.err
}

func (s *stubSource) QueryCountdownByKey(context.Context, string, content.Schema) (countdown.Event, error) {
	return countdown.Event{}, content.ErrNotFound
}

func (s *stubSource) QueryPublishedArticles(context.Context) ([]content.Article, error) {
	return nil, s.err
}

func (s *stubSource) QueryAgendaEvents(context.Context) ([]content.AgendaEvent, error) {
	return s.agenda, s.err
}

func (s *stubSource) QueryFeaturedArticleIDs(context.Context) ([]string, error) {
	return nil, s.err
}

func newTestScheduler(src content.DataSource, store *content.Store, board *content.Board) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		loader:      content.NewLoader(src),
		store:       store,
		board:       board,
		interval:    time.Hour,
		workerCount: 2,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 10),
	}
}

func TestSchedulerRunsStartupRefresh(t *testing.T) {
	src := &stubSource{
		events: []countdown.Event{{Slug: "x", Title: "X", TargetAt: "2999-01-01T00:00:00Z"}},
		agenda: []content.AgendaEvent{{ID: "g1", Title: "Scrutini", Date: "2999-06-01"}},
	}
	store := content.NewStore()
	board := content.NewBoard(time.Hour, countdown.DefaultPinnedSlug)
	defer board.Stop()

	scheduler := newTestScheduler(src, store, board)
	scheduler.Start()
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if set := store.Countdowns(); len(set.Events) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("startup refresh never populated the store")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if agenda, msg := store.Agenda(); msg != "" || len(agenda) != 1 {
		t.Errorf("agenda should have loaded: %v %q", agenda, msg)
	}
	if snap, _ := board.Snapshot(); snap.Featured == nil {
		t.Error("board should have received the countdown set")
	}
}

func TestSchedulerTaskFailureDoesNotStopWorkers(t *testing.T) {
	src := &stubSource{err: errors.New("boom")}
	store := content.NewStore()

	scheduler := newTestScheduler(src, store, nil)
	scheduler.Start()
	defer scheduler.Stop()

	if err := scheduler.EnqueueTask(NewRefreshArticlesTask(scheduler.loader, store)); err != nil {
		t.Fatalf("unexpected enqueue error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if _, msg := store.Articles(); msg != "" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("failed refresh never recorded a section error")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Workers must still accept tasks after a failure.
	if err := scheduler.EnqueueTask(NewRefreshAgendaTask(scheduler.loader, store)); err != nil {
		t.Errorf("unexpected enqueue error: %v", err)
	}
}

func TestEnqueueTaskQueueFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler := &Scheduler{
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 1),
	}

	task := NewRefreshAgendaTask(content.NewLoader(&stubSource{}), content.NewStore())
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("first enqueue should succeed: %v", err)
	}
	if err := scheduler.EnqueueTask(task); err == nil {
		t.Error("expected an error when the queue is full")
	}
}

func TestTaskIdentity(t *testing.T) {
	task := NewRefreshCountdownsTask(content.NewLoader(&stubSource{}), content.NewStore(), nil)
	if task.GetType() != TaskTypeRefreshCountdowns {
		t.Errorf("unexpected type: %s", task.GetType())
	}
	if task.GetID() == "" {
		t.Error("task id should not be empty")
	}
	if task.GetDuration() != 0 {
		t.Error("duration should be zero before Start")
	}
	task.Start()
	if task.GetDuration() < 0 {
		t.Error("duration should be non-negative after Start")
	}
}
