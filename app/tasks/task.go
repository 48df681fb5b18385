package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

type TaskType string

const (
	TaskTypeRefreshCountdowns TaskType = "refresh_countdowns"
	TaskTypeRefreshArticles   TaskType = "refresh_articles"
	TaskTypeRefreshAgenda     TaskType = "refresh_agenda"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID        string
	Type      TaskType
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:   uniqueID,
		Type: taskType,
	}
}
