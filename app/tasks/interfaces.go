package tasks

// TaskSchedulerInterface defines the interface for background refresh
// scheduling. Used by the main application and by the admin API, which
// enqueues an immediate refresh after a mutation.
// Example usage:
//
//	scheduler := NewScheduler(loader, store, board)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshCountdownsTask(loader, store, board))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
