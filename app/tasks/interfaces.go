package tasks

import "context"

// NewsRefresher re-fetches and caches the article snapshot for a language.
// Implemented by news.Service.
type NewsRefresher interface {
	Refresh(ctx context.Context, language string) error
}

type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
