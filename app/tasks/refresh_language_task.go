package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

var _ TaskInterface = (*RefreshLanguageTask)(nil)

// RefreshLanguageTask re-fetches the general article snapshot for one
// language so interactive requests hit a warm cache.
type RefreshLanguageTask struct {
	Task
	refresher NewsRefresher
}

func NewRefreshLanguageTask(language string, refresher NewsRefresher) *RefreshLanguageTask {
	return &RefreshLanguageTask{
		Task:      NewTask(TaskTypeRefreshLanguage, language),
		refresher: refresher,
	}
}

func (t *RefreshLanguageTask) Execute(ctx context.Context) error {
	if err := t.refresher.Refresh(ctx, t.Language); err != nil {
		return fmt.Errorf("failed to refresh language %s: %w", t.Language, err)
	}

	slog.Debug("Language snapshot refreshed", "language", t.Language, "duration", t.GetDuration().String())
	return nil
}
