package service

import (
	"context"

	"go.uber.org/zap"
)

// ViewInvalidator сбрасывает закэшированные представления после записи прогресса.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, userID int64, paths ...string)
}

// LogInvalidator только логирует пути: серверного кэша представлений нет,
// клиенты перечитывают данные сами.
type LogInvalidator struct {
	logger *zap.SugaredLogger
}

func NewLogInvalidator(logger *zap.SugaredLogger) *LogInvalidator {
	return &LogInvalidator{logger: logger}
}

func (l *LogInvalidator) Invalidate(_ context.Context, userID int64, paths ...string) {
	l.logger.Debugw("views invalidated", "user_id", userID, "paths", paths)
}

// subjectViews — представления, зависящие от прогресса по предмету.
func subjectViews(subjectID string) []string {
	return []string{"/subjects/" + subjectID, "/dashboard", "/analytics"}
}
