package usecase

import (
	"context"
	"time"

	"talent-match/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type MatchingNotifier interface {
	DataChanged(employeeID uuid.UUID, reason string)
	MatchingCompleted(projectID uuid.UUID)
}

// Invalidation drops cached matching results and tells websocket listeners after
// a write that can change a score. Both steps are best effort.
type Invalidation struct {
	cache    ResultCache
	notifier MatchingNotifier
	pattern  string
	logger   *zap.Logger
}

func NewInvalidation(cache ResultCache, notifier MatchingNotifier, pattern string, log *zap.Logger) *Invalidation {
	return &Invalidation{cache: cache, notifier: notifier, pattern: pattern, logger: logger.OrNop(log)}
}

func (i *Invalidation) MatchingDataChanged(ctx context.Context, employeeID uuid.UUID, reason string) {
	if i == nil {
		return
	}
	if i.cache != nil && i.pattern != "" {
		if err := i.cache.DeleteByPattern(ctx, i.pattern); err != nil {
			i.logger.Warn("matching cache invalidation failed", zap.String("reason", reason), zap.Error(err))
		}
	}
	if i.notifier != nil {
		i.notifier.DataChanged(employeeID, reason)
	}
}
