package jobs

import (
	"context"
	"time"

	"folio.backend/pkg/logger"
	"go.uber.org/zap"
)

// ExpiredSessionDeleter removes sessions that expired before the cutoff
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionSweeper periodically deletes expired session rows. Expired
// sessions are already rejected at validation time; the sweeper only
// keeps the table from growing without bound.
type SessionSweeper struct {
	repo     ExpiredSessionDeleter
	interval time.Duration
	stop     chan struct{}
}

func NewSessionSweeper(repo ExpiredSessionDeleter, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SessionSweeper) Start(ctx context.Context) {
	logger.Info(ctx, "session sweeper started", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "session sweeper stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "session sweeper stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *SessionSweeper) Stop() {
	close(j.stop)
}

func (j *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.Error(ctx, "session sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info(ctx, "expired sessions deleted", zap.Int64("count", deleted))
	}
}
