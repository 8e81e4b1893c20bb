package presence

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reporter periodically logs how many users are online.
type Reporter struct {
	logger  *zap.SugaredLogger
	tracker Tracker
	cron    *cron.Cron
}

func NewReporter(logger *zap.SugaredLogger, tracker Tracker, schedule string) (*Reporter, error) {
	r := &Reporter{
		logger:  logger,
		tracker: tracker,
		cron:    cron.New(),
	}

	if _, err := r.cron.AddFunc(schedule, r.report); err != nil {
		return nil, fmt.Errorf("invalid presence report schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Reporter) Start(ctx context.Context, wg *sync.WaitGroup) {
	r.cron.Start()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		<-r.cron.Stop().Done()
	}()
}

func (r *Reporter) report() {
	users, err := r.tracker.OnlineUsers(context.Background())
	if err != nil {
		r.logger.Errorw("failed to read online users", "error", err)
		return
	}
	r.logger.Infow("presence report", "onlineUsers", len(users))
}
