package notification

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// readRetention is how long read notifications are kept before the nightly
// purge removes them.
const readRetention = 30 * 24 * time.Hour

// Janitor runs scheduled notification maintenance.
type Janitor struct {
	service   NotificationService
	log       *zap.Logger
	scheduler *cron.Cron
}

func NewJanitor(service NotificationService, log *zap.Logger) *Janitor {
	return &Janitor{
		service: service,
		log:     log,
	}
}

// Start registers the purge job and launches the scheduler.
func (j *Janitor) Start() error {
	j.scheduler = cron.New()

	_, err := j.scheduler.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := j.service.PurgeRead(ctx, readRetention); err != nil {
			j.log.Error("notification purge failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.Start()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (j *Janitor) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	<-j.scheduler.Stop().Done()
	return nil
}
