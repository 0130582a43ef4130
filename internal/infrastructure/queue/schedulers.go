package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"gameshelf-backend/internal/shared"
	"gameshelf-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// RegisterCatalogJobs wires the recurring maintenance tasks.
func (s *Scheduler) RegisterCatalogJobs() error {
	return s.registerBackfillSlugsJob()
}

// Nightly sweep that re-derives slugs for every translation, repairing
// rows written before slug derivation or renamed out of band.
func (s *Scheduler) registerBackfillSlugsJob() error {
	payload, err := json.Marshal(shared.BackfillSlugsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeBackfillSlugs, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register BackfillSlugs job", err)
		return err
	}

	logger.Info("✓ Registered BackfillSlugs: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
