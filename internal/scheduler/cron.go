package scheduler

import (
	"time"

	"followup_backend/platform/config"
	"followup_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Cron enqueues the daily digest refresh on the configured schedule.
type Cron struct {
	scheduler *asynq.Scheduler
	spec      string
	queue     string
	log       *logger.Logger
}

func NewCron(cfg config.SchedulerConfig, log *logger.Logger) (*Cron, error) {
	opt, err := redisOptFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	location := cfg.GetLocation()
	if location == nil {
		location = time.UTC
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: location,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.TaskEvent(TaskFollowUpDigest, "enqueue_failed", err)
				return
			}
			log.TaskEvent(info.Type, "enqueued", nil)
		},
	})

	return &Cron{
		scheduler: scheduler,
		spec:      cfg.GetFollowUpDigestCron(),
		queue:     queueName(cfg),
		log:       log,
	}, nil
}

// Start registers the digest entry and begins ticking in the background.
func (c *Cron) Start() error {
	task, err := NewFollowUpDigestTask(FollowUpDigestPayload{Trigger: TriggerCron})
	if err != nil {
		return err
	}

	entryID, err := c.scheduler.Register(c.spec, task, asynq.Queue(c.queue))
	if err != nil {
		return err
	}
	c.log.Info("registered follow-up digest schedule", "cron", c.spec, "entry", entryID)

	return c.scheduler.Start()
}

func (c *Cron) Shutdown() {
	if c == nil || c.scheduler == nil {
		return
	}
	c.scheduler.Shutdown()
}
