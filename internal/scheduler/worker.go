package scheduler

import (
	"context"
	"strconv"

	"followup_backend/internal/leads"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ErrorReporter receives task failures after asynq gives up on an attempt.
type ErrorReporter interface {
	Capture(err error, tags map[string]string)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher leads.DigestRefresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, refresher leads.DigestRefresher, reporter ErrorReporter, log *logger.Logger) (*Worker, error) {
	opt, err := redisOptFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		ErrorHandler: taskErrorHandler(reporter),
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		refresher: refresher,
		log:       log,
	}
	w.mux.HandleFunc(TaskFollowUpDigest, w.handleFollowUpDigest)

	return w, nil
}

func taskErrorHandler(reporter ErrorReporter) asynq.ErrorHandler {
	return asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		if reporter == nil {
			return
		}
		tags := map[string]string{"task": task.Type()}
		if retried, ok := asynq.GetRetryCount(ctx); ok {
			tags["retry"] = strconv.Itoa(retried)
		}
		reporter.Capture(err, tags)
	})
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleFollowUpDigest(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpDigestPayload(task)
	if err != nil {
		w.log.TaskEvent(TaskFollowUpDigest, "rejected", err)
		return err
	}

	d, err := w.refresher.RefreshDigest(ctx)
	if err != nil {
		w.log.TaskEvent(TaskFollowUpDigest, "failed", err)
		return err
	}

	w.log.TaskEvent(TaskFollowUpDigest, "completed", nil)
	w.log.Info("follow-up digest refreshed",
		"trigger", payload.Trigger,
		"date", d.Date,
		"due_today", len(d.DueToday),
		"overdue", len(d.Overdue),
	)
	return nil
}
