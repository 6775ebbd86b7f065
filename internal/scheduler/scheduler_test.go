package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"followup_backend/internal/leads/digest"
	"followup_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshDigest(context.Context) (digest.Digest, error) {
	f.calls++
	if f.err != nil {
		return digest.Digest{}, f.err
	}
	return digest.Digest{
		Date:     "2024-03-10",
		DueToday: []uuid.UUID{uuid.New()},
	}, nil
}

func TestFollowUpDigestTaskRoundTrip(t *testing.T) {
	task, err := NewFollowUpDigestTask(FollowUpDigestPayload{Trigger: TriggerCron})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskFollowUpDigest {
		t.Fatalf("unexpected type %q", task.Type())
	}
	payload, err := ParseFollowUpDigestPayload(task)
	if err != nil || payload.Trigger != TriggerCron {
		t.Fatalf("unexpected payload %+v (%v)", payload, err)
	}
}

func TestParseFollowUpDigestPayloadEmpty(t *testing.T) {
	payload, err := ParseFollowUpDigestPayload(asynq.NewTask(TaskFollowUpDigest, nil))
	if err != nil || payload.Trigger != "" {
		t.Fatalf("unexpected payload %+v (%v)", payload, err)
	}
	if _, err := ParseFollowUpDigestPayload(asynq.NewTask(TaskFollowUpDigest, []byte("{"))); err == nil {
		t.Fatal("expected malformed payload to fail")
	}
}

func TestHandleFollowUpDigest(t *testing.T) {
	var buf bytes.Buffer
	refresher := &fakeRefresher{}
	w := &Worker{refresher: refresher, log: logger.NewWithWriter("production", &buf)}

	task, _ := NewFollowUpDigestTask(FollowUpDigestPayload{Trigger: TriggerStartup})
	if err := w.handleFollowUpDigest(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresher.calls)
	}
	if !strings.Contains(buf.String(), `"state":"completed"`) {
		t.Fatalf("expected completion log, got %s", buf.String())
	}

	refresher.err = errors.New("database down")
	if err := w.handleFollowUpDigest(context.Background(), task); err == nil {
		t.Fatal("expected the refresh error to be returned for retry")
	}
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("redis://:pw@localhost:6379/2", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Addr != "localhost:6379" || opt.Password != "pw" || opt.DB != 2 || opt.TLSConfig != nil {
		t.Fatalf("unexpected opt %+v", opt)
	}

	opt, err = redisClientOpt("rediss://localhost:6380", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
}

type recordingReporter struct{ tags []map[string]string }

func (r *recordingReporter) Capture(_ error, tags map[string]string) { r.tags = append(r.tags, tags) }

func TestTaskErrorHandler(t *testing.T) {
	reporter := &recordingReporter{}
	task, _ := NewFollowUpDigestTask(FollowUpDigestPayload{Trigger: TriggerCron})

	taskErrorHandler(reporter).HandleError(context.Background(), task, errors.New("boom"))
	if len(reporter.tags) != 1 || reporter.tags[0]["task"] != TaskFollowUpDigest {
		t.Fatalf("unexpected reports %v", reporter.tags)
	}

	taskErrorHandler(nil).HandleError(context.Background(), task, errors.New("boom"))
}

type schedulerConfig struct{ url string }

func (c schedulerConfig) GetRedisURL() string           { return c.url }
func (c schedulerConfig) GetRedisTLSInsecure() bool     { return false }
func (c schedulerConfig) GetLocation() *time.Location   { return time.UTC }
func (c schedulerConfig) GetAsynqQueueName() string     { return "" }
func (c schedulerConfig) GetAsynqConcurrency() int      { return 0 }
func (c schedulerConfig) GetFollowUpDigestCron() string { return "0 6 * * *" }

func TestRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(schedulerConfig{}); err == nil {
		t.Fatal("expected client to require a redis url")
	}
	if _, err := NewWorker(schedulerConfig{}, &fakeRefresher{}, nil, logger.New("production")); err == nil {
		t.Fatal("expected worker to require a redis url")
	}
	if got := queueName(schedulerConfig{}); got != "default" {
		t.Fatalf("expected default queue, got %q", got)
	}
}
