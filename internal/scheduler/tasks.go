package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFollowUpDigest = "followups.digest"

const (
	TriggerCron    = "cron"
	TriggerStartup = "startup"
)

// FollowUpDigestPayload records why a digest refresh was enqueued.
type FollowUpDigestPayload struct {
	Trigger string `json:"trigger"`
}

func NewFollowUpDigestTask(payload FollowUpDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowUpDigest, data), nil
}

func ParseFollowUpDigestPayload(task *asynq.Task) (FollowUpDigestPayload, error) {
	var payload FollowUpDigestPayload
	if len(task.Payload()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpDigestPayload{}, err
	}
	return payload, nil
}
