package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAssistantReply = "assistant.generate_reply"

const TaskDirectoryRefresh = "discovery.refresh_counts"

type AssistantReplyPayload struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	BusinessID     string `json:"businessId"`
}

func NewAssistantReplyTask(payload AssistantReplyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAssistantReply, data), nil
}

func ParseAssistantReplyPayload(task *asynq.Task) (AssistantReplyPayload, error) {
	var payload AssistantReplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AssistantReplyPayload{}, err
	}
	return payload, nil
}

func NewDirectoryRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskDirectoryRefresh, nil)
}
