package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gradinvite/core/constants"
	"gradinvite/core/errors"
	"gradinvite/core/logger"
	"gradinvite/modules/invitee/dto"
	"gradinvite/modules/mailer"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// BulkSendPayload is the task body for queued bulk email dispatch.
type BulkSendPayload struct {
	EventID uuid.UUID `json:"event_id"`
	Kind    string    `json:"kind"`
}

// EnqueueBulk defers a bulk send to the background worker instead of
// running it inside the triggering request.
func (s *InviteeService) EnqueueBulk(ctx context.Context, eventID uuid.UUID, kind mailer.Kind) (*dto.BulkSendQueuedResponse, *errors.AppError) {
	if s.queue == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "background queue is not configured", nil)
	}
	if !kind.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "kind must be invitation or schedule_update", nil)
	}

	payload, err := json.Marshal(BulkSendPayload{
		EventID: eventID,
		Kind:    string(kind),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encode task", err)
	}

	task := asynq.NewTask(constants.TaskTypeBulkSend, payload)
	info, err := s.queue.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		logger.Error("InviteeService:EnqueueBulk:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to enqueue bulk send", err)
	}

	logger.Info("InviteeService:EnqueueBulk:Queued", "task_id", info.ID, "event_id", eventID, "kind", kind)
	return &dto.BulkSendQueuedResponse{
		Queued:  true,
		TaskID:  info.ID,
		EventID: eventID.String(),
		Kind:    string(kind),
	}, nil
}

// HandleBulkSendTask is the asynq handler for queued bulk sends.
func (s *InviteeService) HandleBulkSendTask(ctx context.Context, task *asynq.Task) error {
	var payload BulkSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode bulk send payload: %w", err)
	}

	result, appErr := s.SendBulk(ctx, payload.EventID, mailer.Kind(payload.Kind))
	if appErr != nil {
		// Validation failures (event deleted, no invitees) are terminal;
		// retrying cannot fix them.
		if appErr.Code == errors.ErrInvalidInput || appErr.Code == errors.ErrNotFound {
			logger.Warn("InviteeService:HandleBulkSendTask:Skipped", "event_id", payload.EventID, "reason", appErr.Message)
			return nil
		}
		return appErr
	}

	logger.Info("InviteeService:HandleBulkSendTask:Done",
		"event_id", payload.EventID,
		"kind", payload.Kind,
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	)
	return nil
}
