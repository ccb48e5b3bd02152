package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"gradinvite/core/cache"
	"gradinvite/core/errors"
	"gradinvite/core/logger"
	"gradinvite/core/utils"
	eventEntity "gradinvite/modules/event/entity"
	eventRepo "gradinvite/modules/event/repository"
	"gradinvite/modules/invitee/dto"
	"gradinvite/modules/invitee/entity"
	"gradinvite/modules/invitee/repository"
	"gradinvite/modules/mailer"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type InviteeService struct {
	repo      repository.InviteeRepositoryInterface
	eventRepo eventRepo.EventRepositoryInterface
	mailer    *mailer.Service
	cache     *cache.Cache
	queue     *asynq.Client
	baseURL   string
}

func NewInviteeService(
	repo repository.InviteeRepositoryInterface,
	eventRepository eventRepo.EventRepositoryInterface,
	mailService *mailer.Service,
	c *cache.Cache,
	queue *asynq.Client,
	baseURL string,
) *InviteeService {
	return &InviteeService{
		repo:      repo,
		eventRepo: eventRepository,
		mailer:    mailService,
		cache:     c,
		queue:     queue,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Create registers an invitee with a fresh access token and optionally
// sends the invitation email right away. A failed send does not fail the
// creation; it only leaves invited_at unset.
func (s *InviteeService) Create(ctx context.Context, req *dto.CreateInviteeRequest) (*entity.Invitee, *errors.AppError) {
	if req.EventID == uuid.Nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event_id, name and email are required", nil)
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}

	invitee := &entity.Invitee{
		EventID: req.EventID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
	}

	// One retry on token collision; with 256-bit tokens a second one in a
	// row would mean a broken entropy source.
	for attempt := 0; attempt < 2; attempt++ {
		token, err := utils.GenerateInviteToken()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
		}
		invitee.UniqueToken = token

		err = s.repo.Create(ctx, invitee)
		if err == nil {
			break
		}
		if stdErrors.Is(err, repository.ErrTokenConflict) && attempt == 0 {
			logger.Warn("InviteeService:Create:TokenConflict:Retrying")
			continue
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create invitee", err)
	}

	if req.SendEmail {
		msg := s.buildMessage(event, invitee)
		if err := s.mailer.SendOne(ctx, mailer.KindInvitation, msg); err != nil {
			logger.Error("InviteeService:Create:SendInvitation:Error:", err)
		} else {
			now := time.Now()
			if err := s.repo.MarkInvited(ctx, invitee.ID, now); err != nil {
				logger.Error("InviteeService:Create:MarkInvited:Error:", "invitee_id", invitee.ID, "error", err)
			} else {
				invitee.InvitedAt = &now
			}
		}
	}

	return invitee, nil
}

func (s *InviteeService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitee, *errors.AppError) {
	invitees, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list invitees", err)
	}
	return invitees, nil
}

func (s *InviteeService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	invitee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "invitee not found", nil)
		}
		return errors.NewAppError(errors.ErrInternalServer, "failed to get invitee", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete invitee", err)
	}
	s.cache.InvalidateInviteDetails(ctx, invitee.UniqueToken)
	return nil
}

// Search is the guest-facing name lookup: case-insensitive exact match
// within one event. "Not found" is a normal outcome, not an error.
func (s *InviteeService) Search(ctx context.Context, name string, eventID uuid.UUID) (*dto.SearchResponse, *errors.AppError) {
	name = strings.TrimSpace(name)
	if name == "" || eventID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and event_id are required", nil)
	}

	row, err := s.repo.SearchByName(ctx, name, eventID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return &dto.SearchResponse{Found: false}, nil
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "search failed", err)
	}

	return &dto.SearchResponse{
		Found: true,
		Invitee: &dto.SearchInvitee{
			Name:       row.Name,
			Email:      row.Email,
			Token:      row.Token,
			HasRsvped:  row.RsvpID != nil,
			RsvpStatus: row.RsvpStatus,
		},
	}, nil
}

// InviteDetails resolves an access token into the personalized invitation
// view, served through the redis cache when enabled.
func (s *InviteeService) InviteDetails(ctx context.Context, token string) (*entity.InviteDetails, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "token is required", nil)
	}

	var cached entity.InviteDetails
	if s.cache.GetInviteDetails(ctx, token, &cached) {
		return &cached, nil
	}

	details, err := s.repo.GetInviteDetails(ctx, token)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load invitation", err)
	}

	s.cache.SetInviteDetails(ctx, token, details)
	return details, nil
}

// SendBulk dispatches one message per invitee of the event, in parallel,
// and reports aggregate counts. Invitation sends stamp invited_at on the
// recipients that succeeded.
func (s *InviteeService) SendBulk(ctx context.Context, eventID uuid.UUID, kind mailer.Kind) (*mailer.BulkResult, *errors.AppError) {
	if !kind.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "kind must be invitation or schedule_update", nil)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}

	invitees, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list invitees", err)
	}
	if len(invitees) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no invitees found for event", nil)
	}

	messages := make([]mailer.Message, len(invitees))
	for i := range invitees {
		messages[i] = s.buildMessage(event, &invitees[i])
	}

	result := s.mailer.SendMany(ctx, kind, messages)

	if kind == mailer.KindInvitation {
		now := time.Now()
		for i, r := range result.Results {
			if !r.Success {
				continue
			}
			if err := s.repo.MarkInvited(ctx, invitees[i].ID, now); err != nil {
				logger.Error("InviteeService:SendBulk:MarkInvited:Error:", "invitee_id", invitees[i].ID, "error", err)
			}
		}
	}

	logger.Info("InviteeService:SendBulk:Done",
		"event_id", eventID,
		"kind", kind,
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	)
	return &result, nil
}

func (s *InviteeService) buildMessage(event *eventEntity.Event, invitee *entity.Invitee) mailer.Message {
	description := ""
	if event.Description != nil {
		description = *event.Description
	}
	return mailer.Message{
		To:               invitee.Email,
		InviteeName:      invitee.Name,
		EventName:        event.Name,
		EventDate:        mailer.FormatEventDate(event.Date),
		EventTime:        event.Time,
		EventLocation:    event.Location,
		EventDescription: description,
		InviteLink:       fmt.Sprintf("%s/invite/%s", s.baseURL, invitee.UniqueToken),
	}
}
