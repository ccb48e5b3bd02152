package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"io"
	"strings"

	"gradinvite/core/constants"
	"gradinvite/core/errors"
	"gradinvite/core/logger"
	"gradinvite/core/storage"
	"gradinvite/modules/event/dto"
	"gradinvite/modules/event/entity"
	"gradinvite/modules/event/repository"

	"github.com/google/uuid"
)

type EventService struct {
	repo    repository.EventRepositoryInterface
	storage storage.ObjectStorage
}

func NewEventService(repo repository.EventRepositoryInterface, store storage.ObjectStorage) *EventService {
	return &EventService{
		repo:    repo,
		storage: store,
	}
}

func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.Time) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name, date, time and location are required", nil)
	}

	event := &entity.Event{
		Name:           req.Name,
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		Description:    req.Description,
		PrimaryColor:   constants.DefaultPrimaryColor,
		SecondaryColor: constants.DefaultSecondaryColor,
	}
	if req.PrimaryColor != nil && *req.PrimaryColor != "" {
		event.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil && *req.SecondaryColor != "" {
		event.SecondaryColor = *req.SecondaryColor
	}

	if err := s.repo.Create(ctx, event); err != nil {
		logger.Error("EventService:Create:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}
	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	return event, nil
}

func (s *EventService) GetFirst(ctx context.Context) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetFirst(ctx)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "no event configured", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]entity.Event, *errors.AppError) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	return events, nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*entity.Event, *errors.AppError) {
	patch := &entity.EventPatch{
		Name:           req.Name,
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		Description:    req.Description,
		LogoURL:        req.LogoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	}
	if patch.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no fields to update", nil)
	}

	event, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	if _, appErr := s.GetByID(ctx, id); appErr != nil {
		return appErr
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}
	return nil
}

// UploadLogo stores the logo blob and records the returned URL on the event.
func (s *EventService) UploadLogo(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*entity.Event, *errors.AppError) {
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "object storage is not configured", nil)
	}
	if _, appErr := s.GetByID(ctx, id); appErr != nil {
		return nil, appErr
	}

	url, err := s.storage.Upload(ctx, filename, contentType, body)
	if err != nil {
		logger.Error("EventService:UploadLogo:Upload:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload logo", err)
	}

	event, err := s.repo.Update(ctx, id, &entity.EventPatch{LogoURL: &url})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save logo url", err)
	}
	return event, nil
}
