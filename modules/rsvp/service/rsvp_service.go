package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"gradinvite/core/cache"
	"gradinvite/core/errors"
	"gradinvite/core/logger"
	"gradinvite/core/params"
	inviteeRepo "gradinvite/modules/invitee/repository"
	"gradinvite/modules/rsvp/dto"
	"gradinvite/modules/rsvp/entity"
	"gradinvite/modules/rsvp/repository"

	"github.com/google/uuid"
)

type RSVPService struct {
	repo        repository.RSVPRepositoryInterface
	inviteeRepo inviteeRepo.InviteeRepositoryInterface
	cache       *cache.Cache
}

func NewRSVPService(repo repository.RSVPRepositoryInterface, inviteeRepository inviteeRepo.InviteeRepositoryInterface, c *cache.Cache) *RSVPService {
	return &RSVPService{
		repo:        repo,
		inviteeRepo: inviteeRepository,
		cache:       c,
	}
}

// Upsert records or fully replaces the invitee's response. After it
// returns, exactly one RSVP row exists for the invitee no matter how many
// times it ran.
func (s *RSVPService) Upsert(ctx context.Context, req *dto.UpsertRSVPRequest) (*entity.RSVP, *errors.AppError) {
	if req.InviteeID == uuid.Nil || req.EventID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invitee_id and event_id are required", nil)
	}

	status := entity.RSVPStatus(req.Status)
	if !status.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "status must be attending, not_attending or maybe", nil)
	}

	guestsCount := req.GuestsCount
	if guestsCount == 0 {
		guestsCount = 1
	}
	if guestsCount < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "guests_count must be at least 1", nil)
	}

	invitee, err := s.inviteeRepo.GetByID(ctx, req.InviteeID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "invitee not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get invitee", err)
	}
	if invitee.EventID != req.EventID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invitee does not belong to event", nil)
	}

	// guests_count is persisted whatever the status; it only carries
	// meaning for attending responses.
	rsvp := &entity.RSVP{
		InviteeID:           req.InviteeID,
		EventID:             req.EventID,
		Status:              status,
		GuestsCount:         guestsCount,
		DietaryRestrictions: req.DietaryRestrictions,
		Notes:               req.Notes,
	}

	saved, err := s.repo.Upsert(ctx, rsvp)
	if err != nil {
		logger.Error("RSVPService:Upsert:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save rsvp", err)
	}

	s.cache.InvalidateInviteDetails(ctx, invitee.UniqueToken)
	return saved, nil
}

func (s *RSVPService) ListByEvent(ctx context.Context, eventID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedRSVPEntity, *errors.AppError) {
	result, err := s.repo.ListByEvent(ctx, eventID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list rsvps", err)
	}
	return result, nil
}

func (s *RSVPService) Stats(ctx context.Context, eventID uuid.UUID) (*entity.Stats, *errors.AppError) {
	stats, err := s.repo.Stats(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load rsvp stats", err)
	}
	return stats, nil
}
