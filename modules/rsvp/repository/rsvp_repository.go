package repository

import (
	"context"
	"time"

	"gradinvite/core/database"
	"gradinvite/core/logger"
	"gradinvite/core/params"
	"gradinvite/modules/rsvp/entity"

	"github.com/google/uuid"
)

type RSVPRepositoryInterface interface {
	Upsert(ctx context.Context, rsvp *entity.RSVP) (*entity.RSVP, error)
	GetByInviteeID(ctx context.Context, inviteeID uuid.UUID) (*entity.RSVP, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedRSVPEntity, error)
	Stats(ctx context.Context, eventID uuid.UUID) (*entity.Stats, error)
}

type RSVPRepository struct {
	db database.Database
}

func NewRSVPRepository(db database.Database) *RSVPRepository {
	return &RSVPRepository{db: db}
}

const rsvpColumns = `id, invitee_id, event_id, status, guests_count, dietary_restrictions, notes, responded_at, created_at`

// Upsert inserts or fully replaces the invitee's RSVP in one atomic
// statement keyed on the invitee_id unique constraint. Omitted optional
// fields are cleared, not preserved.
func (r *RSVPRepository) Upsert(ctx context.Context, rsvp *entity.RSVP) (*entity.RSVP, error) {
	query := `
		INSERT INTO rsvps (invitee_id, event_id, status, guests_count, dietary_restrictions, notes, responded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (invitee_id) DO UPDATE SET
			status = EXCLUDED.status,
			guests_count = EXCLUDED.guests_count,
			dietary_restrictions = EXCLUDED.dietary_restrictions,
			notes = EXCLUDED.notes,
			responded_at = EXCLUDED.responded_at
		RETURNING ` + rsvpColumns

	now := time.Now()
	var saved entity.RSVP
	err := r.db.GetContext(ctx, &saved, query,
		rsvp.InviteeID,
		rsvp.EventID,
		rsvp.Status,
		rsvp.GuestsCount,
		rsvp.DietaryRestrictions,
		rsvp.Notes,
		now,
	)
	if err != nil {
		logger.Error("RSVPRepository:Upsert:Error:", err)
		return nil, err
	}
	return &saved, nil
}

func (r *RSVPRepository) GetByInviteeID(ctx context.Context, inviteeID uuid.UUID) (*entity.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE invitee_id = $1`
	var rsvp entity.RSVP
	err := r.db.GetContext(ctx, &rsvp, query, inviteeID)
	if err != nil {
		logger.Error("RSVPRepository:GetByInviteeID:Error:", err)
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedRSVPEntity, error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM rsvps WHERE event_id = $1`, eventID)
	if err != nil {
		logger.Error("RSVPRepository:ListByEvent:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT r.id, r.invitee_id, r.event_id, r.status, r.guests_count, r.dietary_restrictions, r.notes,
		       r.responded_at, r.created_at,
		       i.name AS invitee_name, i.email AS invitee_email
		FROM rsvps r
		JOIN invitees i ON i.id = r.invitee_id
		WHERE r.event_id = $1
		ORDER BY r.responded_at DESC
		LIMIT $2 OFFSET $3
	`
	var rsvps []entity.RSVPWithInvitee
	err = r.db.SelectContext(ctx, &rsvps, query, eventID, queryParams.PageSize, offset)
	if err != nil {
		logger.Error("RSVPRepository:ListByEvent:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedRSVPEntity{
		Items:      rsvps,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

// Stats aggregates per-status counts and attending guest totals for the
// admin dashboard.
func (r *RSVPRepository) Stats(ctx context.Context, eventID uuid.UUID) (*entity.Stats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'attending')                          AS attending,
			COUNT(*) FILTER (WHERE status = 'not_attending')                      AS not_attending,
			COUNT(*) FILTER (WHERE status = 'maybe')                              AS maybe,
			COALESCE(SUM(guests_count) FILTER (WHERE status = 'attending'), 0)    AS total_guests,
			COUNT(*)                                                              AS total_responses
		FROM rsvps
		WHERE event_id = $1
	`
	var stats entity.Stats
	err := r.db.GetContext(ctx, &stats, query, eventID)
	if err != nil {
		logger.Error("RSVPRepository:Stats:Error:", err)
		return nil, err
	}
	return &stats, nil
}
