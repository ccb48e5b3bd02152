package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gradinvite/core/database"
	"gradinvite/core/logger"
	eventEntity "gradinvite/modules/event/entity"
	"gradinvite/modules/invitee/entity"
	rsvpEntity "gradinvite/modules/rsvp/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrTokenConflict reports a collision on the unique access token. Callers
// regenerate and retry; with 256-bit tokens this is not expected in practice.
var ErrTokenConflict = errors.New("invitee token already exists")

type InviteeRepositoryInterface interface {
	Create(ctx context.Context, invitee *entity.Invitee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitee, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitee, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkInvited(ctx context.Context, id uuid.UUID, at time.Time) error
	SearchByName(ctx context.Context, name string, eventID uuid.UUID) (*entity.SearchRow, error)
	GetInviteDetails(ctx context.Context, token string) (*entity.InviteDetails, error)
}

type InviteeRepository struct {
	db database.Database
}

func NewInviteeRepository(db database.Database) *InviteeRepository {
	return &InviteeRepository{db: db}
}

const inviteeColumns = `id, event_id, name, email, phone, unique_token, invited_at, created_at`

func (r *InviteeRepository) Create(ctx context.Context, invitee *entity.Invitee) error {
	query := `
		INSERT INTO invitees (event_id, name, email, phone, unique_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	invitee.CreatedAt = time.Now()

	row := r.db.QueryRowContext(ctx, query,
		invitee.EventID,
		invitee.Name,
		invitee.Email,
		invitee.Phone,
		invitee.UniqueToken,
		invitee.CreatedAt,
	)
	if err := row.Scan(&invitee.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTokenConflict
		}
		logger.Error("InviteeRepository:Create:Error:", err)
		return err
	}
	return nil
}

func (r *InviteeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitee, error) {
	query := `SELECT ` + inviteeColumns + ` FROM invitees WHERE id = $1`
	var invitee entity.Invitee
	err := r.db.GetContext(ctx, &invitee, query, id)
	if err != nil {
		logger.Error("InviteeRepository:GetByID:Error:", err)
		return nil, err
	}
	return &invitee, nil
}

func (r *InviteeRepository) GetByToken(ctx context.Context, token string) (*entity.Invitee, error) {
	query := `SELECT ` + inviteeColumns + ` FROM invitees WHERE unique_token = $1`
	var invitee entity.Invitee
	err := r.db.GetContext(ctx, &invitee, query, token)
	if err != nil {
		logger.Error("InviteeRepository:GetByToken:Error:", err)
		return nil, err
	}
	return &invitee, nil
}

func (r *InviteeRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitee, error) {
	query := `SELECT ` + inviteeColumns + ` FROM invitees WHERE event_id = $1 ORDER BY created_at, id`
	var invitees []entity.Invitee
	err := r.db.SelectContext(ctx, &invitees, query, eventID)
	if err != nil {
		logger.Error("InviteeRepository:ListByEvent:Error:", err)
		return nil, err
	}
	return invitees, nil
}

func (r *InviteeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invitees WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("InviteeRepository:Delete:Error:", err)
		return err
	}
	return nil
}

// MarkInvited records when a notification was last sent to the invitee.
func (r *InviteeRepository) MarkInvited(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE invitees SET invited_at = $1 WHERE id = $2`
	err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		logger.Error("InviteeRepository:MarkInvited:Error:", err)
		return err
	}
	return nil
}

// SearchByName does a case-insensitive exact match scoped to one event,
// joined against any existing RSVP. Ties resolve to insertion order.
func (r *InviteeRepository) SearchByName(ctx context.Context, name string, eventID uuid.UUID) (*entity.SearchRow, error) {
	query := `
		SELECT i.id, i.name, i.email, i.unique_token, r.id AS rsvp_id, r.status AS rsvp_status
		FROM invitees i
		LEFT JOIN rsvps r ON r.invitee_id = i.id
		WHERE LOWER(i.name) = LOWER($1) AND i.event_id = $2
		ORDER BY i.created_at, i.id
		LIMIT 1
	`
	var row entity.SearchRow
	err := r.db.GetContext(ctx, &row, query, name, eventID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error("InviteeRepository:SearchByName:Error:", err)
		}
		return nil, err
	}
	return &row, nil
}

// GetInviteDetails resolves one access token into the invitee, its event
// and its RSVP, if any.
func (r *InviteeRepository) GetInviteDetails(ctx context.Context, token string) (*entity.InviteDetails, error) {
	invitee, err := r.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	details := &entity.InviteDetails{Invitee: *invitee}

	var event eventEntity.Event
	eventQuery := `
		SELECT id, name, date, time, location, description, logo_url, primary_color, secondary_color, created_at, updated_at
		FROM events WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &event, eventQuery, invitee.EventID); err != nil {
		logger.Error("InviteeRepository:GetInviteDetails:Event:Error:", err)
		return nil, err
	}
	details.Event = &event

	var rsvp rsvpEntity.RSVP
	rsvpQuery := `
		SELECT id, invitee_id, event_id, status, guests_count, dietary_restrictions, notes, responded_at, created_at
		FROM rsvps WHERE invitee_id = $1
	`
	err = r.db.GetContext(ctx, &rsvp, rsvpQuery, invitee.ID)
	switch {
	case err == nil:
		details.Rsvp = &rsvp
	case errors.Is(err, sql.ErrNoRows):
		// no response yet
	default:
		logger.Error("InviteeRepository:GetInviteDetails:Rsvp:Error:", err)
		return nil, err
	}

	return details, nil
}
