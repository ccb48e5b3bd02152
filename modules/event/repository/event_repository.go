package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gradinvite/core/database"
	"gradinvite/core/logger"
	"gradinvite/modules/event/entity"

	"github.com/google/uuid"
)

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetFirst(ctx context.Context) (*entity.Event, error)
	List(ctx context.Context) ([]entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, patch *entity.EventPatch) (*entity.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository struct {
	db database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, date, time, location, description, logo_url, primary_color, secondary_color, created_at, updated_at`

// Create inserts a new event. Colors fall back to the schema defaults when
// left empty by the caller.
func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (name, date, time, location, description, primary_color, secondary_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, query,
		event.Name,
		event.Date,
		event.Time,
		event.Location,
		event.Description,
		event.PrimaryColor,
		event.SecondaryColor,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return row.Scan(&event.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var event entity.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		logger.Error("EventRepository:GetByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

// GetFirst returns the oldest event, used as the landing event for the
// public site.
func (r *EventRepository) GetFirst(ctx context.Context) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at, id LIMIT 1`
	var event entity.Event
	err := r.db.GetContext(ctx, &event, query)
	if err != nil {
		logger.Error("EventRepository:GetFirst:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, query)
	if err != nil {
		logger.Error("EventRepository:List:Error:", err)
		return nil, err
	}
	return events, nil
}

// Update applies only the supplied patch fields and refreshes updated_at.
func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.EventPatch) (*entity.Event, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Time != nil {
		add("time", *patch.Time)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.LogoURL != nil {
		add("logo_url", *patch.LogoURL)
	}
	if patch.PrimaryColor != nil {
		add("primary_color", *patch.PrimaryColor)
	}
	if patch.SecondaryColor != nil {
		add("secondary_color", *patch.SecondaryColor)
	}
	add("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE events SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), eventColumns,
	)

	var event entity.Event
	err := r.db.GetContext(ctx, &event, query, args...)
	if err != nil {
		logger.Error("EventRepository:Update:Error:", err)
		return nil, err
	}
	return &event, nil
}

// Delete removes the event; invitees and rsvps go with it via ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:Delete:Error:", err)
		return err
	}
	return nil
}
