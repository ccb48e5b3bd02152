package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Date           string    `db:"date" json:"date"` // ISO date string
	Time           string    `db:"time" json:"time"` // free text, e.g. "10:00 AM"
	Location       string    `db:"location" json:"location"`
	Description    *string   `db:"description" json:"description,omitempty"`
	LogoURL        *string   `db:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor   string    `db:"primary_color" json:"primary_color"`
	SecondaryColor string    `db:"secondary_color" json:"secondary_color"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EventPatch carries only the fields an update supplies; nil fields are
// left untouched.
type EventPatch struct {
	Name           *string
	Date           *string
	Time           *string
	Location       *string
	Description    *string
	LogoURL        *string
	PrimaryColor   *string
	SecondaryColor *string
}

func (p *EventPatch) Empty() bool {
	return p.Name == nil && p.Date == nil && p.Time == nil && p.Location == nil &&
		p.Description == nil && p.LogoURL == nil && p.PrimaryColor == nil && p.SecondaryColor == nil
}
