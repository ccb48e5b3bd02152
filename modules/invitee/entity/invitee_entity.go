package entity

import (
	"time"

	eventEntity "gradinvite/modules/event/entity"
	rsvpEntity "gradinvite/modules/rsvp/entity"

	"github.com/google/uuid"
)

type Invitee struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	EventID     uuid.UUID  `db:"event_id" json:"event_id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	UniqueToken string     `db:"unique_token" json:"unique_token"`
	InvitedAt   *time.Time `db:"invited_at" json:"invited_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// SearchRow is the invitee-with-rsvp projection the guest search query
// scans into.
type SearchRow struct {
	ID         uuid.UUID  `db:"id"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Token      string     `db:"unique_token"`
	RsvpID     *uuid.UUID `db:"rsvp_id"`
	RsvpStatus *string    `db:"rsvp_status"`
}

// InviteDetails is the invitee+event+rsvp join behind a personalized invite
// link.
type InviteDetails struct {
	Invitee Invitee            `json:"invitee"`
	Event   *eventEntity.Event `json:"event"`
	Rsvp    *rsvpEntity.RSVP   `json:"rsvp,omitempty"`
}
