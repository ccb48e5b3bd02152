package entity

import (
	"time"

	coreEntity "gradinvite/core/entity"

	"github.com/google/uuid"
)

type RSVPStatus string

const (
	StatusAttending    RSVPStatus = "attending"
	StatusNotAttending RSVPStatus = "not_attending"
	StatusMaybe        RSVPStatus = "maybe"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case StatusAttending, StatusNotAttending, StatusMaybe:
		return true
	}
	return false
}

// RSVP is a guest's single current response. At most one row exists per
// invitee, enforced by a unique constraint on invitee_id.
type RSVP struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	InviteeID           uuid.UUID  `db:"invitee_id" json:"invitee_id"`
	EventID             uuid.UUID  `db:"event_id" json:"event_id"`
	Status              RSVPStatus `db:"status" json:"status"`
	GuestsCount         int        `db:"guests_count" json:"guests_count"`
	DietaryRestrictions *string    `db:"dietary_restrictions" json:"dietary_restrictions,omitempty"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	RespondedAt         time.Time  `db:"responded_at" json:"responded_at"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
}

// RSVPWithInvitee backs the admin dashboard listing.
type RSVPWithInvitee struct {
	RSVP
	InviteeName  string `db:"invitee_name" json:"invitee_name"`
	InviteeEmail string `db:"invitee_email" json:"invitee_email"`
}

// Stats aggregates responses for one event. TotalGuests only counts guests
// of attending responses; guests_count on other statuses is persisted but
// semantically inert.
type Stats struct {
	Attending      int `db:"attending" json:"attending"`
	NotAttending   int `db:"not_attending" json:"not_attending"`
	Maybe          int `db:"maybe" json:"maybe"`
	TotalGuests    int `db:"total_guests" json:"total_guests"`
	TotalResponses int `db:"total_responses" json:"total_responses"`
}

type PaginatedRSVPEntity = coreEntity.Pagination[RSVPWithInvitee]
