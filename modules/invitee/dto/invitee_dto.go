package dto

import (
	"github.com/google/uuid"
)

type CreateInviteeRequest struct {
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	SendEmail bool      `json:"send_email"`
}

// SearchInvitee deliberately omits the invitee id: the access token is the
// only capability handed to guests.
type SearchInvitee struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Token      string  `json:"token"`
	HasRsvped  bool    `json:"has_rsvped"`
	RsvpStatus *string `json:"rsvp_status,omitempty"`
}

type SearchResponse struct {
	Found   bool           `json:"found"`
	Invitee *SearchInvitee `json:"invitee,omitempty"`
}

type BulkSendRequest struct {
	EventID uuid.UUID `json:"event_id"`
	Kind    string    `json:"kind"`   // invitation | schedule_update
	Async   bool      `json:"async"`  // enqueue instead of sending inline
	Detail  bool      `json:"detail"` // include per-recipient results
}

type BulkSendQueuedResponse struct {
	Queued  bool   `json:"queued"`
	TaskID  string `json:"task_id,omitempty"`
	EventID string `json:"event_id"`
	Kind    string `json:"kind"`
}
