package dto

import (
	"github.com/google/uuid"
)

type UpsertRSVPRequest struct {
	InviteeID           uuid.UUID `json:"invitee_id"`
	EventID             uuid.UUID `json:"event_id"`
	Status              string    `json:"status"`
	GuestsCount         int       `json:"guests_count"`
	DietaryRestrictions *string   `json:"dietary_restrictions"`
	Notes               *string   `json:"notes"`
}
