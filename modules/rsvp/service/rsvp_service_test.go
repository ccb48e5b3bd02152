package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gradinvite/core/errors"
	"gradinvite/core/params"
	inviteeEntity "gradinvite/modules/invitee/entity"
	"gradinvite/modules/rsvp/dto"
	"gradinvite/modules/rsvp/entity"

	"github.com/google/uuid"
)

// fakeRSVPRepo upserts into a map keyed by invitee id, mirroring the
// unique constraint the real table enforces.
type fakeRSVPRepo struct {
	byInvitee map[uuid.UUID]entity.RSVP
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byInvitee: make(map[uuid.UUID]entity.RSVP)}
}

func (f *fakeRSVPRepo) Upsert(ctx context.Context, rsvp *entity.RSVP) (*entity.RSVP, error) {
	now := time.Now()
	saved := *rsvp
	saved.RespondedAt = now
	if existing, ok := f.byInvitee[rsvp.InviteeID]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.ID = uuid.New()
		saved.CreatedAt = now
	}
	f.byInvitee[rsvp.InviteeID] = saved
	out := saved
	return &out, nil
}

func (f *fakeRSVPRepo) GetByInviteeID(ctx context.Context, inviteeID uuid.UUID) (*entity.RSVP, error) {
	r, ok := f.byInvitee[inviteeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := r
	return &out, nil
}

func (f *fakeRSVPRepo) ListByEvent(ctx context.Context, eventID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedRSVPEntity, error) {
	return &entity.PaginatedRSVPEntity{}, nil
}

func (f *fakeRSVPRepo) Stats(ctx context.Context, eventID uuid.UUID) (*entity.Stats, error) {
	stats := &entity.Stats{}
	for _, r := range f.byInvitee {
		if r.EventID != eventID {
			continue
		}
		stats.TotalResponses++
		switch r.Status {
		case entity.StatusAttending:
			stats.Attending++
			stats.TotalGuests += r.GuestsCount
		case entity.StatusNotAttending:
			stats.NotAttending++
		case entity.StatusMaybe:
			stats.Maybe++
		}
	}
	return stats, nil
}

type fakeInviteeRepo struct {
	invitees map[uuid.UUID]inviteeEntity.Invitee
}

func (f *fakeInviteeRepo) Create(ctx context.Context, invitee *inviteeEntity.Invitee) error {
	return nil
}

func (f *fakeInviteeRepo) GetByID(ctx context.Context, id uuid.UUID) (*inviteeEntity.Invitee, error) {
	inv, ok := f.invitees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := inv
	return &out, nil
}

func (f *fakeInviteeRepo) GetByToken(ctx context.Context, token string) (*inviteeEntity.Invitee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeInviteeRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]inviteeEntity.Invitee, error) {
	return nil, nil
}

func (f *fakeInviteeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeInviteeRepo) MarkInvited(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (f *fakeInviteeRepo) SearchByName(ctx context.Context, name string, eventID uuid.UUID) (*inviteeEntity.SearchRow, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeInviteeRepo) GetInviteDetails(ctx context.Context, token string) (*inviteeEntity.InviteDetails, error) {
	return nil, sql.ErrNoRows
}

func newTestService() (*RSVPService, *fakeRSVPRepo, uuid.UUID, uuid.UUID) {
	eventID := uuid.New()
	inviteeID := uuid.New()
	inviteeRepo := &fakeInviteeRepo{invitees: map[uuid.UUID]inviteeEntity.Invitee{
		inviteeID: {ID: inviteeID, EventID: eventID, Name: "Maria Santos", Email: "maria@example.com", UniqueToken: "tok"},
	}}
	repo := newFakeRSVPRepo()
	return NewRSVPService(repo, inviteeRepo, nil), repo, eventID, inviteeID
}

func strPtr(s string) *string { return &s }

func TestUpsertCreates(t *testing.T) {
	svc, repo, eventID, inviteeID := newTestService()

	saved, appErr := svc.Upsert(context.Background(), &dto.UpsertRSVPRequest{
		InviteeID:           inviteeID,
		EventID:             eventID,
		Status:              "attending",
		GuestsCount:         3,
		DietaryRestrictions: strPtr("vegetarian"),
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if saved.Status != entity.StatusAttending || saved.GuestsCount != 3 {
		t.Errorf("saved rsvp = %+v", saved)
	}
	if len(repo.byInvitee) != 1 {
		t.Errorf("expected one row, got %d", len(repo.byInvitee))
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	svc, repo, eventID, inviteeID := newTestService()
	ctx := context.Background()

	first, appErr := svc.Upsert(ctx, &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "attending", GuestsCount: 2,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	second, appErr := svc.Upsert(ctx, &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "maybe", GuestsCount: 4,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(repo.byInvitee) != 1 {
		t.Fatalf("expected one row after resubmission, got %d", len(repo.byInvitee))
	}
	if second.ID != first.ID {
		t.Error("resubmission must update the existing row, not create a new one")
	}
	if second.Status != entity.StatusMaybe || second.GuestsCount != 4 {
		t.Errorf("resubmission did not replace fields: %+v", second)
	}
}

func TestUpsertClearsOmittedOptionals(t *testing.T) {
	svc, repo, eventID, inviteeID := newTestService()
	ctx := context.Background()

	_, appErr := svc.Upsert(ctx, &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "attending",
		DietaryRestrictions: strPtr("halal"), Notes: strPtr("front row please"),
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	saved, appErr := svc.Upsert(ctx, &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "attending",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if saved.DietaryRestrictions != nil || saved.Notes != nil {
		t.Errorf("omitted optionals must be cleared, got %+v", saved)
	}
	if stored := repo.byInvitee[inviteeID]; stored.DietaryRestrictions != nil {
		t.Error("stored row still carries a stale dietary restriction")
	}
}

func TestUpsertGuestsCountDefaults(t *testing.T) {
	svc, _, eventID, inviteeID := newTestService()

	saved, appErr := svc.Upsert(context.Background(), &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "not_attending",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if saved.GuestsCount != 1 {
		t.Errorf("guests_count = %d, want default 1", saved.GuestsCount)
	}
}

func TestUpsertGuestsCountPersistedForAnyStatus(t *testing.T) {
	svc, _, eventID, inviteeID := newTestService()

	saved, appErr := svc.Upsert(context.Background(), &dto.UpsertRSVPRequest{
		InviteeID: inviteeID, EventID: eventID, Status: "maybe", GuestsCount: 5,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if saved.GuestsCount != 5 {
		t.Errorf("guests_count = %d, want 5 even for maybe", saved.GuestsCount)
	}
}

func TestUpsertValidation(t *testing.T) {
	svc, _, eventID, inviteeID := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.UpsertRSVPRequest
		code errors.ErrorCode
	}{
		{"missing ids", dto.UpsertRSVPRequest{Status: "attending"}, errors.ErrInvalidInput},
		{"bad status", dto.UpsertRSVPRequest{InviteeID: inviteeID, EventID: eventID, Status: "probably"}, errors.ErrInvalidInput},
		{"negative guests", dto.UpsertRSVPRequest{InviteeID: inviteeID, EventID: eventID, Status: "attending", GuestsCount: -2}, errors.ErrInvalidInput},
		{"unknown invitee", dto.UpsertRSVPRequest{InviteeID: uuid.New(), EventID: eventID, Status: "attending"}, errors.ErrNotFound},
		{"wrong event", dto.UpsertRSVPRequest{InviteeID: inviteeID, EventID: uuid.New(), Status: "attending"}, errors.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.Upsert(ctx, &tc.req)
			if appErr == nil {
				t.Fatal("expected an error")
			}
			if appErr.Code != tc.code {
				t.Errorf("code = %s, want %s", appErr.Code, tc.code)
			}
		})
	}
}
