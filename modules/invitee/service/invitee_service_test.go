package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gradinvite/core/errors"
	eventEntity "gradinvite/modules/event/entity"
	"gradinvite/modules/invitee/dto"
	"gradinvite/modules/invitee/entity"
	"gradinvite/modules/invitee/repository"
	"gradinvite/modules/mailer"
	rsvpEntity "gradinvite/modules/rsvp/entity"

	"github.com/google/uuid"
)

type fakeInviteeRepo struct {
	invitees       []entity.Invitee
	rsvps          map[uuid.UUID]rsvpEntity.RSVP // keyed by invitee id
	events         *fakeEventRepo
	conflictOnce   bool // first Create fails with ErrTokenConflict
	markInvitedErr error
}

func (f *fakeInviteeRepo) Create(ctx context.Context, invitee *entity.Invitee) error {
	if f.conflictOnce {
		f.conflictOnce = false
		return repository.ErrTokenConflict
	}
	invitee.ID = uuid.New()
	invitee.CreatedAt = time.Now()
	f.invitees = append(f.invitees, *invitee)
	return nil
}

func (f *fakeInviteeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitee, error) {
	for i := range f.invitees {
		if f.invitees[i].ID == id {
			out := f.invitees[i]
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeInviteeRepo) GetByToken(ctx context.Context, token string) (*entity.Invitee, error) {
	for i := range f.invitees {
		if f.invitees[i].UniqueToken == token {
			out := f.invitees[i]
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeInviteeRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitee, error) {
	var out []entity.Invitee
	for i := range f.invitees {
		if f.invitees[i].EventID == eventID {
			out = append(out, f.invitees[i])
		}
	}
	return out, nil
}

func (f *fakeInviteeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.invitees {
		if f.invitees[i].ID == id {
			f.invitees = append(f.invitees[:i], f.invitees[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeInviteeRepo) MarkInvited(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.markInvitedErr != nil {
		return f.markInvitedErr
	}
	for i := range f.invitees {
		if f.invitees[i].ID == id {
			t := at
			f.invitees[i].InvitedAt = &t
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeInviteeRepo) SearchByName(ctx context.Context, name string, eventID uuid.UUID) (*entity.SearchRow, error) {
	for i := range f.invitees {
		inv := &f.invitees[i]
		if inv.EventID == eventID && strings.EqualFold(inv.Name, name) {
			row := &entity.SearchRow{
				ID:    inv.ID,
				Name:  inv.Name,
				Email: inv.Email,
				Token: inv.UniqueToken,
			}
			if r, ok := f.rsvps[inv.ID]; ok {
				id := r.ID
				status := string(r.Status)
				row.RsvpID = &id
				row.RsvpStatus = &status
			}
			return row, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeInviteeRepo) GetInviteDetails(ctx context.Context, token string) (*entity.InviteDetails, error) {
	inv, err := f.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	details := &entity.InviteDetails{Invitee: *inv}
	if f.events != nil {
		if ev, err := f.events.GetByID(ctx, inv.EventID); err == nil {
			details.Event = ev
		}
	}
	if r, ok := f.rsvps[inv.ID]; ok {
		out := r
		details.Rsvp = &out
	}
	return details, nil
}

type fakeEventRepo struct {
	events map[uuid.UUID]eventEntity.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event *eventEntity.Event) error { return nil }

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := ev
	return &out, nil
}

func (f *fakeEventRepo) GetFirst(ctx context.Context) (*eventEntity.Event, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEventRepo) List(ctx context.Context) ([]eventEntity.Event, error) { return nil, nil }

func (f *fakeEventRepo) Update(ctx context.Context, id uuid.UUID, patch *eventEntity.EventPatch) (*eventEntity.Event, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeTransport struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (f *fakeTransport) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return fmt.Errorf("delivery refused for %s", to)
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(transport *fakeTransport) (*InviteeService, *fakeInviteeRepo, uuid.UUID) {
	eventID := uuid.New()
	eventRepository := &fakeEventRepo{events: map[uuid.UUID]eventEntity.Event{
		eventID: {ID: eventID, Name: "Class of 2026 Graduation", Date: "2026-06-13", Time: "10:00 AM", Location: "Main Auditorium"},
	}}
	repo := &fakeInviteeRepo{
		rsvps:  make(map[uuid.UUID]rsvpEntity.RSVP),
		events: eventRepository,
	}
	mailService := mailer.NewServiceWithTransport(transport, time.Second)
	svc := NewInviteeService(repo, eventRepository, mailService, nil, nil, "https://invites.example.com/")
	return svc, repo, eventID
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})
	ctx := context.Background()

	cases := []dto.CreateInviteeRequest{
		{Name: "Maria", Email: "m@example.com"},
		{EventID: eventID, Email: "m@example.com"},
		{EventID: eventID, Name: "Maria"},
		{EventID: eventID, Name: "   ", Email: "m@example.com"},
	}
	for i, req := range cases {
		if _, appErr := svc.Create(ctx, &req); appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("case %d: expected INVALID_INPUT, got %v", i, appErr)
		}
	}

	_, appErr := svc.Create(ctx, &dto.CreateInviteeRequest{EventID: uuid.New(), Name: "Maria", Email: "m@example.com"})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("unknown event: expected NOT_FOUND, got %v", appErr)
	}
}

func TestCreateAssignsToken(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})

	invitee, appErr := svc.Create(context.Background(), &dto.CreateInviteeRequest{
		EventID: eventID, Name: "  Maria Santos  ", Email: "maria@example.com",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(invitee.UniqueToken) != 64 {
		t.Errorf("token length = %d, want 64", len(invitee.UniqueToken))
	}
	if invitee.Name != "Maria Santos" {
		t.Errorf("name not trimmed: %q", invitee.Name)
	}
	if invitee.InvitedAt != nil {
		t.Error("invited_at must stay unset without send_email")
	}
}

func TestCreateRetriesOnTokenConflict(t *testing.T) {
	transport := &fakeTransport{}
	svc, repo, eventID := newTestService(transport)
	repo.conflictOnce = true

	invitee, appErr := svc.Create(context.Background(), &dto.CreateInviteeRequest{
		EventID: eventID, Name: "Maria", Email: "maria@example.com",
	})
	if appErr != nil {
		t.Fatalf("expected the retry to succeed, got %v", appErr)
	}
	if len(repo.invitees) != 1 {
		t.Errorf("expected one stored invitee, got %d", len(repo.invitees))
	}
	if invitee.UniqueToken == "" {
		t.Error("retried create lost its token")
	}
}

func TestCreateWithSendStampsInvitedAt(t *testing.T) {
	transport := &fakeTransport{}
	svc, repo, eventID := newTestService(transport)

	invitee, appErr := svc.Create(context.Background(), &dto.CreateInviteeRequest{
		EventID: eventID, Name: "Maria", Email: "maria@example.com", SendEmail: true,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if invitee.InvitedAt == nil {
		t.Error("invited_at not stamped after a successful send")
	}
	if len(transport.sent) != 1 {
		t.Errorf("expected one delivery, got %d", len(transport.sent))
	}
	stored, _ := repo.GetByID(context.Background(), invitee.ID)
	if stored.InvitedAt == nil {
		t.Error("stored invitee missing invited_at")
	}
}

func TestCreateSendFailureIsNotFatal(t *testing.T) {
	transport := &fakeTransport{failFor: map[string]bool{"maria@example.com": true}}
	svc, _, eventID := newTestService(transport)

	invitee, appErr := svc.Create(context.Background(), &dto.CreateInviteeRequest{
		EventID: eventID, Name: "Maria", Email: "maria@example.com", SendEmail: true,
	})
	if appErr != nil {
		t.Fatalf("creation must survive a failed send, got %v", appErr)
	}
	if invitee.InvitedAt != nil {
		t.Error("invited_at stamped despite the failed send")
	}
}

func TestSearchIsCaseInsensitiveAndScoped(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})
	ctx := context.Background()

	if _, appErr := svc.Create(ctx, &dto.CreateInviteeRequest{EventID: eventID, Name: "Maria Santos", Email: "maria@example.com"}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	resp, appErr := svc.Search(ctx, "mArIa sAnToS", eventID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !resp.Found || resp.Invitee == nil {
		t.Fatal("case-insensitive match not found")
	}
	if resp.Invitee.Token == "" {
		t.Error("search result missing the access token")
	}
	if resp.Invitee.HasRsvped {
		t.Error("fresh invitee reported as having responded")
	}

	// Same name, different event: out of scope.
	resp, appErr = svc.Search(ctx, "Maria Santos", uuid.New())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Found {
		t.Error("search leaked an invitee from another event")
	}

	if _, appErr := svc.Search(ctx, "   ", eventID); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("blank name: expected INVALID_INPUT, got %v", appErr)
	}
}

func TestSearchMissIsNotAnError(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})

	resp, appErr := svc.Search(context.Background(), "Nobody Here", eventID)
	if appErr != nil {
		t.Fatalf("a miss must not be an error, got %v", appErr)
	}
	if resp.Found || resp.Invitee != nil {
		t.Errorf("unexpected search response: %+v", resp)
	}
}

func TestSendBulkCountsAndStamps(t *testing.T) {
	transport := &fakeTransport{failFor: map[string]bool{"g1@example.com": true}}
	svc, repo, eventID := newTestService(transport)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, appErr := svc.Create(ctx, &dto.CreateInviteeRequest{
			EventID: eventID,
			Name:    fmt.Sprintf("Guest %d", i),
			Email:   fmt.Sprintf("g%d@example.com", i),
		}); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
	}

	result, appErr := svc.SendBulk(ctx, eventID, mailer.KindInvitation)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Total != 3 || result.Successful != 2 || result.Failed != 1 {
		t.Errorf("counts = {%d %d %d}, want {3 2 1}", result.Total, result.Successful, result.Failed)
	}

	for _, inv := range repo.invitees {
		succeeded := inv.Email != "g1@example.com"
		if succeeded && inv.InvitedAt == nil {
			t.Errorf("%s: invited_at not stamped after successful send", inv.Email)
		}
		if !succeeded && inv.InvitedAt != nil {
			t.Errorf("%s: invited_at stamped despite failed send", inv.Email)
		}
	}
}

func TestSendBulkScheduleUpdateDoesNotStamp(t *testing.T) {
	svc, repo, eventID := newTestService(&fakeTransport{})
	ctx := context.Background()

	if _, appErr := svc.Create(ctx, &dto.CreateInviteeRequest{EventID: eventID, Name: "Maria", Email: "maria@example.com"}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	result, appErr := svc.SendBulk(ctx, eventID, mailer.KindScheduleUpdate)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Successful != 1 {
		t.Errorf("successful = %d, want 1", result.Successful)
	}
	if repo.invitees[0].InvitedAt != nil {
		t.Error("schedule updates must not stamp invited_at")
	}
}

func TestSendBulkRejectsEmptyEventAndBadKind(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})
	ctx := context.Background()

	if _, appErr := svc.SendBulk(ctx, eventID, mailer.KindInvitation); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("empty event: expected INVALID_INPUT, got %v", appErr)
	}
	if _, appErr := svc.SendBulk(ctx, eventID, mailer.Kind("promo")); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("bad kind: expected INVALID_INPUT, got %v", appErr)
	}
	if _, appErr := svc.SendBulk(ctx, uuid.New(), mailer.KindInvitation); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("unknown event: expected NOT_FOUND, got %v", appErr)
	}
}

func TestInviteLinkBuiltFromBaseURL(t *testing.T) {
	svc, _, eventID := newTestService(&fakeTransport{})

	invitee, appErr := svc.Create(context.Background(), &dto.CreateInviteeRequest{
		EventID: eventID, Name: "Maria", Email: "maria@example.com",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	event, _ := svc.eventRepo.GetByID(context.Background(), eventID)
	msg := svc.buildMessage(event, invitee)
	want := "https://invites.example.com/invite/" + invitee.UniqueToken
	if msg.InviteLink != want {
		t.Errorf("invite link = %q, want %q", msg.InviteLink, want)
	}
	if msg.EventDate != "Saturday, June 13, 2026" {
		t.Errorf("event date = %q", msg.EventDate)
	}
}

func TestInviteDetailsUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(&fakeTransport{})

	if _, appErr := svc.InviteDetails(context.Background(), "no-such-token"); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("expected NOT_FOUND, got %v", appErr)
	}
	if _, appErr := svc.InviteDetails(context.Background(), ""); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("blank token: expected INVALID_INPUT, got %v", appErr)
	}
}
