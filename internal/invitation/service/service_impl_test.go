package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	assignmentrepo "github.com/loanridge/loanridge/internal/assignment/repository"
	assignmentservice "github.com/loanridge/loanridge/internal/assignment/service"
	auditrepo "github.com/loanridge/loanridge/internal/audit/repository"
	auditservice "github.com/loanridge/loanridge/internal/audit/service"
	"github.com/loanridge/loanridge/internal/cache"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	contactrepo "github.com/loanridge/loanridge/internal/contact/repository"
	contactservice "github.com/loanridge/loanridge/internal/contact/service"
	"github.com/loanridge/loanridge/internal/delivery"
	"github.com/loanridge/loanridge/internal/duplicate"
	"github.com/loanridge/loanridge/internal/invitation/domain"
	invitationrepo "github.com/loanridge/loanridge/internal/invitation/repository"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	professionalrepo "github.com/loanridge/loanridge/internal/professional/repository"
	professionalservice "github.com/loanridge/loanridge/internal/professional/service"
	"github.com/loanridge/loanridge/internal/ratelimit"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type emailStub struct {
	mu  sync.Mutex
	err error
	n   int
}

func (s *emailStub) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return s.err
}

type smsStub struct {
	mu  sync.Mutex
	err error
	n   int
}

func (s *smsStub) Send(ctx context.Context, to string, body string) error {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return s.err
}

type fixture struct {
	svc           domain.Service
	db            *gorm.DB
	clock         *clock.FakeClock
	email         *emailStub
	sms           *smsStub
	professionals professionaldomain.Service
	inviterID     snowflake.ID

	// buildSvc rebuilds the service around a different invitation
	// repository while sharing every other collaborator.
	buildSvc func(repo domain.Repository) domain.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	schema := []string{
		`CREATE TABLE professionals (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			company TEXT,
			slug TEXT NOT NULL,
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			visible_to_clients BOOLEAN NOT NULL DEFAULT TRUE,
			showcase_role TEXT,
			showcase_description TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE clients (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE team_memberships (
			id INTEGER PRIMARY KEY,
			professional_id INTEGER NOT NULL,
			member_professional_id INTEGER NOT NULL,
			relationship_type TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX ux_team_memberships_pair
			ON team_memberships (professional_id, member_professional_id)`,
		`CREATE TABLE manual_contacts (
			id INTEGER PRIMARY KEY,
			owner_professional_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			company TEXT,
			contact_kind TEXT,
			relationship_type TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE team_assignments (
			id INTEGER PRIMARY KEY,
			client_id INTEGER NOT NULL,
			professional_id INTEGER NOT NULL,
			role_tag TEXT NOT NULL,
			assigned_by INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,
		`CREATE UNIQUE INDEX ux_team_assignments_active
			ON team_assignments (client_id, role_tag) WHERE status = 'active'`,
		`CREATE TABLE invitations (
			id INTEGER PRIMARY KEY,
			professional_id INTEGER NOT NULL,
			email TEXT NOT NULL,
			name TEXT,
			phone TEXT,
			target_role TEXT NOT NULL,
			channels TEXT,
			message TEXT,
			code TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'pending',
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			sms_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			sent_at DATETIME,
			accepted_at DATETIME,
			expires_at DATETIME NOT NULL,
			contact_id INTEGER
		)`,
		`CREATE UNIQUE INDEX ux_invitations_open
			ON invitations (professional_id, email, target_role)
			WHERE status IN ('pending', 'sent')`,
		`CREATE TABLE role_change_records (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			old_role TEXT NOT NULL,
			new_role TEXT NOT NULL,
			reason TEXT,
			changed_by INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	fakeClock := clock.NewFakeClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	network, err := config.NewNetworkConfigHolder()
	require.NoError(t, err)
	projCache := cache.NewProjectionCache()

	contacts := contactservice.New(contactservice.Params{
		DB:      db,
		Log:     log,
		GenID:   node,
		Clock:   fakeClock,
		Repo:    contactrepo.NewRepository(db),
		Cache:   projCache,
		Network: network,
	})
	assignments := assignmentservice.New(assignmentservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fakeClock,
		Repo:  assignmentrepo.NewRepository(db),
		Cache: projCache,
	})
	audits := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fakeClock,
		Repo:  auditrepo.NewRepository(db),
	})
	professionals := professionalservice.New(professionalservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fakeClock,
		Repo:  professionalrepo.NewRepository(db),
		Audit: audits,
	})

	invRepo := invitationrepo.NewRepository(db)
	checker := duplicate.New(duplicate.Params{
		Log:         log,
		Contacts:    contacts,
		Invitations: invRepo,
	})

	email := &emailStub{}
	sms := &smsStub{}
	dispatcher := delivery.New(delivery.Params{
		Log:     log,
		Email:   email,
		SMS:     sms,
		Network: network,
	})

	buildSvc := func(repo domain.Repository) domain.Service {
		return New(Params{
			DB:            db,
			Log:           log,
			GenID:         node,
			Clock:         fakeClock,
			Repo:          repo,
			Checker:       checker,
			Dispatcher:    dispatcher,
			Network:       network,
			Limiter:       ratelimit.NewInviteSendLimiter(config.Config{}, network),
			Contacts:      contacts,
			Assignments:   assignments,
			Professionals: professionals,
		})
	}
	svc := buildSvc(invRepo)

	inviter, err := professionals.Create(context.Background(), professionaldomain.CreateRequest{
		Name:     "Rita Vargas",
		Email:    "rita@homeside.example",
		Role:     "realtor",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	return &fixture{
		svc:           svc,
		db:            db,
		clock:         fakeClock,
		email:         email,
		sms:           sms,
		professionals: professionals,
		inviterID:     inviter.ID,
		buildSvc:      buildSvc,
	}
}

func TestCreateNormalizesAndStartsPending(t *testing.T) {
	f := setup(t)

	inv, err := f.svc.Create(context.Background(), domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "  Buyer@Example.COM ",
		Name:       "Pat Buyer",
		TargetRole: "borrower",
		Channels:   []string{"Email", "sms"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, inv.Status)
	require.Equal(t, "buyer@example.com", inv.Email)
	require.Equal(t, "client", inv.TargetRole)
	require.NotEmpty(t, inv.Code)
	require.Equal(t, []string{"email", "sms"}, []string(inv.Channels))
	require.Equal(t, f.clock.Now().Add(14*24*time.Hour), inv.ExpiresAt)
}

func TestCreateDuplicateOpenInvitation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "BUYER@example.com",
		TargetRole: "client",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRelationship)

	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "invitation", dup.Kind)
	require.Equal(t, first.ID, dup.RefID)
}

func TestCreateDuplicateAgainstLiveContact(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		Name:       "Pat Buyer",
		TargetRole: "client",
	})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)
	accepted, err := f.svc.Accept(ctx, domain.AcceptRequest{Code: inv.Code})
	require.NoError(t, err)

	// The original invitation is terminal now, so the block must come
	// from the live client relationship the accept materialized.
	_, err = f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      " BUYER@Example.COM ",
		TargetRole: "client",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRelationship)

	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "contact", dup.Kind)
	require.Equal(t, *accepted.ContactID, dup.RefID)
}

func TestCreateDuplicateScopedByCategory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "dual@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	// A partner-professional invite to the same address is a
	// different category and must go through.
	_, err = f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "dual@example.com",
		TargetRole: "mortgage_professional",
	})
	require.NoError(t, err)
}

func TestCreateRevokedAllowsReinvite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	_, err = f.svc.Revoke(ctx, inv.ID)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)
}

func TestSendMovesToSent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
		Channels:   []string{"email"},
	})
	require.NoError(t, err)

	result, err := f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)
	require.Equal(t, domain.StatusSent, result.Invitation.Status)
	require.True(t, result.Invitation.EmailSent)
	require.False(t, result.Invitation.SMSSent)
	require.NotNil(t, result.Invitation.SentAt)
	require.Empty(t, result.Warnings)
}

func TestSendPartialFailureStillTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.email.err = errors.New("smtp down")

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		Phone:      "+15551230000",
		TargetRole: "client",
		Channels:   []string{"email", "sms"},
	})
	require.NoError(t, err)

	result, err := f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)
	require.Equal(t, domain.StatusSent, result.Invitation.Status)
	require.False(t, result.Invitation.EmailSent)
	require.True(t, result.Invitation.SMSSent)
	require.Len(t, result.Warnings, 1)
}

func TestSendAllChannelsFailedKeepsState(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.email.err = errors.New("smtp down")
	f.sms.err = errors.New("gateway down")

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		Phone:      "+15551230000",
		TargetRole: "client",
		Channels:   []string{"email", "sms"},
	})
	require.NoError(t, err)

	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.ErrorIs(t, err, domain.ErrDeliveryFailed)

	got, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)
	require.False(t, got.EmailSent)
	require.False(t, got.SMSSent)
}

func TestSendExpiredShortCircuits(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	f.clock.Advance(15 * 24 * time.Hour)

	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.ErrorIs(t, err, domain.ErrExpired)
	require.Equal(t, 0, f.email.n)
}

func TestResendOnlyFromSentAndKeepsCode(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	_, err = f.svc.Resend(ctx, inv.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)

	result, err := f.svc.Resend(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.Code, result.Invitation.Code)
	require.Equal(t, 2, f.email.n)
}

func TestRevokeTerminalFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	revoked, err := f.svc.Revoke(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRevoked, revoked.Status)

	_, err = f.svc.Revoke(ctx, inv.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAcceptClientInviteMaterializesAssignment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		Name:       "Pat Buyer",
		TargetRole: "client",
	})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)

	accepted, err := f.svc.Accept(ctx, domain.AcceptRequest{Code: inv.Code})
	require.NoError(t, err)
	require.Equal(t, domain.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	require.NotNil(t, accepted.ContactID)

	var clientCount, assignmentCount int64
	require.NoError(t, f.db.Table("clients").Where("email = ?", "buyer@example.com").Count(&clientCount).Error)
	require.NoError(t, f.db.Table("team_assignments").
		Where("client_id = ? AND professional_id = ? AND role_tag = ? AND status = 'active'",
			*accepted.ContactID, f.inviterID, "realtor").
		Count(&assignmentCount).Error)
	require.EqualValues(t, 1, clientCount)
	require.EqualValues(t, 1, assignmentCount)
}

func TestAcceptProfessionalInviteCreatesMembership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	partner, err := f.professionals.Create(ctx, professionaldomain.CreateRequest{
		Name:     "Lee Lender",
		Email:    "lee@lending.example",
		Role:     "loan_officer",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "lee@lending.example",
		TargetRole: "mortgage_professional",
	})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)

	accepted, err := f.svc.Accept(ctx, domain.AcceptRequest{
		Code:            inv.Code,
		AcceptingUserID: partner.ID,
	})
	require.NoError(t, err)
	require.Equal(t, partner.ID, *accepted.ContactID)

	var membershipCount int64
	require.NoError(t, f.db.Table("team_memberships").
		Where("professional_id = ? AND member_professional_id = ?", f.inviterID, partner.ID).
		Count(&membershipCount).Error)
	require.EqualValues(t, 1, membershipCount)
}

func TestAcceptPendingFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, domain.AcceptRequest{Code: inv.Code})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAcceptExpiredFailsWithoutSilentFlip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		TargetRole: "client",
	})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)

	f.clock.Advance(15 * 24 * time.Hour)

	_, err = f.svc.Accept(ctx, domain.AcceptRequest{Code: inv.Code})
	require.ErrorIs(t, err, domain.ErrExpired)

	// The read must not have flipped the row.
	got, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSent, got.Status)
}

// revokeWinsRepo flips the row to revoked just before the accept
// update runs, standing in for a concurrent revoke that wins the race
// between the code lookup and the status flip.
type revokeWinsRepo struct {
	domain.Repository
	db *gorm.DB
}

func (r *revokeWinsRepo) WithTx(tx *gorm.DB) domain.Repository {
	return &revokeWinsRepo{Repository: r.Repository.WithTx(tx), db: tx}
}

func (r *revokeWinsRepo) MarkAccepted(ctx context.Context, inv *domain.Invitation, acceptedAt time.Time, contactID snowflake.ID) (bool, error) {
	if err := r.db.Exec(`UPDATE invitations SET status = 'revoked' WHERE id = ?`, inv.ID).Error; err != nil {
		return false, err
	}
	return r.Repository.MarkAccepted(ctx, inv, acceptedAt, contactID)
}

func TestAcceptLosingRevokeRaceLeavesNoRelationship(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	inv, err := f.svc.Create(ctx, domain.CreateRequest{
		InviterID:  f.inviterID,
		Email:      "buyer@example.com",
		Name:       "Pat Buyer",
		TargetRole: "client",
	})
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{ID: inv.ID})
	require.NoError(t, err)

	racing := f.buildSvc(&revokeWinsRepo{
		Repository: invitationrepo.NewRepository(f.db),
		db:         f.db,
	})
	_, err = racing.Accept(ctx, domain.AcceptRequest{Code: inv.Code})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// The materialized client and assignment must roll back with the
	// failed status flip.
	var clientCount, assignmentCount int64
	require.NoError(t, f.db.Table("clients").Count(&clientCount).Error)
	require.NoError(t, f.db.Table("team_assignments").Count(&assignmentCount).Error)
	require.Zero(t, clientCount)
	require.Zero(t, assignmentCount)

	got, err := f.svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	require.NotEqual(t, domain.StatusAccepted, got.Status)
	require.Nil(t, got.ContactID)
}

func TestAcceptUnknownCode(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Accept(context.Background(), domain.AcceptRequest{Code: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestListPaginates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.Create(ctx, domain.CreateRequest{
			InviterID:  f.inviterID,
			Email:      fmt.Sprintf("buyer%d@example.com", i),
			TargetRole: "client",
		})
		require.NoError(t, err)
	}

	req := domain.ListRequest{InviterID: f.inviterID}
	req.PageSize = 2
	page1, info, err := f.svc.List(ctx, req)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.True(t, info.HasMore)

	req.PageToken = info.NextPageToken
	page2, _, err := f.svc.List(ctx, req)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.NotEqual(t, page1[0].ID, page2[0].ID)
}
