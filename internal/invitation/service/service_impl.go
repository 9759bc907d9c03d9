package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/bwmarrin/snowflake"
	assignmentdomain "github.com/loanridge/loanridge/internal/assignment/domain"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	"github.com/loanridge/loanridge/internal/delivery"
	"github.com/loanridge/loanridge/internal/duplicate"
	"github.com/loanridge/loanridge/internal/invitation/domain"
	"github.com/loanridge/loanridge/internal/observability/metrics"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/ratelimit"
	"github.com/loanridge/loanridge/internal/role"
	pkgdb "github.com/loanridge/loanridge/pkg/db"
	"github.com/loanridge/loanridge/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const inviteCodeBytes = 9

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	Checker       duplicate.Checker
	Dispatcher    delivery.Dispatcher
	Network       *config.NetworkConfigHolder
	Limiter       *ratelimit.InviteSendLimiter
	Metrics       *metrics.Metrics `optional:"true"`
	Contacts      contactdomain.Service
	Assignments   assignmentdomain.Service
	Professionals professionaldomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	checker       duplicate.Checker
	dispatcher    delivery.Dispatcher
	network       *config.NetworkConfigHolder
	limiter       *ratelimit.InviteSendLimiter
	metrics       *metrics.Metrics
	contacts      contactdomain.Service
	assignments   assignmentdomain.Service
	professionals professionaldomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("invitation.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		checker:       p.Checker,
		dispatcher:    p.Dispatcher,
		network:       p.Network,
		limiter:       p.Limiter,
		metrics:       p.Metrics,
		contacts:      p.Contacts,
		assignments:   p.Assignments,
		professionals: p.Professionals,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Invitation, error) {
	if req.InviterID == 0 {
		return domain.Invitation{}, domain.ErrInvalidInviter
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Invitation{}, domain.ErrInvalidEmail
	}
	targetRole := role.Normalize(req.TargetRole)
	if targetRole == role.Admin {
		return domain.Invitation{}, domain.ErrInvalidRole
	}

	channels, err := normalizeChannels(req.Channels)
	if err != nil {
		return domain.Invitation{}, err
	}

	check, err := s.checker.Check(ctx, req.InviterID, email, duplicate.CategoryForRole(string(targetRole)))
	if err != nil {
		return domain.Invitation{}, err
	}
	if check.IsDuplicate {
		return domain.Invitation{}, &domain.DuplicateError{
			Kind:  check.Match.Kind,
			RefID: check.Match.RefID,
			Email: email,
		}
	}

	code, err := randomCode()
	if err != nil {
		return domain.Invitation{}, err
	}

	now := s.clock.Now()
	invitation := domain.Invitation{
		ID:             s.genID.Generate(),
		ProfessionalID: req.InviterID,
		Email:          email,
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		TargetRole:     string(targetRole),
		Channels:       channels,
		Message:        strings.TrimSpace(req.Message),
		Code:           code,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.network.InviteExpiry()),
	}

	// The advisory check above can race a concurrent create; the
	// partial unique index over open invitations settles the winner.
	if err := s.repo.Insert(ctx, invitation); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Invitation{}, s.duplicateFromOpen(ctx, req.InviterID, email)
		}
		return domain.Invitation{}, err
	}

	s.metrics.RecordInviteCreated()
	s.log.Info("invitation created",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("inviter_id", req.InviterID.String()),
		zap.String("target_role", invitation.TargetRole),
	)
	return invitation, nil
}

func (s *Service) duplicateFromOpen(ctx context.Context, inviterID snowflake.ID, email string) error {
	open, err := s.repo.FindOpenByEmail(ctx, inviterID, email)
	if err == nil && len(open) > 0 {
		return &domain.DuplicateError{Kind: "invitation", RefID: open[0].ID, Email: email}
	}
	return &domain.DuplicateError{Kind: "invitation", Email: email}
}

func (s *Service) Send(ctx context.Context, req domain.SendRequest) (domain.SendResult, error) {
	invitation, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return domain.SendResult{}, err
	}
	if invitation == nil {
		return domain.SendResult{}, domain.ErrNotFound
	}
	return s.dispatch(ctx, invitation, req.Channels)
}

func (s *Service) Resend(ctx context.Context, id snowflake.ID) (domain.SendResult, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.SendResult{}, err
	}
	if invitation == nil {
		return domain.SendResult{}, domain.ErrNotFound
	}
	if invitation.Status != domain.StatusSent {
		return domain.SendResult{}, domain.ErrInvalidTransition
	}
	// Resend keeps the original code.
	return s.dispatch(ctx, invitation, invitation.Channels)
}

func (s *Service) dispatch(ctx context.Context, invitation *domain.Invitation, channels []string) (domain.SendResult, error) {
	if invitation.Status.IsTerminal() {
		return domain.SendResult{}, domain.ErrInvalidTransition
	}
	if invitation.Expired(s.clock.Now()) {
		return domain.SendResult{}, domain.ErrExpired
	}

	if len(channels) == 0 {
		channels = invitation.Channels
	}
	channels, err := normalizeChannels(channels)
	if err != nil {
		return domain.SendResult{}, err
	}

	allowed, err := s.limiter.AllowSend(ctx, invitation.ProfessionalID)
	if err != nil {
		s.log.Warn("invite send limiter unavailable", zap.Error(err))
	} else if !allowed {
		return domain.SendResult{}, domain.ErrRateLimited
	}

	inviterName := ""
	if inviter, err := s.professionals.Get(ctx, invitation.ProfessionalID); err == nil {
		inviterName = inviter.Name
	}

	result := s.dispatcher.Dispatch(ctx, delivery.Request{
		Channels:    channels,
		Email:       invitation.Email,
		Phone:       invitation.Phone,
		InviteeName: invitation.Name,
		InviterName: inviterName,
		TargetRole:  invitation.TargetRole,
		Message:     invitation.Message,
		Code:        invitation.Code,
	})
	if result.AllFailed(channels) {
		// Delivery trouble is not a state-machine event: the
		// invitation stays where it was.
		return domain.SendResult{Invitation: *invitation, Warnings: result.Warnings}, domain.ErrDeliveryFailed
	}

	ok, err := s.repo.MarkSent(ctx, invitation, result.EmailSent, result.SMSSent, s.clock.Now())
	if err != nil {
		return domain.SendResult{}, err
	}
	if !ok {
		return domain.SendResult{}, domain.ErrInvalidTransition
	}

	s.log.Info("invitation dispatched",
		zap.String("invitation_id", invitation.ID.String()),
		zap.Bool("email_sent", result.EmailSent),
		zap.Bool("sms_sent", result.SMSSent),
		zap.Int("warnings", len(result.Warnings)),
	)
	return domain.SendResult{Invitation: *invitation, Warnings: result.Warnings}, nil
}

func (s *Service) Revoke(ctx context.Context, id snowflake.ID) (domain.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}
	if invitation == nil {
		return domain.Invitation{}, domain.ErrNotFound
	}
	if invitation.Status.IsTerminal() {
		return domain.Invitation{}, domain.ErrInvalidTransition
	}

	ok, err := s.repo.MarkRevoked(ctx, invitation)
	if err != nil {
		return domain.Invitation{}, err
	}
	if !ok {
		return domain.Invitation{}, domain.ErrInvalidTransition
	}

	s.log.Info("invitation revoked", zap.String("invitation_id", invitation.ID.String()))
	return *invitation, nil
}

func (s *Service) Accept(ctx context.Context, req domain.AcceptRequest) (domain.Invitation, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Invitation{}, domain.ErrInvalidCode
	}

	invitation, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Invitation{}, err
	}
	if invitation == nil {
		return domain.Invitation{}, domain.ErrInvalidCode
	}
	if invitation.Status != domain.StatusSent {
		return domain.Invitation{}, domain.ErrInvalidTransition
	}
	// Expiry is checked lazily here; the row is never flipped to
	// expired as a side effect of the read.
	if invitation.Expired(s.clock.Now()) {
		return domain.Invitation{}, domain.ErrExpired
	}

	// Materialization and the status flip commit together: if a
	// concurrent revoke wins the race the guarded update matches no
	// row and the new relationship rolls back with it.
	var contactID snowflake.ID
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		contactID, err = s.materialize(ctx, tx, invitation, req.AcceptingUserID)
		if err != nil {
			return err
		}
		ok, err := s.repo.WithTx(tx).MarkAccepted(ctx, invitation, s.clock.Now(), contactID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		return nil
	}); err != nil {
		return domain.Invitation{}, err
	}

	s.metrics.RecordInviteAccepted()
	s.log.Info("invitation accepted",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("contact_id", contactID.String()),
	)
	return *invitation, nil
}

// materialize creates the relationship an accepted invitation implies:
// a client profile plus team assignment for client invites, a team
// membership for professional invites. All writes go through the
// caller's transaction.
func (s *Service) materialize(ctx context.Context, tx *gorm.DB, invitation *domain.Invitation, acceptingUserID snowflake.ID) (snowflake.ID, error) {
	targetRole := role.Normalize(invitation.TargetRole)
	contacts := s.contacts.WithTx(tx)

	if targetRole == role.Client {
		client, err := contacts.CreateClient(ctx, contactdomain.CreateClientRequest{
			Name:  invitation.Name,
			Email: invitation.Email,
			Phone: invitation.Phone,
		})
		if err != nil {
			return 0, err
		}

		inviter, err := s.professionals.Get(ctx, invitation.ProfessionalID)
		if err != nil {
			return 0, err
		}
		if tag := roleTagFor(inviter.Role); tag != "" {
			_, err = s.assignments.WithTx(tx).Assign(ctx, assignmentdomain.AssignRequest{
				ClientID:       client.ID,
				ProfessionalID: invitation.ProfessionalID,
				RoleTag:        tag,
				AssignedBy:     invitation.ProfessionalID,
			})
			if err != nil {
				return 0, err
			}
		}
		return client.ID, nil
	}

	if acceptingUserID == 0 {
		return 0, domain.ErrInvalidInviter
	}
	_, err := contacts.LinkMembership(ctx, contactdomain.LinkMembershipRequest{
		ProfessionalID:       invitation.ProfessionalID,
		MemberProfessionalID: acceptingUserID,
	})
	if err != nil && err != contactdomain.ErrAlreadyLinked {
		return 0, err
	}
	return acceptingUserID, nil
}

func roleTagFor(inviterRole string) string {
	switch role.Normalize(inviterRole) {
	case role.Realtor:
		return assignmentdomain.RoleTagRealtor
	case role.MortgageProfessional:
		return assignmentdomain.RoleTagMortgageProfessional
	}
	return ""
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, err
	}
	if invitation == nil {
		return domain.Invitation{}, domain.ErrNotFound
	}
	return *invitation, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Invitation, *pagination.PageInfo, error) {
	if req.InviterID == 0 {
		return nil, nil, domain.ErrInvalidInviter
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 50
	}

	var cursorID snowflake.ID
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, nil, err
		}
		if id, err := snowflake.ParseString(cursor.ID); err == nil {
			cursorID = id
		}
	}

	invitations, err := s.repo.List(ctx, req.InviterID, req.Status, cursorID, limit+1)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := &pagination.PageInfo{}
	if len(invitations) > limit {
		invitations = invitations[:limit]
		pageInfo.HasMore = true
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID: invitations[len(invitations)-1].ID.String(),
		})
		if err != nil {
			return nil, nil, err
		}
		pageInfo.NextPageToken = token
	}
	return invitations, pageInfo, nil
}

func normalizeChannels(channels []string) ([]string, error) {
	if len(channels) == 0 {
		return []string{delivery.ChannelEmail}, nil
	}
	seen := make(map[string]bool, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		normalized := strings.ToLower(strings.TrimSpace(ch))
		switch normalized {
		case delivery.ChannelEmail, delivery.ChannelSMS:
		default:
			return nil, domain.ErrInvalidChannel
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out, nil
}

func randomCode() (string, error) {
	buf := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
