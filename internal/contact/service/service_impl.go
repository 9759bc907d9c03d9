package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/cache"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	"github.com/loanridge/loanridge/internal/contact/domain"
	pkgdb "github.com/loanridge/loanridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Cache   cache.ProjectionCache
	Network *config.NetworkConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	cache   cache.ProjectionCache
	network *config.NetworkConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("contact.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		cache:   p.Cache,
		network: p.Network,
	}
}

// WithTx returns a copy of the service whose writes run in the given
// transaction.
func (s *Service) WithTx(tx *gorm.DB) domain.Service {
	bound := *s
	bound.db = tx
	bound.repo = s.repo.WithTx(tx)
	return &bound
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Contact, error) {
	if req.OwnerID == 0 {
		return nil, domain.ErrInvalidOwner
	}
	if !validCategory(req.Category) {
		return nil, domain.ErrInvalidCategory
	}

	projection, err := s.projection(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	out := make([]domain.Contact, 0, len(projection))
	for _, contact := range projection {
		if !domain.InCategory(contact, req.Category) {
			continue
		}
		if query != "" && !matchesQuery(contact, query) {
			continue
		}
		out = append(out, contact)
	}
	return out, nil
}

// projection computes the unified contact set for an owner, serving from
// cache when a fresh copy exists. Every source row classifies to exactly
// one relationship type.
func (s *Service) projection(ctx context.Context, ownerID snowflake.ID) ([]domain.Contact, error) {
	if cached, ok := s.cache.Get(ownerID); ok {
		return cached, nil
	}

	memberships, err := s.repo.Memberships(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.repo.AssignedClients(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	manual, err := s.repo.ManualContacts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.Contact, 0, len(memberships)+len(clients)+len(manual))
	for _, row := range memberships {
		contacts = append(contacts, domain.Contact{
			ID:               row.ID,
			ContactType:      domain.TypeProfessional,
			RelationshipType: domain.ClassifyMembership(row.RelationshipType, row.CounterpartRole),
			Name:             row.CounterpartName,
			Email:            row.CounterpartEmail,
			Phone:            row.CounterpartPhone,
			Company:          row.CounterpartCompany,
			Status:           row.Status,
			Source:           domain.SourceMembership,
			CreatedAt:        row.CreatedAt,
		})
	}
	for _, row := range clients {
		contacts = append(contacts, domain.Contact{
			ID:               row.ID,
			ContactType:      domain.TypeClient,
			RelationshipType: domain.RelClient,
			Name:             row.Name,
			Email:            row.Email,
			Phone:            row.Phone,
			Status:           row.Status,
			Source:           domain.SourceAssignment,
			CreatedAt:        row.CreatedAt,
		})
	}
	for _, row := range manual {
		contacts = append(contacts, domain.Contact{
			ID:               row.ID,
			ContactType:      domain.TypeProfessional,
			RelationshipType: domain.ClassifyManual(row.RelationshipType, row.ContactKind),
			Name:             row.Name,
			Email:            row.Email,
			Phone:            row.Phone,
			Company:          row.Company,
			Status:           row.Status,
			Source:           domain.SourceManual,
			CreatedAt:        row.CreatedAt,
		})
	}

	s.cache.Set(ownerID, contacts, s.network.ProjectionCacheTTL())
	return contacts, nil
}

func (s *Service) CreateManualContact(ctx context.Context, req domain.CreateManualContactRequest) (domain.ManualContact, error) {
	if req.OwnerID == 0 {
		return domain.ManualContact{}, domain.ErrInvalidOwner
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ManualContact{}, domain.ErrInvalidName
	}
	email := normalizeEmail(req.Email)
	if req.Email != "" && email == "" {
		return domain.ManualContact{}, domain.ErrInvalidEmail
	}

	contact := domain.ManualContact{
		ID:                  s.genID.Generate(),
		OwnerProfessionalID: req.OwnerID,
		Name:                name,
		Email:               email,
		Phone:               strings.TrimSpace(req.Phone),
		Company:             strings.TrimSpace(req.Company),
		ContactKind:         strings.ToLower(strings.TrimSpace(req.ContactKind)),
		RelationshipType:    strings.ToLower(strings.TrimSpace(req.RelationshipType)),
		Status:              domain.StatusActive,
		CreatedAt:           s.clock.Now(),
	}

	if err := s.repo.InsertManualContact(ctx, contact); err != nil {
		return domain.ManualContact{}, err
	}

	s.cache.Invalidate(req.OwnerID)
	return contact, nil
}

func (s *Service) CreateClient(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Client{}, domain.ErrInvalidEmail
	}

	client := domain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Status:    domain.StatusActive,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.InsertClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) LinkMembership(ctx context.Context, req domain.LinkMembershipRequest) (domain.TeamMembership, error) {
	if req.ProfessionalID == 0 || req.MemberProfessionalID == 0 {
		return domain.TeamMembership{}, domain.ErrInvalidOwner
	}

	membership := domain.TeamMembership{
		ID:                   s.genID.Generate(),
		ProfessionalID:       req.ProfessionalID,
		MemberProfessionalID: req.MemberProfessionalID,
		RelationshipType:     strings.ToLower(strings.TrimSpace(req.RelationshipType)),
		Status:               domain.StatusActive,
		CreatedAt:            s.clock.Now(),
	}

	if err := s.repo.InsertMembership(ctx, membership); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.TeamMembership{}, domain.ErrAlreadyLinked
		}
		return domain.TeamMembership{}, err
	}

	s.cache.Invalidate(req.ProfessionalID, req.MemberProfessionalID)
	return membership, nil
}

func validCategory(category domain.Category) bool {
	switch category {
	case domain.CategoryAll, domain.CategoryClients, domain.CategoryTeam, domain.CategoryVendors, domain.CategoryPending:
		return true
	default:
		return false
	}
}

func matchesQuery(c domain.Contact, query string) bool {
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Company} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
