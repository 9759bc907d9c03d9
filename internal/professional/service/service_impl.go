package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	auditdomain "github.com/loanridge/loanridge/internal/audit/domain"
	"github.com/loanridge/loanridge/internal/auth/password"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/role"
	pkgdb "github.com/loanridge/loanridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 10

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Audit auditdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("professional.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		audit: p.Audit,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Professional, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Professional{}, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Professional{}, domain.ErrInvalidEmail
	}
	normalized := role.Normalize(req.Role)
	if !normalized.IsProfessional() {
		return domain.Professional{}, domain.ErrInvalidRole
	}
	if len(req.Password) < minPasswordLen {
		return domain.Professional{}, domain.ErrWeakPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.Professional{}, err
	}

	id := s.genID.Generate()
	now := s.clock.Now()
	professional := domain.Professional{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            strings.TrimSpace(req.Phone),
		Company:          strings.TrimSpace(req.Company),
		Slug:             fmt.Sprintf("%s-%s", slug.Make(name), id),
		Role:             string(normalized),
		PasswordHash:     hash,
		VisibleToClients: true,
		Status:           domain.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, professional); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Professional{}, domain.ErrEmailTaken
		}
		return domain.Professional{}, err
	}

	s.log.Info("professional registered",
		zap.String("professional_id", professional.ID.String()),
		zap.String("role", professional.Role),
	)
	return professional, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.Professional, error) {
	professional, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Professional{}, err
	}
	if professional == nil {
		return domain.Professional{}, domain.ErrNotFound
	}
	return *professional, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Professional, error) {
	professional, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.Professional{}, err
	}
	if professional == nil {
		return domain.Professional{}, domain.ErrNotFound
	}
	return *professional, nil
}

func (s *Service) SetVisibility(ctx context.Context, req domain.SetVisibilityRequest) (domain.Professional, error) {
	professional, err := s.repo.FindByID(ctx, req.ProfessionalID)
	if err != nil {
		return domain.Professional{}, err
	}
	if professional == nil {
		return domain.Professional{}, domain.ErrNotFound
	}

	if req.VisibleToClients != nil {
		professional.VisibleToClients = *req.VisibleToClients
	}
	if req.ShowcaseRole != nil {
		professional.ShowcaseRole = strings.TrimSpace(*req.ShowcaseRole)
	}
	if req.ShowcaseDescription != nil {
		professional.ShowcaseDescription = strings.TrimSpace(*req.ShowcaseDescription)
	}
	professional.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, professional); err != nil {
		return domain.Professional{}, err
	}
	return *professional, nil
}

func (s *Service) UpdateRole(ctx context.Context, req domain.UpdateRoleRequest) (domain.Professional, error) {
	if req.ChangedBy == 0 {
		return domain.Professional{}, domain.ErrInvalidChanger
	}
	newRole := role.Normalize(req.NewRole)
	if !newRole.IsProfessional() && newRole != role.Admin {
		return domain.Professional{}, domain.ErrInvalidRole
	}

	professional, err := s.repo.FindByID(ctx, req.ProfessionalID)
	if err != nil {
		return domain.Professional{}, err
	}
	if professional == nil {
		return domain.Professional{}, domain.ErrNotFound
	}

	oldRole := professional.Role
	if oldRole == string(newRole) {
		return *professional, nil
	}

	professional.Role = string(newRole)
	professional.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, professional); err != nil {
		return domain.Professional{}, err
	}
	if err := s.audit.RecordRoleChange(ctx, auditdomain.RecordRoleChangeRequest{
		UserID:    professional.ID,
		OldRole:   oldRole,
		NewRole:   string(newRole),
		Reason:    req.Reason,
		ChangedBy: req.ChangedBy,
	}); err != nil {
		return domain.Professional{}, err
	}

	s.log.Info("professional role changed",
		zap.String("professional_id", professional.ID.String()),
		zap.String("old_role", oldRole),
		zap.String("new_role", professional.Role),
		zap.String("changed_by", req.ChangedBy.String()),
	)
	return *professional, nil
}
