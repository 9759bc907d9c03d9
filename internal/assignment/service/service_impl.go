package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/assignment/domain"
	"github.com/loanridge/loanridge/internal/cache"
	"github.com/loanridge/loanridge/internal/clock"
	pkgdb "github.com/loanridge/loanridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Cache cache.ProjectionCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	cache cache.ProjectionCache
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("assignment.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
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

func (s *Service) Assign(ctx context.Context, req domain.AssignRequest) (domain.TeamAssignment, error) {
	if req.ClientID == 0 {
		return domain.TeamAssignment{}, domain.ErrInvalidClient
	}
	if req.ProfessionalID == 0 || req.AssignedBy == 0 {
		return domain.TeamAssignment{}, domain.ErrInvalidProfessional
	}
	roleTag := strings.ToLower(strings.TrimSpace(req.RoleTag))
	if roleTag == "" {
		return domain.TeamAssignment{}, domain.ErrInvalidRoleTag
	}

	existing, err := s.repo.FindActive(ctx, req.ClientID, roleTag)
	if err != nil {
		return domain.TeamAssignment{}, err
	}
	if existing != nil {
		return domain.TeamAssignment{}, domain.ErrRoleSlotOccupied
	}

	assignment := domain.TeamAssignment{
		ID:             s.genID.Generate(),
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		RoleTag:        roleTag,
		AssignedBy:     req.AssignedBy,
		Status:         domain.StatusActive,
		CreatedAt:      s.clock.Now(),
	}

	// The partial unique index on (client_id, role_tag) for active rows
	// is the authoritative guard; the read above is advisory only.
	if err := s.repo.Insert(ctx, assignment); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.TeamAssignment{}, domain.ErrRoleSlotOccupied
		}
		return domain.TeamAssignment{}, err
	}

	s.cache.Invalidate(req.ProfessionalID, req.AssignedBy)

	s.log.Info("team assignment created",
		zap.String("client_id", assignment.ClientID.String()),
		zap.String("professional_id", assignment.ProfessionalID.String()),
		zap.String("role_tag", assignment.RoleTag),
	)
	return assignment, nil
}

func (s *Service) Unassign(ctx context.Context, req domain.UnassignRequest) error {
	if req.ClientID == 0 {
		return domain.ErrInvalidClient
	}
	if req.ProfessionalID == 0 {
		return domain.ErrInvalidProfessional
	}

	assignment, err := s.repo.FindActiveByPair(ctx, req.ClientID, req.ProfessionalID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return domain.ErrNotFound
	}

	ended, err := s.repo.End(ctx, assignment, s.clock.Now())
	if err != nil {
		return err
	}
	if !ended {
		// Lost a race with another unassign.
		return domain.ErrNotFound
	}

	s.cache.Invalidate(req.ProfessionalID, assignment.AssignedBy)

	s.log.Info("team assignment ended",
		zap.String("client_id", assignment.ClientID.String()),
		zap.String("professional_id", assignment.ProfessionalID.String()),
		zap.String("role_tag", assignment.RoleTag),
	)
	return nil
}
