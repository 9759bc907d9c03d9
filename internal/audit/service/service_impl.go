package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/audit/domain"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/role"
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
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) RecordRoleChange(ctx context.Context, req domain.RecordRoleChangeRequest) error {
	if req.UserID == 0 || req.ChangedBy == 0 {
		return domain.ErrInvalidUser
	}

	oldRole := role.Normalize(req.OldRole)
	newRole := role.Normalize(req.NewRole)

	record := domain.RoleChangeRecord{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		OldRole:   string(oldRole),
		NewRole:   string(newRole),
		Reason:    strings.TrimSpace(req.Reason),
		ChangedBy: req.ChangedBy,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return err
	}

	s.log.Info("role change recorded",
		zap.String("user_id", record.UserID.String()),
		zap.String("old_role", record.OldRole),
		zap.String("new_role", record.NewRole),
	)
	return nil
}

func (s *Service) ListRoleChanges(ctx context.Context, req domain.ListRoleChangesRequest) (domain.ListRoleChangesResponse, error) {
	if req.UserID == 0 {
		return domain.ListRoleChangesResponse{}, domain.ErrInvalidUser
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 50
	}

	records, err := s.repo.ListByUser(ctx, req.UserID, limit)
	if err != nil {
		return domain.ListRoleChangesResponse{}, err
	}

	return domain.ListRoleChangesResponse{Records: records}, nil
}
