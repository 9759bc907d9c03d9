// Package authorization enforces route-level access with casbin on top
// of the pure role capability matrix.
package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/loanridge/loanridge/internal/role"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectContact      = "contact"
	ObjectInvitation   = "invitation"
	ObjectAssignment   = "assignment"
	ObjectProfessional = "professional"
	ObjectAuditLog     = "audit_log"
)

const (
	ActionContactView   = "contact.view"
	ActionContactCreate = "contact.create"

	ActionInvitationView   = "invitation.view"
	ActionInvitationCreate = "invitation.create"
	ActionInvitationSend   = "invitation.send"
	ActionInvitationRevoke = "invitation.revoke"

	ActionAssignmentCreate = "assignment.create"
	ActionAssignmentDelete = "assignment.delete"

	ActionProfessionalUpdateVisibility = "professional.update_visibility"
	ActionProfessionalUpdateRole       = "professional.update_role"

	ActionAuditLogView = "audit_log.view"
)

type Service interface {
	// Authorize checks whether the professional's role permits the
	// action on the object. The subject's role grouping is synced
	// lazily so role changes take effect without restarts.
	Authorize(ctx context.Context, professionalID snowflake.ID, professionalRole, object, action string) error
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

var Module = fx.Module("authorization.service",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

func (s *ServiceImpl) Authorize(ctx context.Context, professionalID snowflake.ID, professionalRole, object, action string) error {
	if professionalID == 0 {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("user:%s", professionalID)
	roleName := fmt.Sprintf("role:%s", role.Normalize(professionalRole))
	if err := s.ensureGrouping(subject, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

// ensureGrouping keeps the subject bound to exactly one role.
func (s *ServiceImpl) ensureGrouping(subject, roleName string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 || rule[1] == roleName {
			continue
		}
		params := make([]interface{}, 0, len(rule))
		for _, value := range rule {
			params = append(params, value)
		}
		_, _ = s.enforcer.RemoveGroupingPolicy(params...)
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:admin", ObjectContact, ActionContactView},
		{"role:admin", ObjectContact, ActionContactCreate},
		{"role:admin", ObjectInvitation, ActionInvitationView},
		{"role:admin", ObjectInvitation, ActionInvitationCreate},
		{"role:admin", ObjectInvitation, ActionInvitationSend},
		{"role:admin", ObjectInvitation, ActionInvitationRevoke},
		{"role:admin", ObjectAssignment, ActionAssignmentCreate},
		{"role:admin", ObjectAssignment, ActionAssignmentDelete},
		{"role:admin", ObjectProfessional, ActionProfessionalUpdateVisibility},
		{"role:admin", ObjectProfessional, ActionProfessionalUpdateRole},
		{"role:admin", ObjectAuditLog, ActionAuditLogView},

		{"role:realtor", ObjectContact, ActionContactView},
		{"role:realtor", ObjectContact, ActionContactCreate},
		{"role:realtor", ObjectInvitation, ActionInvitationView},
		{"role:realtor", ObjectInvitation, ActionInvitationCreate},
		{"role:realtor", ObjectInvitation, ActionInvitationSend},
		{"role:realtor", ObjectInvitation, ActionInvitationRevoke},
		{"role:realtor", ObjectAssignment, ActionAssignmentCreate},
		{"role:realtor", ObjectAssignment, ActionAssignmentDelete},
		{"role:realtor", ObjectProfessional, ActionProfessionalUpdateVisibility},

		{"role:mortgage_professional", ObjectContact, ActionContactView},
		{"role:mortgage_professional", ObjectContact, ActionContactCreate},
		{"role:mortgage_professional", ObjectInvitation, ActionInvitationView},
		{"role:mortgage_professional", ObjectInvitation, ActionInvitationCreate},
		{"role:mortgage_professional", ObjectInvitation, ActionInvitationSend},
		{"role:mortgage_professional", ObjectInvitation, ActionInvitationRevoke},
		{"role:mortgage_professional", ObjectAssignment, ActionAssignmentCreate},
		{"role:mortgage_professional", ObjectAssignment, ActionAssignmentDelete},
		{"role:mortgage_professional", ObjectProfessional, ActionProfessionalUpdateVisibility},

		{"role:client", ObjectContact, ActionContactView},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
