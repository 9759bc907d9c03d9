package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type AssignRequest struct {
	ClientID       snowflake.ID
	ProfessionalID snowflake.ID
	RoleTag        string
	AssignedBy     snowflake.ID
}

type UnassignRequest struct {
	ClientID       snowflake.ID
	ProfessionalID snowflake.ID
}

type Service interface {
	// WithTx returns a copy of the service whose writes run in the
	// given transaction, for callers that need assignment writes
	// atomic with their own.
	WithTx(tx *gorm.DB) Service

	// Assign attaches a professional to a client under a role tag.
	// If another professional holds the active slot for that role tag
	// the call fails with ErrRoleSlotOccupied; the previous assignment
	// is never ended implicitly.
	Assign(ctx context.Context, req AssignRequest) (TeamAssignment, error)

	// Unassign ends the matching active assignment.
	Unassign(ctx context.Context, req UnassignRequest) error
}

var (
	ErrInvalidClient       = errors.New("invalid_client")
	ErrInvalidProfessional = errors.New("invalid_professional")
	ErrInvalidRoleTag      = errors.New("invalid_role_tag")
	ErrRoleSlotOccupied    = errors.New("role_slot_occupied")
	ErrNotFound            = errors.New("assignment_not_found")
)
