package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateRequest struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Role     string
	Password string
}

// SetVisibilityRequest carries a partial update: nil fields are left
// unchanged rather than cleared.
type SetVisibilityRequest struct {
	ProfessionalID      snowflake.ID
	VisibleToClients    *bool
	ShowcaseRole        *string
	ShowcaseDescription *string
}

type UpdateRoleRequest struct {
	ProfessionalID snowflake.ID
	NewRole        string
	ChangedBy      snowflake.ID
	Reason         string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Professional, error)
	Get(ctx context.Context, id snowflake.ID) (Professional, error)
	GetByEmail(ctx context.Context, email string) (Professional, error)

	// SetVisibility applies a partial showcase update. Repeated calls
	// with the same input are idempotent.
	SetVisibility(ctx context.Context, req SetVisibilityRequest) (Professional, error)

	// UpdateRole normalizes and stores the new role, recording an
	// audit entry of who changed what and why.
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (Professional, error)
}

var (
	ErrNotFound       = errors.New("professional_not_found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidRole    = errors.New("invalid_role")
	ErrEmailTaken     = errors.New("email_taken")
	ErrWeakPassword   = errors.New("weak_password")
	ErrInvalidChanger = errors.New("invalid_changer")
)
