package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListRequest struct {
	OwnerID  snowflake.ID
	Category Category
	Query    string
}

type CreateManualContactRequest struct {
	OwnerID          snowflake.ID
	Name             string
	Email            string
	Phone            string
	Company          string
	ContactKind      string
	RelationshipType string
}

type CreateClientRequest struct {
	Name  string
	Email string
	Phone string
}

type LinkMembershipRequest struct {
	ProfessionalID       snowflake.ID
	MemberProfessionalID snowflake.ID
	RelationshipType     string
}

type Service interface {
	// WithTx returns a copy of the service whose writes run in the
	// given transaction, for callers that need contact writes atomic
	// with their own.
	WithTx(tx *gorm.DB) Service

	// List returns the unified projection for an owner, optionally
	// filtered by category and a case-insensitive substring query.
	List(ctx context.Context, req ListRequest) ([]Contact, error)

	CreateManualContact(ctx context.Context, req CreateManualContactRequest) (ManualContact, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (Client, error)
	LinkMembership(ctx context.Context, req LinkMembershipRequest) (TeamMembership, error)
}

var (
	ErrInvalidOwner    = errors.New("invalid_owner")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrAlreadyLinked   = errors.New("already_linked")
)
