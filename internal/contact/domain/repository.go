package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// MembershipRow is a team membership joined with its counterpart profile.
type MembershipRow struct {
	TeamMembership
	CounterpartName    string
	CounterpartEmail   string
	CounterpartPhone   string
	CounterpartCompany string
	CounterpartRole    string
}

// AssignedClientRow is a client profile joined with its active assignment.
type AssignedClientRow struct {
	Client
	AssignmentID     snowflake.ID
	AssignmentStatus string
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Memberships(ctx context.Context, ownerID snowflake.ID) ([]MembershipRow, error)
	AssignedClients(ctx context.Context, ownerID snowflake.ID) ([]AssignedClientRow, error)
	ManualContacts(ctx context.Context, ownerID snowflake.ID) ([]ManualContact, error)

	InsertClient(ctx context.Context, client Client) error
	InsertManualContact(ctx context.Context, contact ManualContact) error
	InsertMembership(ctx context.Context, membership TeamMembership) error
}
