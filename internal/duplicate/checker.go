// Package duplicate answers "does this email already exist in the
// owner's network?" for both the interactive pre-check and the
// authoritative check that gates invitation creation.
package duplicate

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	invitationdomain "github.com/loanridge/loanridge/internal/invitation/domain"
	"github.com/loanridge/loanridge/internal/role"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Match describes the record that makes an email a duplicate.
type Match struct {
	Kind  string // "contact" or "invitation"
	RefID snowflake.ID
	Name  string
	Email string
}

// Result is the outcome of one duplicate check.
type Result struct {
	IsDuplicate bool
	Match       *Match
}

type Checker interface {
	// Check scans the owner's live contacts and non-terminal
	// invitations for a case-insensitive email match within the given
	// category. An empty category matches everything.
	Check(ctx context.Context, ownerID snowflake.ID, email string, category contactdomain.Category) (Result, error)
}

type Params struct {
	fx.In

	Log         *zap.Logger
	Contacts    contactdomain.Service
	Invitations invitationdomain.Repository
}

type checker struct {
	log         *zap.Logger
	contacts    contactdomain.Service
	invitations invitationdomain.Repository
}

func New(p Params) Checker {
	return &checker{
		log:         p.Log.Named("duplicate.checker"),
		contacts:    p.Contacts,
		invitations: p.Invitations,
	}
}

var Module = fx.Module("duplicate.checker",
	fx.Provide(New),
)

// CategoryForRole maps an invitation target role onto the contact
// category its duplicate check is scoped to. A client invite never
// collides with a partner-professional contact at the same address.
func CategoryForRole(targetRole string) contactdomain.Category {
	if role.Normalize(targetRole) == role.Client {
		return contactdomain.CategoryClients
	}
	return contactdomain.CategoryTeam
}

func (c *checker) Check(ctx context.Context, ownerID snowflake.ID, email string, category contactdomain.Category) (Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return Result{}, contactdomain.ErrInvalidEmail
	}

	contacts, err := c.contacts.List(ctx, contactdomain.ListRequest{OwnerID: ownerID})
	if err != nil {
		return Result{}, err
	}
	for _, contact := range contacts {
		if contact.Status == contactdomain.StatusInactive {
			continue
		}
		if !strings.EqualFold(contact.Email, normalized) {
			continue
		}
		if category != contactdomain.CategoryAll && !contactdomain.InCategory(contact, category) {
			continue
		}
		match := Match{Kind: "contact", RefID: contact.ID, Name: contact.Name, Email: contact.Email}
		return Result{IsDuplicate: true, Match: &match}, nil
	}

	open, err := c.invitations.FindOpenByEmail(ctx, ownerID, normalized)
	if err != nil {
		return Result{}, err
	}
	for _, inv := range open {
		if category != contactdomain.CategoryAll && CategoryForRole(inv.TargetRole) != category {
			continue
		}
		match := Match{Kind: "invitation", RefID: inv.ID, Name: inv.Name, Email: inv.Email}
		return Result{IsDuplicate: true, Match: &match}, nil
	}

	return Result{}, nil
}
