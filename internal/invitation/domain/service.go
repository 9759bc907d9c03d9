package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/pkg/db/pagination"
)

type CreateRequest struct {
	InviterID  snowflake.ID
	Email      string
	Name       string
	Phone      string
	TargetRole string
	Channels   []string
	Message    string
}

type SendRequest struct {
	ID       snowflake.ID
	Channels []string
}

type AcceptRequest struct {
	Code            string
	AcceptingUserID snowflake.ID
}

type ListRequest struct {
	InviterID snowflake.ID
	Status    Status
	pagination.Pagination
}

// SendResult carries the invitation after a dispatch attempt plus any
// per-channel warnings from channels that failed.
type SendResult struct {
	Invitation Invitation
	Warnings   []string
}

type Service interface {
	// Create normalizes the recipient email, runs the duplicate check
	// scoped to the inviter and target role, and persists a pending
	// invitation with a fresh code.
	Create(ctx context.Context, req CreateRequest) (Invitation, error)

	// Send dispatches the invitation over the requested channels. Any
	// channel success moves the invitation to sent; when every channel
	// fails the status is left untouched and ErrDeliveryFailed is
	// returned.
	Send(ctx context.Context, req SendRequest) (SendResult, error)

	// Resend re-dispatches a sent invitation with its original code.
	Resend(ctx context.Context, id snowflake.ID) (SendResult, error)

	// Revoke terminates a pending or sent invitation.
	Revoke(ctx context.Context, id snowflake.ID) (Invitation, error)

	// Accept verifies the code, checks expiry, transitions to
	// accepted, and materializes the resulting relationship.
	Accept(ctx context.Context, req AcceptRequest) (Invitation, error)

	Get(ctx context.Context, id snowflake.ID) (Invitation, error)
	List(ctx context.Context, req ListRequest) ([]Invitation, *pagination.PageInfo, error)
}
