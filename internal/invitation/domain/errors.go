package domain

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound              = errors.New("invitation_not_found")
	ErrInvalidTransition     = errors.New("invalid_transition")
	ErrExpired               = errors.New("invitation_expired")
	ErrDeliveryFailed        = errors.New("delivery_failed")
	ErrDuplicateRelationship = errors.New("duplicate_relationship")

	ErrInvalidInviter = errors.New("invalid_inviter")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidRole    = errors.New("invalid_target_role")
	ErrInvalidChannel = errors.New("invalid_channel")
	ErrInvalidCode    = errors.New("invalid_code")
	ErrRateLimited    = errors.New("rate_limited")
)

// DuplicateError reports the existing record that blocks a create. It
// unwraps to ErrDuplicateRelationship so callers can match with
// errors.Is while still reaching the conflicting reference.
type DuplicateError struct {
	// Kind is "contact" or "invitation".
	Kind  string
	RefID snowflake.ID
	Email string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate_relationship: %s %s already exists for %s", e.Kind, e.RefID, e.Email)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateRelationship }
