package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/pkg/db/pagination"
)

type RecordRoleChangeRequest struct {
	UserID    snowflake.ID
	OldRole   string
	NewRole   string
	Reason    string
	ChangedBy snowflake.ID
}

type ListRoleChangesRequest struct {
	pagination.Pagination
	UserID snowflake.ID
}

type ListRoleChangesResponse struct {
	pagination.PageInfo
	Records []RoleChangeRecord `json:"records"`
}

type Service interface {
	RecordRoleChange(ctx context.Context, req RecordRoleChangeRequest) error
	ListRoleChanges(ctx context.Context, req ListRoleChangesRequest) (ListRoleChangesResponse, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidRole = errors.New("invalid_role")
)
