package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/loanridge/loanridge/internal/audit/domain"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/role"
	"github.com/loanridge/loanridge/pkg/db/pagination"
)

func (s *Server) GetProfessional(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	professional, err := s.professionalSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": professional})
}

type updateVisibilityRequest struct {
	VisibleToClients    *bool   `json:"visible_to_clients"`
	ShowcaseRole        *string `json:"showcase_role"`
	ShowcaseDescription *string `json:"showcase_description"`
}

func (s *Server) UpdateVisibility(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, ok := pathID(c)
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	// Professionals manage their own showcase; only admins touch others.
	if id != actor.ProfessionalID && role.Normalize(actor.Role) != role.Admin {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req updateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.professionalSvc.SetVisibility(c.Request.Context(), professionaldomain.SetVisibilityRequest{
		ProfessionalID:      id,
		VisibleToClients:    req.VisibleToClients,
		ShowcaseRole:        req.ShowcaseRole,
		ShowcaseDescription: req.ShowcaseDescription,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

type updateRoleRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

func (s *Server) UpdateRole(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, ok := pathID(c)
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.professionalSvc.UpdateRole(c.Request.Context(), professionaldomain.UpdateRoleRequest{
		ProfessionalID: id,
		NewRole:        req.Role,
		ChangedBy:      actor.ProfessionalID,
		Reason:         strings.TrimSpace(req.Reason),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) ListRoleChanges(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var query struct {
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.auditSvc.ListRoleChanges(c.Request.Context(), auditdomain.ListRoleChangesRequest{
		Pagination: query.Pagination,
		UserID:     id,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
