package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invitationdomain "github.com/loanridge/loanridge/internal/invitation/domain"
	"github.com/loanridge/loanridge/internal/role"
	"github.com/loanridge/loanridge/pkg/db/pagination"
)

type createInvitationRequest struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	TargetRole string   `json:"target_role"`
	Channels   []string `json:"channels"`
	Message    string   `json:"message"`
}

func (s *Server) CreateInvitation(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.invitationSvc.Create(c.Request.Context(), invitationdomain.CreateRequest{
		InviterID:  actor.ProfessionalID,
		Email:      strings.TrimSpace(req.Email),
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		TargetRole: req.TargetRole,
		Channels:   req.Channels,
		Message:    strings.TrimSpace(req.Message),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetInvitation(c *gin.Context) {
	inv, ok := s.ownedInvitation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

func (s *Server) ListInvitations(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invitations, pageInfo, err := s.invitationSvc.List(c.Request.Context(), invitationdomain.ListRequest{
		InviterID:  actor.ProfessionalID,
		Status:     invitationdomain.Status(strings.TrimSpace(query.Status)),
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invitations, "page_info": pageInfo})
}

type sendInvitationRequest struct {
	Channels []string `json:"channels"`
}

func (s *Server) SendInvitation(c *gin.Context) {
	inv, ok := s.ownedInvitation(c)
	if !ok {
		return
	}

	var req sendInvitationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	result, err := s.invitationSvc.Send(c.Request.Context(), invitationdomain.SendRequest{
		ID:       inv.ID,
		Channels: req.Channels,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.Invitation, "warnings": result.Warnings})
}

func (s *Server) ResendInvitation(c *gin.Context) {
	inv, ok := s.ownedInvitation(c)
	if !ok {
		return
	}

	result, err := s.invitationSvc.Resend(c.Request.Context(), inv.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.Invitation, "warnings": result.Warnings})
}

func (s *Server) RevokeInvitation(c *gin.Context) {
	inv, ok := s.ownedInvitation(c)
	if !ok {
		return
	}

	revoked, err := s.invitationSvc.Revoke(c.Request.Context(), inv.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": revoked})
}

type acceptInvitationRequest struct {
	Code string `json:"code"`
}

func (s *Server) AcceptInvitation(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req acceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	accepted, err := s.invitationSvc.Accept(c.Request.Context(), invitationdomain.AcceptRequest{
		Code:            strings.TrimSpace(req.Code),
		AcceptingUserID: actor.ProfessionalID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accepted})
}

// ownedInvitation loads the path invitation and checks the actor may
// operate on it. Admins see everything; everyone else only their own.
func (s *Server) ownedInvitation(c *gin.Context) (invitationdomain.Invitation, bool) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return invitationdomain.Invitation{}, false
	}

	id, ok := pathID(c)
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return invitationdomain.Invitation{}, false
	}

	inv, err := s.invitationSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return invitationdomain.Invitation{}, false
	}

	if inv.ProfessionalID != actor.ProfessionalID && role.Normalize(actor.Role) != role.Admin {
		AbortWithError(c, ErrForbidden)
		return invitationdomain.Invitation{}, false
	}
	return inv, true
}
