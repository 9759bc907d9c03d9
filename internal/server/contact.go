package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	"github.com/loanridge/loanridge/internal/duplicate"
)

func (s *Server) ListContacts(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		Category string `form:"category"`
		Q        string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	contacts, err := s.contactSvc.List(c.Request.Context(), contactdomain.ListRequest{
		OwnerID:  actor.ProfessionalID,
		Category: contactdomain.Category(strings.TrimSpace(query.Category)),
		Query:    strings.TrimSpace(query.Q),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": contacts})
}

type createManualContactRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	ContactKind      string `json:"contact_kind"`
	RelationshipType string `json:"relationship_type"`
}

func (s *Server) CreateManualContact(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createManualContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.contactSvc.CreateManualContact(c.Request.Context(), contactdomain.CreateManualContactRequest{
		OwnerID:          actor.ProfessionalID,
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Company:          strings.TrimSpace(req.Company),
		ContactKind:      strings.TrimSpace(req.ContactKind),
		RelationshipType: strings.TrimSpace(req.RelationshipType),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) CheckDuplicate(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		Email      string `form:"email"`
		TargetRole string `form:"target_role"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.checker.Check(
		c.Request.Context(),
		actor.ProfessionalID,
		strings.TrimSpace(query.Email),
		duplicate.CategoryForRole(query.TargetRole),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
