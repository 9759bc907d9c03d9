package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loanridge/loanridge/internal/actorcontext"
	assignmentdomain "github.com/loanridge/loanridge/internal/assignment/domain"
)

type createAssignmentRequest struct {
	ClientID       string `json:"client_id"`
	ProfessionalID string `json:"professional_id"`
	RoleTag        string `json:"role_tag"`
}

func (s *Server) CreateAssignment(c *gin.Context) {
	actor, ok := s.actor(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, ok := actorcontext.ParseID(req.ClientID)
	if !ok {
		AbortWithError(c, newValidationError("client_id", "invalid_client", "invalid client_id"))
		return
	}
	professionalID, ok := actorcontext.ParseID(req.ProfessionalID)
	if !ok {
		AbortWithError(c, newValidationError("professional_id", "invalid_professional", "invalid professional_id"))
		return
	}

	created, err := s.assignmentSvc.Assign(c.Request.Context(), assignmentdomain.AssignRequest{
		ClientID:       clientID,
		ProfessionalID: professionalID,
		RoleTag:        req.RoleTag,
		AssignedBy:     actor.ProfessionalID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) DeleteAssignment(c *gin.Context) {
	var query struct {
		ClientID       string `form:"client_id"`
		ProfessionalID string `form:"professional_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, ok := actorcontext.ParseID(query.ClientID)
	if !ok {
		AbortWithError(c, newValidationError("client_id", "invalid_client", "invalid client_id"))
		return
	}
	professionalID, ok := actorcontext.ParseID(query.ProfessionalID)
	if !ok {
		AbortWithError(c, newValidationError("professional_id", "invalid_professional", "invalid professional_id"))
		return
	}

	if err := s.assignmentSvc.Unassign(c.Request.Context(), assignmentdomain.UnassignRequest{
		ClientID:       clientID,
		ProfessionalID: professionalID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
