package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/loanridge/loanridge/internal/actorcontext"
	obscontext "github.com/loanridge/loanridge/internal/observability/context"
)

// AuthRequired resolves the session cookie and stores the acting
// professional on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		professional, err := s.authsvc.Resolve(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := actorcontext.WithActor(c.Request.Context(), actorcontext.Actor{
			ProfessionalID: professional.ID,
			Role:           professional.Role,
		})
		ctx = obscontext.WithActor(ctx, "professional", professional.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize gates a route on the actor's role policy.
func (s *Server) Authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorcontext.ActorFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.authzSvc.Authorize(c.Request.Context(), actor.ProfessionalID, actor.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) actor(c *gin.Context) (actorcontext.Actor, bool) {
	return actorcontext.ActorFromContext(c.Request.Context())
}

func pathID(c *gin.Context) (snowflake.ID, bool) {
	return actorcontext.ParseID(c.Param("id"))
}
