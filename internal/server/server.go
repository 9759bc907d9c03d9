package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/loanridge/loanridge/internal/assignment"
	assignmentdomain "github.com/loanridge/loanridge/internal/assignment/domain"
	"github.com/loanridge/loanridge/internal/audit"
	auditdomain "github.com/loanridge/loanridge/internal/audit/domain"
	"github.com/loanridge/loanridge/internal/auth"
	authdomain "github.com/loanridge/loanridge/internal/auth/domain"
	"github.com/loanridge/loanridge/internal/auth/session"
	"github.com/loanridge/loanridge/internal/authorization"
	"github.com/loanridge/loanridge/internal/config"
	"github.com/loanridge/loanridge/internal/contact"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	"github.com/loanridge/loanridge/internal/delivery"
	"github.com/loanridge/loanridge/internal/duplicate"
	"github.com/loanridge/loanridge/internal/invitation"
	invitationdomain "github.com/loanridge/loanridge/internal/invitation/domain"
	"github.com/loanridge/loanridge/internal/observability"
	obsmiddleware "github.com/loanridge/loanridge/internal/observability/logger"
	obsmetrics "github.com/loanridge/loanridge/internal/observability/metrics"
	obstracing "github.com/loanridge/loanridge/internal/observability/tracing"
	"github.com/loanridge/loanridge/internal/professional"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/providers"
	"github.com/loanridge/loanridge/internal/ratelimit"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	authorization.Module,
	audit.Module,
	auth.Module,
	contact.Module,
	duplicate.Module,
	providers.Module,
	delivery.Module,
	ratelimit.Module,
	assignment.Module,
	invitation.Module,
	professional.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	genID           *snowflake.Node
	authsvc         authdomain.Service
	sessions        *session.Manager
	authzSvc        authorization.Service
	auditSvc        auditdomain.Service
	contactSvc      contactdomain.Service
	checker         duplicate.Checker
	invitationSvc   invitationdomain.Service
	assignmentSvc   assignmentdomain.Service
	professionalSvc professionaldomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	GenID           *snowflake.Node
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	AuthzSvc        authorization.Service
	AuditSvc        auditdomain.Service
	ContactSvc      contactdomain.Service
	Checker         duplicate.Checker
	InvitationSvc   invitationdomain.Service
	AssignmentSvc   assignmentdomain.Service
	ProfessionalSvc professionaldomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		genID:           p.GenID,
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		authzSvc:        p.AuthzSvc,
		auditSvc:        p.AuditSvc,
		contactSvc:      p.ContactSvc,
		checker:         p.Checker,
		invitationSvc:   p.InvitationSvc,
		assignmentSvc:   p.AssignmentSvc,
		professionalSvc: p.ProfessionalSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Contacts --------
	api.GET("/contacts", s.Authorize(authorization.ObjectContact, authorization.ActionContactView), s.ListContacts)
	api.POST("/contacts", s.Authorize(authorization.ObjectContact, authorization.ActionContactCreate), s.CreateManualContact)
	api.GET("/contacts/duplicate-check", s.Authorize(authorization.ObjectContact, authorization.ActionContactView), s.CheckDuplicate)

	// -------- Invitations --------
	api.GET("/invitations", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationView), s.ListInvitations)
	api.POST("/invitations", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationCreate), s.CreateInvitation)
	api.GET("/invitations/:id", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationView), s.GetInvitation)
	api.POST("/invitations/:id/send", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationSend), s.SendInvitation)
	api.POST("/invitations/:id/resend", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationSend), s.ResendInvitation)
	api.POST("/invitations/:id/revoke", s.Authorize(authorization.ObjectInvitation, authorization.ActionInvitationRevoke), s.RevokeInvitation)

	// Any authenticated user may redeem a code addressed to them.
	api.POST("/invitations/accept", s.AcceptInvitation)

	// -------- Assignments --------
	api.POST("/assignments", s.Authorize(authorization.ObjectAssignment, authorization.ActionAssignmentCreate), s.CreateAssignment)
	api.DELETE("/assignments", s.Authorize(authorization.ObjectAssignment, authorization.ActionAssignmentDelete), s.DeleteAssignment)

	// -------- Professionals --------
	api.GET("/professionals/:id", s.GetProfessional)
	api.PATCH("/professionals/:id/visibility", s.Authorize(authorization.ObjectProfessional, authorization.ActionProfessionalUpdateVisibility), s.UpdateVisibility)
	api.PATCH("/professionals/:id/role", s.Authorize(authorization.ObjectProfessional, authorization.ActionProfessionalUpdateRole), s.UpdateRole)
	api.GET("/professionals/:id/role-changes", s.Authorize(authorization.ObjectAuditLog, authorization.ActionAuditLogView), s.ListRoleChanges)
}
