package auth

import (
	"github.com/loanridge/loanridge/internal/auth/repository"
	"github.com/loanridge/loanridge/internal/auth/service"
	"github.com/loanridge/loanridge/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	session.Module,
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
