package assignment

import (
	"github.com/loanridge/loanridge/internal/assignment/repository"
	"github.com/loanridge/loanridge/internal/assignment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assignment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
