package audit

import (
	"github.com/loanridge/loanridge/internal/audit/repository"
	"github.com/loanridge/loanridge/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
