package invitation

import (
	"github.com/loanridge/loanridge/internal/invitation/repository"
	"github.com/loanridge/loanridge/internal/invitation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invitation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
