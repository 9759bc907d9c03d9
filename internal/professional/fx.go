package professional

import (
	"github.com/loanridge/loanridge/internal/professional/repository"
	"github.com/loanridge/loanridge/internal/professional/service"
	"go.uber.org/fx"
)

var Module = fx.Module("professional.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
