package contact

import (
	"github.com/loanridge/loanridge/internal/cache"
	"github.com/loanridge/loanridge/internal/contact/repository"
	"github.com/loanridge/loanridge/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(cache.NewProjectionCache),
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
