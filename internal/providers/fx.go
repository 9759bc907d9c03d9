package providers

import (
	"github.com/loanridge/loanridge/internal/providers/email"
	"github.com/loanridge/loanridge/internal/providers/sms"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	sms.Module,
)
