package sms

import (
	"github.com/loanridge/loanridge/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.sms",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.SMS.APIBaseURL == "" || cfg.SMS.AccountSID == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		APIBaseURL: cfg.SMS.APIBaseURL,
		AccountSID: cfg.SMS.AccountSID,
		AuthToken:  cfg.SMS.AuthToken,
		FromNumber: cfg.SMS.FromNumber,
	})
}
