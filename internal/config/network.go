package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// NetworkConfig holds the invitation and delivery policy knobs that
// operators tune without redeploying.
type NetworkConfig struct {
	InviteExpiryDays     int     `mapstructure:"inviteExpiryDays"`
	DeliveryTimeoutSecs  int     `mapstructure:"deliveryTimeoutSecs"`
	InviteSendRate       float64 `mapstructure:"inviteSendRate"`
	InviteSendBurst      int     `mapstructure:"inviteSendBurst"`
	ProjectionCacheTTLms int     `mapstructure:"projectionCacheTtlMs"`
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		InviteExpiryDays:     14,
		DeliveryTimeoutSecs:  10,
		InviteSendRate:       1,
		InviteSendBurst:      20,
		ProjectionCacheTTLms: 30_000,
	}
}

// NetworkConfigHolder exposes the current NetworkConfig and follows
// file changes without restarting the process.
type NetworkConfigHolder struct {
	current atomic.Value // holds NetworkConfig
}

func NewNetworkConfigHolder() (*NetworkConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("network")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/loanridge/config")
	v.AddConfigPath("/etc/loanridge")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LOANRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		defaults := DefaultNetworkConfig()
		v.SetDefault("network.inviteExpiryDays", defaults.InviteExpiryDays)
		v.SetDefault("network.deliveryTimeoutSecs", defaults.DeliveryTimeoutSecs)
		v.SetDefault("network.inviteSendRate", defaults.InviteSendRate)
		v.SetDefault("network.inviteSendBurst", defaults.InviteSendBurst)
		v.SetDefault("network.projectionCacheTtlMs", defaults.ProjectionCacheTTLms)
	}

	holder := &NetworkConfigHolder{}

	load := func() error {
		var cfg NetworkConfig
		if err := v.UnmarshalKey("network", &cfg); err != nil {
			return err
		}
		holder.current.Store(cfg.withFallbacks())
		return nil
	}

	if err := load(); err != nil {
		return nil, err
	}

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(_ fsnotify.Event) {
			if err := load(); err != nil {
				log.Printf("network config reload failed: %v", err)
			}
		})
		v.WatchConfig()
	}

	return holder, nil
}

// Current returns the active network policy.
func (h *NetworkConfigHolder) Current() NetworkConfig {
	if h == nil {
		return DefaultNetworkConfig()
	}
	if cfg, ok := h.current.Load().(NetworkConfig); ok {
		return cfg
	}
	return DefaultNetworkConfig()
}

// InviteExpiry returns the configured invitation lifetime.
func (h *NetworkConfigHolder) InviteExpiry() time.Duration {
	return time.Duration(h.Current().InviteExpiryDays) * 24 * time.Hour
}

// DeliveryTimeout bounds each outbound delivery channel attempt.
func (h *NetworkConfigHolder) DeliveryTimeout() time.Duration {
	return time.Duration(h.Current().DeliveryTimeoutSecs) * time.Second
}

// ProjectionCacheTTL bounds how long unified-contact projections stay cached.
func (h *NetworkConfigHolder) ProjectionCacheTTL() time.Duration {
	return time.Duration(h.Current().ProjectionCacheTTLms) * time.Millisecond
}

func (c NetworkConfig) withFallbacks() NetworkConfig {
	defaults := DefaultNetworkConfig()
	if c.InviteExpiryDays <= 0 {
		c.InviteExpiryDays = defaults.InviteExpiryDays
	}
	if c.DeliveryTimeoutSecs <= 0 {
		c.DeliveryTimeoutSecs = defaults.DeliveryTimeoutSecs
	}
	if c.InviteSendRate <= 0 {
		c.InviteSendRate = defaults.InviteSendRate
	}
	if c.InviteSendBurst <= 0 {
		c.InviteSendBurst = defaults.InviteSendBurst
	}
	if c.ProjectionCacheTTLms <= 0 {
		c.ProjectionCacheTTLms = defaults.ProjectionCacheTTLms
	}
	return c
}
