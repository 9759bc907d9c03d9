package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyInviteSend = "invite:send:%s"

// InviteSendLimiter throttles outbound invitation deliveries per
// inviter. When redis is not configured the limiter is disabled and
// every send is allowed.
type InviteSendLimiter struct {
	enabled bool
	bucket  *TokenBucket
	network *config.NetworkConfigHolder
}

func NewInviteSendLimiter(cfg config.Config, network *config.NetworkConfigHolder) *InviteSendLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &InviteSendLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &InviteSendLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		network: network,
	}
}

func (l *InviteSendLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *InviteSendLimiter) AllowSend(ctx context.Context, inviterID snowflake.ID) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	policy := l.network.Current()
	key := fmt.Sprintf(keyInviteSend, inviterID)
	return l.bucket.Allow(ctx, key, policy.InviteSendRate, policy.InviteSendBurst)
}
