package cache

import (
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
)

const defaultProjectionTTL = 30 * time.Second

// ProjectionCache stores computed unified-contact projections per owner.
// Writers that touch any relationship source must invalidate the owners
// they affect.
type ProjectionCache interface {
	Get(ownerID snowflake.ID) ([]contactdomain.Contact, bool)
	Set(ownerID snowflake.ID, contacts []contactdomain.Contact, ttl time.Duration)
	Invalidate(ownerIDs ...snowflake.ID)
}

type projectionCache struct {
	projections Cache[snowflake.ID, []contactdomain.Contact]
}

// NewProjectionCache returns an in-memory projection cache.
func NewProjectionCache() ProjectionCache {
	return &projectionCache{
		projections: NewTTLCache[snowflake.ID, []contactdomain.Contact](),
	}
}

func (c *projectionCache) Get(ownerID snowflake.ID) ([]contactdomain.Contact, bool) {
	return c.projections.Get(ownerID)
}

func (c *projectionCache) Set(ownerID snowflake.ID, contacts []contactdomain.Contact, ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultProjectionTTL
	}
	c.projections.Set(ownerID, contacts, ttl)
}

func (c *projectionCache) Invalidate(ownerIDs ...snowflake.ID) {
	for _, id := range ownerIDs {
		if id == 0 {
			continue
		}
		c.projections.Delete(id)
	}
}
