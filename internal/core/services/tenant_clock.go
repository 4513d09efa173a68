package services

import (
	"context"
	"fmt"
	"time"

	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
)

// tenantClock derives the tenant's current date from a configured IANA
// timezone. Closing dates are date-granular UTC midnights, so Today normalizes
// the tenant-local wall clock to the same representation.
type tenantClock struct {
	location *time.Location
}

// NewTenantClock creates a TenantClock for the given IANA timezone name.
func NewTenantClock(timezone string) (portssvc.TenantClock, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant timezone %q: %w", timezone, err)
	}
	return &tenantClock{location: location}, nil
}

var _ portssvc.TenantClock = (*tenantClock)(nil)

func (c *tenantClock) Today(_ context.Context) time.Time {
	now := time.Now().In(c.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
