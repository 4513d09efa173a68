package services

import (
	"context"
	"time"
)

// TenantClock supplies the tenant's notion of "today". The future-date check
// on closures must compare dates in the tenant's timezone, not the server's.
type TenantClock interface {
	// Today returns the current tenant date at midnight UTC.
	Today(ctx context.Context) time.Time
}
