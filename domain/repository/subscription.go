package repository

import (
	"context"

	"streamhaven/domain/model"
)

// ISubscription reads subscription records owned by the billing collaborator.
type ISubscription interface {
	// GetCurrentByViewer returns the most recent subscription record for a
	// viewer, or nil when the viewer has never subscribed. Lookup errors are
	// surfaced as-is; callers must fail closed, not treat them as "not
	// entitled".
	GetCurrentByViewer(ctx context.Context, viewerID string) (*model.Subscription, error)
}
