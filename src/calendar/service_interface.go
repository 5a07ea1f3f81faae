package calendar

import (
	"context"

	"github.com/sahatak/telecare-agent/src/common/models"
)

type Service interface {
	// Status returns the external-calendar connection state, cached per policy.
	Status(ctx context.Context, forceRefresh bool) (models.CalendarSyncStatus, error)

	// AuthURL returns the OAuth URL for connecting a provider ("google", "outlook").
	// The redirect dance itself happens outside the agent.
	AuthURL(ctx context.Context, provider string) (string, error)

	Disconnect(ctx context.Context) error

	// SyncNow asks the backend to push appointments to the connected calendar.
	SyncNow(ctx context.Context) error

	// UpdateSettings saves sync preferences and invalidates the cached status.
	UpdateSettings(ctx context.Context, settings models.CalendarSyncSettings) error
}
