package calendar

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/rest"
)

type service struct {
	api      rest.Client
	memoizer *cache.Memoizer
	cache    cache.CacheService
}

func NewService(api rest.Client, cacheService cache.CacheService) Service {
	return &service{
		api:      api,
		memoizer: cache.NewMemoizer(cacheService),
		cache:    cacheService,
	}
}

func (s *service) Status(ctx context.Context, forceRefresh bool) (models.CalendarSyncStatus, error) {
	return cache.Fetch(ctx, s.memoizer, cache.TypeCalendarStatus, cache.TypeCalendarStatus, nil, forceRefresh,
		func(ctx context.Context) (models.CalendarSyncStatus, error) {
			var status models.CalendarSyncStatus
			err := s.api.Get(ctx, "/calendar-sync/status", nil, &status)
			return status, err
		})
}

func (s *service) AuthURL(ctx context.Context, provider string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", &rest.ValidationError{Field: "provider", Reason: "required"}
	}

	var payload struct {
		AuthURL string `json:"auth_url"`
	}
	err := s.api.Get(ctx, fmt.Sprintf("/calendar-sync/%s/auth-url", provider), nil, &payload)
	return payload.AuthURL, err
}

func (s *service) Disconnect(ctx context.Context) error {
	if err := s.api.Post(ctx, "/calendar-sync/disconnect", nil, nil); err != nil {
		return err
	}
	s.cache.ClearByType(cache.TypeCalendarStatus)
	return nil
}

func (s *service) SyncNow(ctx context.Context) error {
	if err := s.api.Post(ctx, "/calendar-sync/sync-now", nil, nil); err != nil {
		return err
	}
	s.cache.ClearByType(cache.TypeCalendarStatus)
	return nil
}

func (s *service) UpdateSettings(ctx context.Context, settings models.CalendarSyncSettings) error {
	if err := s.api.Put(ctx, "/calendar-sync/settings", settings, nil); err != nil {
		return err
	}
	s.cache.ClearByType(cache.TypeCalendarStatus)
	return nil
}
