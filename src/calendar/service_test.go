package calendar_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/calendar"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calendarBackend struct {
	statusCalls atomic.Int64
	server      *httptest.Server
}

func newCalendarBackend(t *testing.T) *calendarBackend {
	t.Helper()
	b := &calendarBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /calendar-sync/status", func(w http.ResponseWriter, r *http.Request) {
		b.statusCalls.Add(1)
		fmt.Fprint(w, `{"success":true,"data":{"connected":true,"provider":"google","sync_enabled":true}}`)
	})
	mux.HandleFunc("GET /calendar-sync/{provider}/auth-url", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"success":true,"data":{"auth_url":"https://accounts.example.com/o/oauth2/auth?provider=%s"}}`, r.PathValue("provider"))
	})
	mux.HandleFunc("POST /calendar-sync/disconnect", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})
	mux.HandleFunc("POST /calendar-sync/sync-now", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})
	mux.HandleFunc("PUT /calendar-sync/settings", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func newCalendarService(t *testing.T, backend *calendarBackend) (calendar.Service, cache.CacheService) {
	t.Helper()
	store := cache.NewCacheService(
		cache.NewPolicyTable(),
		cache.NewMemoryBackend(),
		cache.NewDiskBackend(t.TempDir()),
		cache.WithSweepInterval(time.Hour),
	)
	t.Cleanup(func() { _ = store.Close() })

	return calendar.NewService(rest.NewClient(backend.server.URL, nil), store), store
}

func TestStatusIsCached(t *testing.T) {
	backend := newCalendarBackend(t)
	service, _ := newCalendarService(t, backend)

	first, err := service.Status(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, first.Connected)
	assert.Equal(t, "google", first.Provider)

	_, err = service.Status(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), backend.statusCalls.Load())
}

func TestUpdateSettingsInvalidatesStatus(t *testing.T) {
	backend := newCalendarBackend(t)
	service, store := newCalendarService(t, backend)

	_, err := service.Status(context.Background(), false)
	require.NoError(t, err)
	require.True(t, store.Has(cache.TypeCalendarStatus, nil))

	require.NoError(t, service.UpdateSettings(context.Background(), models.CalendarSyncSettings{
		SyncEnabled:     true,
		ReminderMinutes: 30,
	}))

	assert.False(t, store.Has(cache.TypeCalendarStatus, nil))
}

func TestAuthURLRequiresProvider(t *testing.T) {
	backend := newCalendarBackend(t)
	service, _ := newCalendarService(t, backend)

	_, err := service.AuthURL(context.Background(), " ")
	var validationErr *rest.ValidationError
	require.ErrorAs(t, err, &validationErr)

	authURL, err := service.AuthURL(context.Background(), "google")
	require.NoError(t, err)
	assert.Contains(t, authURL, "provider=google")
}

func TestDisconnectInvalidatesStatus(t *testing.T) {
	backend := newCalendarBackend(t)
	service, store := newCalendarService(t, backend)

	_, err := service.Status(context.Background(), false)
	require.NoError(t, err)

	require.NoError(t, service.Disconnect(context.Background()))
	assert.False(t, store.Has(cache.TypeCalendarStatus, nil))
}
