package video_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/models/enum"
	"github.com/sahatak/telecare-agent/src/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoService struct {
	mu             sync.Mutex
	endCalls       int
	statusResponse models.SessionStatusSnapshot
}

func (f *fakeVideoService) StartSession(context.Context, string) (video.SessionInfo, error) {
	return video.SessionInfo{}, nil
}

func (f *fakeVideoService) JoinSession(context.Context, string) (video.SessionInfo, error) {
	return video.SessionInfo{}, nil
}

func (f *fakeVideoService) EndSession(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endCalls++
	return nil
}

func (f *fakeVideoService) Status(context.Context, string) (models.SessionStatusSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusResponse, nil
}

func (f *fakeVideoService) CompleteAppointment(context.Context, string) error { return nil }

func (f *fakeVideoService) endCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.endCalls
}

type buttonSink struct {
	mu      sync.Mutex
	applied []models.SessionButton
}

func (s *buttonSink) apply(appointmentID string, button models.SessionButton) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = append(s.applied, button)
}

func (s *buttonSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied)
}

func newReconcilerFixture(t *testing.T, role enum.UserRole) (*video.Reconciler, *fakeVideoService, *buttonSink, *fakeClock) {
	t.Helper()
	store := cache.NewCacheService(
		cache.NewPolicyTable(),
		cache.NewMemoryBackend(),
		nil,
		cache.WithSweepInterval(time.Hour),
	)
	t.Cleanup(func() { _ = store.Close() })

	service := &fakeVideoService{}
	sink := &buttonSink{}
	clock := newFakeClock()
	reconciler := video.NewReconciler(store, service, role, sink.apply).WithClock(clock.Now)
	return reconciler, service, sink, clock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestIdenticalSnapshotsApplyOnce(t *testing.T) {
	reconciler, _, sink, _ := newReconcilerFixture(t, enum.Patient)
	snap := snapshot(enum.AppointmentConfirmed, enum.SessionUnknown, nil)

	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", snap))
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", snap))

	assert.Equal(t, 1, sink.count(), "repeated identical snapshots must mutate the UI exactly once")
}

func TestChangedSnapshotAppliesAgain(t *testing.T) {
	reconciler, _, sink, _ := newReconcilerFixture(t, enum.Patient)

	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1",
		snapshot(enum.AppointmentConfirmed, enum.SessionUnknown, nil)))
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1",
		snapshot(enum.AppointmentInProgress, enum.SessionActive, nil)))

	assert.Equal(t, 2, sink.count())
}

func TestCancelledContextSuppressesMutation(t *testing.T) {
	reconciler, _, sink, _ := newReconcilerFixture(t, enum.Patient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, reconciler.Reconcile(ctx, "appt-1",
		snapshot(enum.AppointmentConfirmed, enum.SessionUnknown, nil)))

	assert.Zero(t, sink.count(), "late responses after teardown must not touch the UI")
}

func TestStaleWaitingSessionForceEndsExactlyOnce(t *testing.T) {
	reconciler, service, _, clock := newReconcilerFixture(t, enum.Doctor)

	started := clock.Now().Add(-6 * time.Minute)
	stuck := snapshot(enum.AppointmentInProgress, enum.SessionWaiting, &started)
	service.statusResponse = snapshot(enum.AppointmentInProgress, enum.SessionEnded, nil)

	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	assert.Equal(t, 1, service.endCount())

	// Subsequent ticks delivering the same stuck snapshot must not force-end again.
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	assert.Equal(t, 1, service.endCount())
}

func TestWaitingSessionBelowThresholdIsNotForceEnded(t *testing.T) {
	reconciler, service, _, clock := newReconcilerFixture(t, enum.Doctor)

	started := clock.Now().Add(-time.Minute)
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1",
		snapshot(enum.AppointmentInProgress, enum.SessionWaiting, &started)))

	assert.Zero(t, service.endCount())
}

func TestWaitingWithoutStartedAtUsesFirstObservation(t *testing.T) {
	reconciler, service, _, clock := newReconcilerFixture(t, enum.Doctor)
	stuck := snapshot(enum.AppointmentInProgress, enum.SessionWaiting, nil)
	service.statusResponse = snapshot(enum.AppointmentInProgress, enum.SessionEnded, nil)

	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	assert.Zero(t, service.endCount(), "threshold counts from first observation")

	clock.Advance(6 * time.Minute)
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	assert.Equal(t, 1, service.endCount())
}

func TestForceEndGuardResetsWhenSessionRecovers(t *testing.T) {
	reconciler, service, _, clock := newReconcilerFixture(t, enum.Doctor)

	started := clock.Now().Add(-6 * time.Minute)
	stuck := snapshot(enum.AppointmentInProgress, enum.SessionWaiting, &started)
	service.statusResponse = snapshot(enum.AppointmentInProgress, enum.SessionEnded, nil)

	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1", stuck))
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1",
		snapshot(enum.AppointmentInProgress, enum.SessionActive, &started)))

	// The session got stuck again much later: a new corrective cycle is allowed.
	laterStart := clock.Now().Add(-6 * time.Minute)
	require.NoError(t, reconciler.Reconcile(context.Background(), "appt-1",
		snapshot(enum.AppointmentInProgress, enum.SessionWaiting, &laterStart)))

	assert.Equal(t, 2, service.endCount())
}
