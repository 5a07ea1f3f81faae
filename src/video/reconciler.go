package video

import (
	"context"
	"sync"
	"time"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/common/logger"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/models/enum"
)

// A session can report in_progress/waiting forever when the backend loses track of
// it. Past this threshold the agent force-ends it as compensating cleanup.
// TODO drop once the backend session state machine guarantees waiting -> active/ended.
const STALE_SESSION_THRESHOLD = 5 * time.Minute

// ApplyFunc receives the recomputed button descriptor whenever reconciliation
// detects a real state change.
type ApplyFunc func(appointmentID string, button models.SessionButton)

// Reconciler diffs freshly fetched session snapshots against the cached ones and
// pushes derived UI state only on change. It is safe to call from concurrent poll
// ticks; only the latest fetch per appointment is applied.
type Reconciler struct {
	cache   cache.CacheService
	service Service
	role    enum.UserRole
	apply   ApplyFunc
	now     func() time.Time

	mu           sync.Mutex
	waitingSince map[string]time.Time
	forceEnded   map[string]bool
}

func NewReconciler(cacheService cache.CacheService, service Service, role enum.UserRole, apply ApplyFunc) *Reconciler {
	return &Reconciler{
		cache:        cacheService,
		service:      service,
		role:         role,
		apply:        apply,
		now:          time.Now,
		waitingSince: make(map[string]time.Time),
		forceEnded:   make(map[string]bool),
	}
}

// WithClock overrides the time source for staleness detection, used by tests.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Reconcile applies a fresh snapshot for one appointment. Identical consecutive
// snapshots are no-ops. A context cancelled by teardown suppresses all mutation, so
// responses that arrive late are safely ignored.
func (r *Reconciler) Reconcile(ctx context.Context, appointmentID string, fresh models.SessionStatusSnapshot) error {
	if ctx.Err() != nil {
		return nil
	}

	if r.detectStale(ctx, appointmentID, fresh) {
		return nil
	}

	r.applySnapshot(ctx, appointmentID, fresh)
	return nil
}

// applySnapshot performs the diff against the cached snapshot and mutates the UI
// only on change.
func (r *Reconciler) applySnapshot(ctx context.Context, appointmentID string, fresh models.SessionStatusSnapshot) {
	var cached models.SessionStatusSnapshot
	hadCached := r.cache.Get(cache.TypeSessionStatus, appointmentID, &cached)
	if hadCached && unchangedForUI(cached, fresh) {
		return
	}

	r.cache.Set(cache.TypeSessionStatus, fresh, cache.TypeSessionStatus, appointmentID)
	if ctx.Err() != nil {
		return
	}
	r.apply(appointmentID, ButtonFor(r.role, fresh))
}

// unchangedForUI compares only the fields that drive the UI.
func unchangedForUI(cached, fresh models.SessionStatusSnapshot) bool {
	return cached.SessionStatus == fresh.SessionStatus &&
		cached.AppointmentStatus == fresh.AppointmentStatus
}

// detectStale handles the stuck in_progress/waiting combination: past the threshold
// the session is force-ended exactly once and the fresh state re-fetched and
// reconciled in its place.
func (r *Reconciler) detectStale(ctx context.Context, appointmentID string, fresh models.SessionStatusSnapshot) bool {
	stuck := fresh.AppointmentStatus == enum.AppointmentInProgress &&
		fresh.SessionStatus == enum.SessionWaiting

	r.mu.Lock()
	if !stuck {
		delete(r.waitingSince, appointmentID)
		delete(r.forceEnded, appointmentID)
		r.mu.Unlock()
		return false
	}

	since, seen := r.waitingSince[appointmentID]
	if !seen {
		since = r.now()
		if fresh.SessionStartedAt != nil {
			since = *fresh.SessionStartedAt
		}
		r.waitingSince[appointmentID] = since
	}

	expiredWait := r.now().Sub(since) > STALE_SESSION_THRESHOLD
	alreadyEnded := r.forceEnded[appointmentID]
	if !expiredWait || alreadyEnded {
		r.mu.Unlock()
		return false
	}
	r.forceEnded[appointmentID] = true
	r.mu.Unlock()

	logger.GetLogger().Warnf("session for appointment %s stuck in waiting for over %s, forcing end", appointmentID, STALE_SESSION_THRESHOLD)
	if err := r.service.EndSession(ctx, appointmentID); err != nil {
		logger.GetLogger().Warnf("force end failed for appointment %s: %v", appointmentID, err)
		return true
	}

	corrected, err := r.service.Status(ctx, appointmentID)
	if err != nil {
		logger.GetLogger().Warnf("status refetch after force end failed for %s: %v", appointmentID, err)
		return true
	}
	// Applied directly: the corrective refetch must not reset the force-end guard,
	// only a genuinely recovered snapshot from a later poll does that.
	r.applySnapshot(ctx, appointmentID, corrected)
	return true
}
