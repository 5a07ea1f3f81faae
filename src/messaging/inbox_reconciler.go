package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/sahatak/telecare-agent/src/common/models"
)

// InboxApplyFunc receives the full conversation list when any summary's unread
// count or last-message time moved, or a conversation appeared or disappeared.
type InboxApplyFunc func(conversations []models.ConversationSummary)

// InboxReconciler diffs polled conversation lists so identical polls are no-ops.
// Unlike threads, the list is replaced wholesale: a single changed summary
// re-renders the inbox.
type InboxReconciler struct {
	apply InboxApplyFunc

	mu   sync.Mutex
	seen map[string]inboxMark
}

type inboxMark struct {
	unread        int
	lastMessageAt time.Time
}

func NewInboxReconciler(apply InboxApplyFunc) *InboxReconciler {
	return &InboxReconciler{
		apply: apply,
		seen:  make(map[string]inboxMark),
	}
}

func (r *InboxReconciler) Reconcile(ctx context.Context, conversations []models.ConversationSummary) {
	if ctx.Err() != nil {
		return
	}

	fresh := make(map[string]inboxMark, len(conversations))
	for _, conversation := range conversations {
		fresh[conversation.ConversationID] = inboxMark{
			unread:        conversation.UnreadCount,
			lastMessageAt: conversation.LastMessageAt,
		}
	}

	r.mu.Lock()
	changed := len(fresh) != len(r.seen)
	if !changed {
		for id, mark := range fresh {
			if previous, exists := r.seen[id]; !exists || previous != mark {
				changed = true
				break
			}
		}
	}
	if changed {
		r.seen = fresh
	}
	r.mu.Unlock()

	if changed {
		r.apply(conversations)
	}
}
