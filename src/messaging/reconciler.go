package messaging

import (
	"context"
	"sync"

	"github.com/sahatak/telecare-agent/src/common/models"
)

// ThreadApplyFunc receives a conversation's messages when the poll detects that the
// thread actually grew.
type ThreadApplyFunc func(conversationID string, messages []models.Message)

// ThreadReconciler diffs freshly polled threads against the last applied state so
// identical polls are no-ops. Messages are append-only from the client's point of
// view; a thread is "changed" when its length or trailing message id differs.
type ThreadReconciler struct {
	apply ThreadApplyFunc

	mu   sync.Mutex
	seen map[string]threadMark
}

type threadMark struct {
	count  int
	lastID string
}

func NewThreadReconciler(apply ThreadApplyFunc) *ThreadReconciler {
	return &ThreadReconciler{
		apply: apply,
		seen:  make(map[string]threadMark),
	}
}

func (r *ThreadReconciler) Reconcile(ctx context.Context, thread models.ConversationThread) {
	if ctx.Err() != nil {
		return
	}

	mark := threadMark{count: len(thread.Messages)}
	if mark.count > 0 {
		mark.lastID = thread.Messages[mark.count-1].ID
	}

	r.mu.Lock()
	previous, exists := r.seen[thread.ConversationID]
	if exists && previous == mark {
		r.mu.Unlock()
		return
	}
	r.seen[thread.ConversationID] = mark
	r.mu.Unlock()

	r.apply(thread.ConversationID, thread.Messages)
}

// Forget drops the reconciliation mark for a conversation, used when the user
// navigates away so reopening re-renders the thread.
func (r *ThreadReconciler) Forget(conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, conversationID)
}
