package messaging

import (
	"context"

	"github.com/sahatak/telecare-agent/src/common/models"
)

type Service interface {
	// CreateConversation opens (or returns the existing) thread with a recipient.
	CreateConversation(ctx context.Context, recipientID string) (models.ConversationSummary, error)

	// ListConversations returns the user's conversation summaries, served from the
	// cache inside the TTL window unless forceRefresh is set.
	ListConversations(ctx context.Context, forceRefresh bool) ([]models.ConversationSummary, error)

	// Thread returns the ordered messages of one conversation. Ordering is the
	// server's (sent_at ascending); the client never resorts.
	Thread(ctx context.Context, conversationID string, forceRefresh bool) (models.ConversationThread, error)

	// SendMessage posts a message with a client-generated id and optimistically
	// appends the acked message to the cached thread; the next poll replaces the
	// optimistic state with the server's view of the conversation.
	SendMessage(ctx context.Context, conversationID, content string) (models.Message, error)
}
