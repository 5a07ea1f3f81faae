package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
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

func (s *service) CreateConversation(ctx context.Context, recipientID string) (models.ConversationSummary, error) {
	var summary models.ConversationSummary
	if strings.TrimSpace(recipientID) == "" {
		return summary, &rest.ValidationError{Field: "recipient_id", Reason: "required"}
	}

	body := map[string]string{"recipient_id": recipientID}
	if err := s.api.Post(ctx, "/messages/conversations", body, &summary); err != nil {
		return summary, err
	}
	// A new thread changes the conversation list; drop the cached one.
	s.cache.ClearByType(cache.TypeConversations)
	return summary, nil
}

func (s *service) ListConversations(ctx context.Context, forceRefresh bool) ([]models.ConversationSummary, error) {
	return cache.Fetch(ctx, s.memoizer, cache.TypeConversations, cache.TypeConversations, nil, forceRefresh,
		func(ctx context.Context) ([]models.ConversationSummary, error) {
			var conversations []models.ConversationSummary
			err := s.api.Get(ctx, "/messages/conversations", nil, &conversations)
			return conversations, err
		})
}

func (s *service) Thread(ctx context.Context, conversationID string, forceRefresh bool) (models.ConversationThread, error) {
	return cache.Fetch(ctx, s.memoizer, cache.TypeMessages, cache.TypeMessages, conversationID, forceRefresh,
		func(ctx context.Context) (models.ConversationThread, error) {
			var thread models.ConversationThread
			err := s.api.Get(ctx, fmt.Sprintf("/messages/conversations/%s", conversationID), nil, &thread)
			if err != nil {
				return thread, err
			}
			thread.ConversationID = conversationID
			return thread, nil
		})
}

func (s *service) SendMessage(ctx context.Context, conversationID, content string) (models.Message, error) {
	var sent models.Message
	if strings.TrimSpace(content) == "" {
		return sent, &rest.ValidationError{Field: "content", Reason: "required"}
	}

	body := map[string]string{
		"client_message_id": uuid.New().String(),
		"content":           content,
	}
	err := s.api.Post(ctx, fmt.Sprintf("/messages/conversations/%s/messages", conversationID), body, &sent)
	if err != nil {
		return sent, err
	}

	// Optimistic append: the server acked the message, so it shows in the local
	// thread right away; the next forced poll replaces this with the server view.
	var thread models.ConversationThread
	if !s.cache.Get(cache.TypeMessages, conversationID, &thread) {
		thread = models.ConversationThread{ConversationID: conversationID}
	}
	thread.Messages = append(thread.Messages, sent)
	s.cache.Set(cache.TypeMessages, thread, cache.TypeMessages, conversationID)
	return sent, nil
}
