package models

import "time"

type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// Message ordering is by SentAt ascending as returned by the server;
// the client never resorts.
type Message struct {
	ID          string       `json:"id"`
	SenderID    string       `json:"sender_id"`
	Content     string       `json:"content"`
	SentAt      time.Time    `json:"sent_at"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type ConversationThread struct {
	ConversationID string    `json:"conversation_id"`
	Messages       []Message `json:"messages"`
}

type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	PeerID         string    `json:"peer_id"`
	PeerName       string    `json:"peer_name"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int       `json:"unread_count"`
}
