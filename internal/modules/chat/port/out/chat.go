package out

import (
	"context"

	"taskdeck/internal/remote"
)

// Gateway is the remote surface the conversation manager talks to.
type Gateway interface {
	Send(ctx context.Context, message, conversationID string) remote.Result[remote.ChatReply]
	GetConversation(ctx context.Context, id string, limit int) remote.Result[remote.Conversation]
	ListConversations(ctx context.Context, limit, offset int) remote.Result[remote.ConversationPage]
	DeleteConversation(ctx context.Context, id string) remote.Result[struct{}]
}

// ConversationIDStore persists the active conversation id across restarts.
type ConversationIDStore interface {
	Save(ctx context.Context, id string) error
	Load(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// SessionReader answers whether a live session is held.
type SessionReader interface {
	Authenticated() bool
}
