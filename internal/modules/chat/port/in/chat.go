package in

import (
	"context"

	"taskdeck/internal/modules/chat/dto"
)

// Usecase is the conversation manager's inbound port. Operations return the
// post-operation snapshot; failures surface in its Error field.
type Usecase interface {
	Open(ctx context.Context) dto.ConversationOutput
	Close(ctx context.Context) dto.ConversationOutput
	Toggle(ctx context.Context) dto.ConversationOutput
	SendMessage(ctx context.Context, content string) dto.ConversationOutput
	LoadHistory(ctx context.Context, conversationID string) dto.ConversationOutput
	ClearConversation(ctx context.Context) dto.ConversationOutput
	Restore(ctx context.Context) dto.ConversationOutput
	Current(ctx context.Context) dto.ConversationOutput
	ClearError(ctx context.Context) dto.ConversationOutput
	ListConversations(ctx context.Context, limit, offset int) dto.ConversationListOutput
	DeleteConversation(ctx context.Context, id string) dto.ConversationListOutput
}
