package out

import (
	"context"

	chatout "taskdeck/internal/modules/chat/port/out"
	"taskdeck/internal/remote"
)

type RemoteGateway struct {
	client *remote.Client
}

func NewRemoteGateway(client *remote.Client) chatout.Gateway {
	return &RemoteGateway{client: client}
}

func (g *RemoteGateway) Send(ctx context.Context, message, conversationID string) remote.Result[remote.ChatReply] {
	return g.client.SendChat(ctx, message, conversationID)
}

func (g *RemoteGateway) GetConversation(ctx context.Context, conversationID string, limit int) remote.Result[remote.Conversation] {
	return g.client.GetConversation(ctx, conversationID, limit)
}

func (g *RemoteGateway) ListConversations(ctx context.Context, limit, offset int) remote.Result[remote.ConversationPage] {
	return g.client.ListConversations(ctx, limit, offset)
}

func (g *RemoteGateway) DeleteConversation(ctx context.Context, conversationID string) remote.Result[struct{}] {
	return g.client.DeleteConversation(ctx, conversationID)
}
