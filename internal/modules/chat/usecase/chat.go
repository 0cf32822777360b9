package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"taskdeck/internal/modules/chat/domain"
	"taskdeck/internal/modules/chat/dto"
	chatin "taskdeck/internal/modules/chat/port/in"
	chatout "taskdeck/internal/modules/chat/port/out"
	"taskdeck/internal/platform/clock"
	"taskdeck/internal/platform/id"
	"taskdeck/internal/remote"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgEmptyMessage     = "message must not be empty"

	// historyPageSize bounds how many messages a single history load pulls.
	historyPageSize = 50
)

type Interactor struct {
	svc      dispatcher
	gateway  chatout.Gateway
	ids      chatout.ConversationIDStore
	sessions chatout.SessionReader
	idgen    id.Generator
	clock    clock.Clock
	log      *zap.Logger
}

// dispatcher is the slice of ChatService this interactor needs.
type dispatcher interface {
	Dispatch(event domain.Event) domain.Conversation
	Snapshot() domain.Conversation
}

func NewInteractor(svc dispatcher, gateway chatout.Gateway, ids chatout.ConversationIDStore, sessions chatout.SessionReader, idgen id.Generator, clk clock.Clock, log *zap.Logger) *Interactor {
	return &Interactor{svc: svc, gateway: gateway, ids: ids, sessions: sessions, idgen: idgen, clock: clk, log: log}
}

var _ chatin.Usecase = (*Interactor)(nil)

func (i *Interactor) Open(_ context.Context) dto.ConversationOutput {
	return toOutput(i.svc.Dispatch(domain.Opened{}))
}

func (i *Interactor) Close(_ context.Context) dto.ConversationOutput {
	return toOutput(i.svc.Dispatch(domain.Closed{}))
}

func (i *Interactor) Toggle(_ context.Context) dto.ConversationOutput {
	return toOutput(i.svc.Dispatch(domain.Toggled{}))
}

// SendMessage sends one user message and, on success, appends the user
// message and the assistant reply as a single pair. A failed send appends
// nothing; the typed content is the caller's to retry.
func (i *Interactor) SendMessage(ctx context.Context, content string) dto.ConversationOutput {
	content = strings.TrimSpace(content)
	if content == "" {
		return toOutput(i.svc.Dispatch(domain.SendFailed{Message: msgEmptyMessage}))
	}
	if !i.sessions.Authenticated() {
		return toOutput(i.svc.Dispatch(domain.SendFailed{Message: msgNotAuthenticated}))
	}
	i.svc.Dispatch(domain.SendStarted{})
	result := i.gateway.Send(ctx, content, i.svc.Snapshot().ID)
	if !result.OK {
		return toOutput(i.svc.Dispatch(domain.SendFailed{Message: result.Err}))
	}
	now := i.clock.Now()
	state := i.svc.Dispatch(domain.SendSucceeded{
		ConversationID: result.Data.ConversationID,
		UserMessage: domain.Message{
			ID:        i.idgen.New(),
			Role:      domain.RoleUser,
			Content:   content,
			CreatedAt: now,
		},
		Reply: domain.Message{
			ID:        i.idgen.New(),
			Role:      domain.RoleAssistant,
			Content:   result.Data.Response,
			CreatedAt: now,
			ToolCalls: fromRemoteToolCalls(result.Data.ToolCalls),
		},
	})
	i.persistID(ctx, state.ID)
	return toOutput(state)
}

// LoadHistory replaces the transcript with the server's for the given
// conversation and makes that conversation the active one.
func (i *Interactor) LoadHistory(ctx context.Context, conversationID string) dto.ConversationOutput {
	if !i.sessions.Authenticated() {
		return toOutput(i.svc.Dispatch(domain.HistoryLoadFailed{Message: msgNotAuthenticated}))
	}
	i.svc.Dispatch(domain.HistoryLoadStarted{})
	result := i.gateway.GetConversation(ctx, conversationID, historyPageSize)
	if !result.OK {
		return toOutput(i.svc.Dispatch(domain.HistoryLoadFailed{Message: result.Err}))
	}
	state := i.svc.Dispatch(domain.HistoryLoaded{
		ConversationID: result.Data.ID,
		Messages:       fromRemoteMessages(result.Data.Messages),
	})
	i.persistID(ctx, state.ID)
	return toOutput(state)
}

// ClearConversation forgets the active conversation locally. The server copy
// is untouched; the next send starts a fresh conversation.
func (i *Interactor) ClearConversation(ctx context.Context) dto.ConversationOutput {
	state := i.svc.Dispatch(domain.ConversationCleared{})
	if err := i.ids.Clear(ctx); err != nil {
		i.log.Debug("clear persisted conversation id failed", zap.Error(err))
	}
	return toOutput(state)
}

// Restore runs once at startup. A persisted id whose conversation no longer
// exists on the server is discarded silently.
func (i *Interactor) Restore(ctx context.Context) dto.ConversationOutput {
	conversationID, found, err := i.ids.Load(ctx)
	if err != nil {
		i.log.Debug("load persisted conversation id failed", zap.Error(err))
		return toOutput(i.svc.Snapshot())
	}
	if !found || !i.sessions.Authenticated() {
		return toOutput(i.svc.Snapshot())
	}
	if len(i.svc.Snapshot().Messages) > 0 {
		return toOutput(i.svc.Snapshot())
	}
	result := i.gateway.GetConversation(ctx, conversationID, historyPageSize)
	if !result.OK {
		if err := i.ids.Clear(ctx); err != nil {
			i.log.Debug("clear stale conversation id failed", zap.Error(err))
		}
		return toOutput(i.svc.Snapshot())
	}
	return toOutput(i.svc.Dispatch(domain.HistoryLoaded{
		ConversationID: result.Data.ID,
		Messages:       fromRemoteMessages(result.Data.Messages),
	}))
}

func (i *Interactor) Current(_ context.Context) dto.ConversationOutput {
	return toOutput(i.svc.Snapshot())
}

func (i *Interactor) ClearError(_ context.Context) dto.ConversationOutput {
	return toOutput(i.svc.Dispatch(domain.ErrorCleared{}))
}

func (i *Interactor) ListConversations(ctx context.Context, limit, offset int) dto.ConversationListOutput {
	if !i.sessions.Authenticated() {
		return dto.ConversationListOutput{Error: msgNotAuthenticated}
	}
	result := i.gateway.ListConversations(ctx, limit, offset)
	if !result.OK {
		return dto.ConversationListOutput{Error: result.Err}
	}
	return toListOutput(result.Data)
}

// DeleteConversation removes a conversation on the server. Deleting the
// active one also clears it locally.
func (i *Interactor) DeleteConversation(ctx context.Context, conversationID string) dto.ConversationListOutput {
	if !i.sessions.Authenticated() {
		return dto.ConversationListOutput{Error: msgNotAuthenticated}
	}
	result := i.gateway.DeleteConversation(ctx, conversationID)
	if !result.OK {
		return dto.ConversationListOutput{Error: result.Err}
	}
	if i.svc.Snapshot().ID == conversationID {
		i.ClearConversation(ctx)
	}
	return i.ListConversations(ctx, 0, 0)
}

// SessionEnded drops the conversation and its persisted id on logout.
func (i *Interactor) SessionEnded(ctx context.Context) {
	i.svc.Dispatch(domain.ConversationCleared{})
	if err := i.ids.Clear(ctx); err != nil {
		i.log.Debug("clear persisted conversation id failed", zap.Error(err))
	}
	i.log.Debug("conversation cleared on session end")
}

func (i *Interactor) persistID(ctx context.Context, conversationID string) {
	if conversationID == "" {
		return
	}
	if err := i.ids.Save(ctx, conversationID); err != nil {
		// In-memory state stays correct; persistence is best effort.
		i.log.Debug("persist conversation id failed", zap.Error(err))
	}
}

func fromRemoteToolCalls(calls []remote.ToolCall) []domain.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]domain.ToolCall, 0, len(calls))
	for _, call := range calls {
		out = append(out, domain.ToolCall{
			Tool:       call.Tool,
			Parameters: call.Parameters,
			Result:     call.Result,
			Success:    call.Success,
		})
	}
	return out
}

func fromRemoteMessages(messages []remote.Message) []domain.Message {
	out := make([]domain.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, domain.Message{
			ID:        msg.ID,
			Role:      domain.Role(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
			ToolCalls: fromRemoteToolCalls(msg.ToolCalls),
		})
	}
	return out
}

func toOutput(state domain.Conversation) dto.ConversationOutput {
	messages := make([]dto.MessageOutput, 0, len(state.Messages))
	for _, msg := range state.Messages {
		out := dto.MessageOutput{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
		for _, call := range msg.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, dto.ToolCallOutput{
				Tool:       call.Tool,
				Parameters: call.Parameters,
				Result:     call.Result,
				Success:    call.Success,
			})
		}
		messages = append(messages, out)
	}
	return dto.ConversationOutput{
		ConversationID: state.ID,
		Messages:       messages,
		Open:           state.Open,
		Sending:        state.Sending,
		Loading:        state.Loading,
		Error:          state.Err,
	}
}

func toListOutput(page remote.ConversationPage) dto.ConversationListOutput {
	out := dto.ConversationListOutput{Total: page.Total}
	for _, summary := range page.Conversations {
		out.Conversations = append(out.Conversations, dto.ConversationSummaryOutput{
			ID:           summary.ID,
			Title:        summary.Title,
			CreatedAt:    summary.CreatedAt,
			UpdatedAt:    summary.UpdatedAt,
			MessageCount: summary.MessageCount,
		})
	}
	return out
}
