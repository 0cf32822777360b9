package in

import (
	"context"
	"errors"

	"taskdeck/internal/modules/chat/dto"
	chatin "taskdeck/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, content string) (dto.ConversationOutput, error) {
	out := h.usecase.SendMessage(ctx, content)
	return out, errorFrom(out.Error)
}

func (h CLIHandler) History(ctx context.Context, conversationID string) (dto.ConversationOutput, error) {
	var out dto.ConversationOutput
	if conversationID == "" {
		out = h.usecase.Current(ctx)
	} else {
		out = h.usecase.LoadHistory(ctx, conversationID)
	}
	return out, errorFrom(out.Error)
}

func (h CLIHandler) List(ctx context.Context, limit, offset int) (dto.ConversationListOutput, error) {
	out := h.usecase.ListConversations(ctx, limit, offset)
	return out, errorFrom(out.Error)
}

func (h CLIHandler) Clear(ctx context.Context) dto.ConversationOutput {
	return h.usecase.ClearConversation(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, conversationID string) (dto.ConversationListOutput, error) {
	out := h.usecase.DeleteConversation(ctx, conversationID)
	return out, errorFrom(out.Error)
}

func errorFrom(msg string) error {
	if msg != "" {
		return errors.New(msg)
	}
	return nil
}
